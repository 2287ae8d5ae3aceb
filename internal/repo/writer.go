package repo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/internal/metrics"
)

// writer persists collection snapshots in the background. Only the latest
// snapshot per key is kept; keys are written one at a time in the order they
// first became pending. A failed write stays pending until the next wake-up
// or flush.
type writer struct {
	store   kv.Store
	log     *slog.Logger
	metrics *metrics.Metrics
	timeout time.Duration

	// drainMu serialises drains so an older snapshot can never land after a
	// newer one for the same key.
	drainMu sync.Mutex

	mu      sync.Mutex
	pending map[string]string
	order   []string
	held    bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newWriter(store kv.Store, log *slog.Logger, m *metrics.Metrics, timeout time.Duration) *writer {
	w := &writer{
		store:   store,
		log:     log,
		metrics: m,
		timeout: timeout,
		pending: make(map[string]string),
		held:    true,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.stop:
			return
		case <-w.wake:
			if w.isHeld() {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
			if err := w.drain(ctx); err != nil {
				w.log.Warn("write-behind failed, will retry on next change", "error", err)
			}
			cancel()
		}
	}
}

// enqueue replaces the pending snapshot for key and wakes the writer.
func (w *writer) enqueue(key, value string) {
	w.mu.Lock()
	if _, ok := w.pending[key]; !ok {
		w.order = append(w.order, key)
	}
	w.pending[key] = value
	n := len(w.pending)
	w.mu.Unlock()

	w.metrics.SetPending(n)
	w.signal()
}

// release lets the writer start draining.
func (w *writer) release() {
	w.mu.Lock()
	w.held = false
	w.mu.Unlock()
	w.signal()
}

func (w *writer) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) isHeld() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.held
}

// next pops the oldest pending key.
func (w *writer) next() (key, value string, ok bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.order) == 0 {
		return "", "", false
	}
	key = w.order[0]
	w.order = w.order[1:]
	value = w.pending[key]
	delete(w.pending, key)
	return key, value, true
}

// requeue puts a failed snapshot back at the front unless a newer one for
// the same key arrived meanwhile.
func (w *writer) requeue(key, value string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, newer := w.pending[key]; newer {
		return
	}
	w.pending[key] = value
	w.order = append([]string{key}, w.order...)
}

func (w *writer) pendingCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// drain writes pending snapshots until none are left or one fails.
func (w *writer) drain(ctx context.Context) error {
	w.drainMu.Lock()
	defer w.drainMu.Unlock()
	defer func() { w.metrics.SetPending(w.pendingCount()) }()

	for {
		key, value, ok := w.next()
		if !ok {
			return nil
		}
		if err := w.store.Set(ctx, key, value); err != nil {
			w.requeue(key, value)
			return fmt.Errorf("write %s: %w", key, err)
		}
		w.log.Debug("snapshot persisted", "key", key, "bytes", len(value))
	}
}

// flush drains synchronously. Held writes are not flushed: before the
// initial load they would overwrite stored data with partial collections.
func (w *writer) flush(ctx context.Context) error {
	if w.isHeld() {
		return errors.New("repo: flush before load completed")
	}
	if err := w.drain(ctx); err != nil {
		return fmt.Errorf("repo.Repository.Flush: %w", err)
	}
	return nil
}

// close stops the background goroutine and flushes what is left.
func (w *writer) close(ctx context.Context) error {
	w.once.Do(func() { close(w.stop) })
	select {
	case <-w.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if w.isHeld() {
		if n := w.pendingCount(); n > 0 {
			w.log.Warn("dropping writes made before load completed", "pending", n)
		}
		return nil
	}
	return w.flush(ctx)
}
