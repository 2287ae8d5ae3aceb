// Package repo owns the in-memory state of the trip store: trips with their
// itineraries, bookings and saved items. Every mutation updates memory under
// one lock and hands a snapshot of the changed collection to a write-behind
// writer that persists it to a kv.Store.
package repo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/internal/metrics"
)

// Backing store keys. Each holds a JSON array of the whole collection.
const (
	KeyTrips      = "trips"
	KeyBookings   = "bookings"
	KeySavedItems = "savedItems"
)

// Durability describes when a mutation reaches the backing store.
type Durability string

// WriteBehind means mutations return as soon as memory is updated; the
// backing store catches up asynchronously. A crash before the writer drains
// loses the most recent mutations.
const WriteBehind Durability = "write-behind"

// Options configures a Repository. Zero fields get production defaults.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Now is the clock used for createdAt/updatedAt. Defaults to time.Now.
	Now func() time.Time
	// NewID generates entity ids. Defaults to uuid.NewString.
	NewID func() string
	// WriteTimeout bounds each background write. Defaults to 10s.
	WriteTimeout time.Duration
}

// Repository is the single owner of trip store state. All methods are safe
// for concurrent use.
type Repository struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
	store   kv.Store
	w       *writer

	mu        sync.RWMutex
	loaded    bool
	trips     []domain.Trip
	bookings  []domain.Booking
	saved     []domain.SavedItem
	savedIdx  map[string]struct{}
	lastStamp time.Time

	// Bookkeeping for mutations made before Load finishes.
	dirty        map[string]bool
	deletedTrips map[string]struct{}
	removedSaved map[string]struct{}
}

// New creates an empty repository over store and starts its writer. Writes
// are held back until Load completes. Call Close to stop the writer.
func New(store kv.Store, opts Options) *Repository {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 10 * time.Second
	}
	r := &Repository{
		log:          opts.Logger,
		metrics:      opts.Metrics,
		now:          opts.Now,
		newID:        opts.NewID,
		store:        store,
		trips:        []domain.Trip{},
		bookings:     []domain.Booking{},
		saved:        []domain.SavedItem{},
		savedIdx:     make(map[string]struct{}),
		dirty:        make(map[string]bool),
		deletedTrips: make(map[string]struct{}),
		removedSaved: make(map[string]struct{}),
	}
	r.w = newWriter(store, opts.Logger, opts.Metrics, opts.WriteTimeout)
	return r
}

// Durability reports the persistence guarantee of mutations.
func (r *Repository) Durability() Durability { return WriteBehind }

// Loaded reports whether Load has completed.
func (r *Repository) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

type loadedState struct {
	trips    []domain.Trip
	bookings []domain.Booking
	saved    []domain.SavedItem
}

// Load reads the three collections from the backing store concurrently and
// merges them under any mutations made in the meantime (local entries win on
// id conflict). Each key stands alone: a failed read or a corrupt value is
// logged and only that collection starts empty. Load releases the writer;
// calling it again is a no-op.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.RLock()
	done := r.loaded
	r.mu.RUnlock()
	if done {
		return nil
	}

	state, err := r.read(ctx)
	if err != nil {
		return fmt.Errorf("repo.Repository.Load: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded {
		return nil
	}
	r.trips = mergeByID(state.trips, r.trips, r.deletedTrips, func(t domain.Trip) string { return t.ID })
	r.bookings = mergeByID(state.bookings, r.bookings, nil, func(b domain.Booking) string { return b.ID })
	r.saved = mergeByID(state.saved, r.saved, r.removedSaved, func(s domain.SavedItem) string { return s.ID })
	r.savedIdx = make(map[string]struct{}, len(r.saved))
	for _, s := range r.saved {
		r.savedIdx[s.ID] = struct{}{}
	}
	r.loaded = true

	// Early mutations were enqueued as partial collections; replace them with
	// the merged ones before the writer may run.
	for key := range r.dirty {
		r.persistLocked(key)
	}
	r.dirty = nil
	r.deletedTrips = nil
	r.removedSaved = nil
	r.w.release()

	r.log.Info("trip store loaded",
		"trips", len(r.trips), "bookings", len(r.bookings), "saved_items", len(r.saved))
	return nil
}

// read fetches every key. Only cancellation of ctx is returned as an error;
// any other failure is confined to its own key.
func (r *Repository) read(ctx context.Context) (loadedState, error) {
	var state loadedState
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.readKey(gctx, KeyTrips, func(raw string) error { return decodeInto(raw, decodeTrips, &state.trips) }) })
	g.Go(func() error { return r.readKey(gctx, KeyBookings, func(raw string) error { return decodeInto(raw, decodeBookings, &state.bookings) }) })
	g.Go(func() error { return r.readKey(gctx, KeySavedItems, func(raw string) error { return decodeInto(raw, decodeSavedItems, &state.saved) }) })
	if err := g.Wait(); err != nil {
		return loadedState{}, err
	}
	return state, nil
}

// readKey loads one key through decode. A missing key is not an error. A
// read or decode failure is logged and leaves that collection empty.
func (r *Repository) readKey(ctx context.Context, key string, decode func(string) error) error {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.Warn("read from backing store failed, collection starts empty", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	if err := decode(raw); err != nil {
		r.log.Warn("stored value is corrupt, collection starts empty", "key", key, "error", err)
	}
	return nil
}

func decodeInto[T any](raw string, decode func(string) ([]T, error), dst *[]T) error {
	items, err := decode(raw)
	if err != nil {
		return err
	}
	*dst = items
	return nil
}

// mergeByID overlays local onto loaded. Loaded order is kept, entries
// replaced by a local one stay in place, local-only entries are appended and
// ids in removed are dropped.
func mergeByID[T any](loaded, local []T, removed map[string]struct{}, id func(T) string) []T {
	localIdx := make(map[string]int, len(local))
	for i, v := range local {
		localIdx[id(v)] = i
	}
	out := make([]T, 0, len(loaded)+len(local))
	used := make(map[string]bool, len(local))
	for _, v := range loaded {
		key := id(v)
		if _, gone := removed[key]; gone {
			continue
		}
		if i, ok := localIdx[key]; ok {
			out = append(out, local[i])
			used[key] = true
			continue
		}
		out = append(out, v)
	}
	for _, v := range local {
		if !used[id(v)] {
			out = append(out, v)
		}
	}
	return out
}

// Flush synchronously writes every pending snapshot. It returns an error if
// any snapshot could not be written; those stay pending.
func (r *Repository) Flush(ctx context.Context) error {
	return r.w.flush(ctx)
}

// Close stops the writer after a final flush.
func (r *Repository) Close(ctx context.Context) error {
	return r.w.close(ctx)
}

// ---- helpers ----

// stamp returns the current time, forced strictly after both the previous
// stamp handed out and prev, so updatedAt always increases.
func (r *Repository) stamp(prev time.Time) time.Time {
	t := r.now()
	floor := r.lastStamp
	if prev.After(floor) {
		floor = prev
	}
	if !t.After(floor) {
		t = floor.Add(time.Millisecond)
	}
	r.lastStamp = t
	return t
}

// persistLocked snapshots the collection under key and hands it to the
// writer. Must be called with r.mu held.
func (r *Repository) persistLocked(key string) {
	var (
		raw string
		err error
	)
	switch key {
	case KeyTrips:
		raw, err = encode(r.trips)
	case KeyBookings:
		raw, err = encode(r.bookings)
	case KeySavedItems:
		raw, err = encode(r.saved)
	default:
		err = fmt.Errorf("unknown collection %q", key)
	}
	if err != nil {
		r.log.Error("encode snapshot", "key", key, "error", err)
		return
	}
	if !r.loaded {
		r.dirty[key] = true
	}
	r.w.enqueue(key, raw)
}
