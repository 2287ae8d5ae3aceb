package kv

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrUnavailable is returned while the breaker is open and calls are being
// rejected without reaching the backing store.
var ErrUnavailable = errors.New("kv: backing store unavailable")

// BreakerSettings configures WithBreaker.
type BreakerSettings struct {
	Name string
	// ConsecutiveFailures opens the breaker once reached. Zero means 3.
	ConsecutiveFailures uint32
	// Timeout is how long the breaker stays open before letting a probe
	// through. Zero means 30s.
	Timeout time.Duration
}

type breakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker guards next with a circuit breaker. After the configured run
// of consecutive failures, Get and Set fail fast with ErrUnavailable until a
// half-open probe succeeds.
func WithBreaker(next Store, s BreakerSettings, logger *slog.Logger) Store {
	if s.Name == "" {
		s.Name = "kv"
	}
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 3
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	threshold := s.ConsecutiveFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("backing store breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up says nothing about the store's health.
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return &breakerStore{next: next, cb: cb}
}

type getResult struct {
	value string
	ok    bool
}

func (b *breakerStore) Get(ctx context.Context, key string) (string, bool, error) {
	res, err := b.cb.Execute(func() (any, error) {
		v, ok, err := b.next.Get(ctx, key)
		return getResult{value: v, ok: ok}, err
	})
	if err != nil {
		return "", false, translateBreaker(err)
	}
	r := res.(getResult)
	return r.value, r.ok, nil
}

func (b *breakerStore) Set(ctx context.Context, key, value string) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.next.Set(ctx, key, value)
	})
	return translateBreaker(err)
}

func translateBreaker(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrUnavailable, err)
	}
	return err
}
