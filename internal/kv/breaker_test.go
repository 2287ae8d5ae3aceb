package kv_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/kv"
)

// flakyStore wraps a Memory store and fails while down is set.
type flakyStore struct {
	mu    sync.Mutex
	inner *kv.Memory
	down  bool
	calls int
}

var _ kv.Store = (*flakyStore)(nil)

var errStoreDown = errors.New("store down")

func newFlakyStore() *flakyStore { return &flakyStore{inner: kv.NewMemory()} }

func (f *flakyStore) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

func (f *flakyStore) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *flakyStore) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	f.calls++
	down := f.down
	f.mu.Unlock()
	if down {
		return "", false, errStoreDown
	}
	return f.inner.Get(ctx, key)
}

func (f *flakyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.calls++
	down := f.down
	f.mu.Unlock()
	if down {
		return errStoreDown
	}
	return f.inner.Set(ctx, key, value)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithBreaker_PassesThrough(t *testing.T) {
	exerciseStore(t, kv.WithBreaker(kv.NewMemory(), kv.BreakerSettings{}, discardLogger()))
}

func TestWithBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := newFlakyStore()
	inner.setDown(true)
	s := kv.WithBreaker(inner, kv.BreakerSettings{ConsecutiveFailures: 2, Timeout: time.Hour}, discardLogger())
	ctx := context.Background()

	assert.ErrorIs(t, s.Set(ctx, "trips", "[]"), errStoreDown)
	assert.ErrorIs(t, s.Set(ctx, "trips", "[]"), errStoreDown)

	err := s.Set(ctx, "trips", "[]")
	assert.ErrorIs(t, err, kv.ErrUnavailable)
	_, _, err = s.Get(ctx, "trips")
	assert.ErrorIs(t, err, kv.ErrUnavailable)
	assert.Equal(t, 2, inner.callCount(), "open breaker must not reach the store")
}

func TestWithBreaker_RecoversAfterTimeout(t *testing.T) {
	inner := newFlakyStore()
	inner.setDown(true)
	s := kv.WithBreaker(inner, kv.BreakerSettings{ConsecutiveFailures: 1, Timeout: 20 * time.Millisecond}, discardLogger())
	ctx := context.Background()

	require.Error(t, s.Set(ctx, "trips", "[]"))
	require.ErrorIs(t, s.Set(ctx, "trips", "[]"), kv.ErrUnavailable)

	inner.setDown(false)
	time.Sleep(40 * time.Millisecond)

	require.NoError(t, s.Set(ctx, "trips", `["ok"]`))
	got, ok, err := s.Get(ctx, "trips")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["ok"]`, got)
}

func TestWithBreaker_CancelledCallsDoNotTrip(t *testing.T) {
	s := kv.WithBreaker(kv.NewMemory(), kv.BreakerSettings{ConsecutiveFailures: 1, Timeout: time.Hour}, discardLogger())
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(cancelled, "trips", "[]"), context.Canceled)
	assert.NoError(t, s.Set(context.Background(), "trips", "[]"))
}
