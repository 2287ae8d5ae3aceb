package repo_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/internal/repo"
)

// recordingStore is a kv.Store double that records every Set, can be made
// to fail, and can hold Get calls until released.
type recordingStore struct {
	mu      sync.Mutex
	data    map[string]string
	sets    []string
	failSet error
	failGet error
	gate    chan struct{}
}

var _ kv.Store = (*recordingStore)(nil)

func newRecordingStore() *recordingStore {
	return &recordingStore{data: make(map[string]string)}
}

func (s *recordingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet != nil {
		return "", false, s.failGet
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *recordingStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet != nil {
		return s.failSet
	}
	s.data[key] = value
	s.sets = append(s.sets, key)
	return nil
}

func (s *recordingStore) put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *recordingStore) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *recordingStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets)
}

func (s *recordingStore) setFailSet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = err
}

var errDiskFull = errors.New("disk full")

// fixedClock always returns the same instant, so every strictly increasing
// timestamp must come from the repository itself.
var epoch = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return epoch }

// sequentialIDs returns an id generator producing id-1, id-2, ...
func sequentialIDs() func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func tripIDs(trips []domain.Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		out[i] = t.ID
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRepo builds a repository over store with a frozen clock and predictable
// ids, loads it, and closes it when the test ends.
func newRepo(t *testing.T, store kv.Store) *repo.Repository {
	t.Helper()
	r := newUnloadedRepo(t, store)
	require.NoError(t, r.Load(context.Background()))
	return r
}

func newUnloadedRepo(t *testing.T, store kv.Store) *repo.Repository {
	t.Helper()
	r := repo.New(store, repo.Options{
		Logger: quietLogger(),
		Now:    fixedClock,
		NewID:  sequentialIDs(),
	})
	t.Cleanup(func() { _ = r.Close(context.Background()) })
	return r
}

func tripInput(title string) domain.TripInput {
	return domain.TripInput{
		Title:       title,
		Destination: "Portugal",
		StartDate:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
	}
}

func hotelInput(title string, date time.Time) domain.BookingInput {
	return domain.BookingInput{
		Type:     domain.BookingHotel,
		Title:    title,
		Location: "Lisbon",
		Date:     date,
		Price:    240,
		Details: domain.HotelDetails{
			CheckIn:  date,
			CheckOut: date.AddDate(0, 0, 2),
			Guests:   2,
			Rooms:    1,
			Features: []string{"wifi"},
		},
	}
}

func savedItem(id string) domain.SavedItem {
	return domain.SavedItem{ID: id, Type: domain.SavedHotel, Title: "Hotel " + id, Rating: 4.5, Price: 120}
}

func strPtr(s string) *string { return &s }
