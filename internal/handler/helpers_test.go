package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/handler"
	"github.com/pkordes/tripstore/internal/kv"
	"github.com/pkordes/tripstore/internal/repo"
	"github.com/pkordes/tripstore/internal/service"
	"github.com/pkordes/tripstore/internal/views"
)

// ---- helpers ---------------------------------------------------------------

var today = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newDataContext returns a loaded DataContext over an in-memory store with
// the clock fixed at today.
func newDataContext(t *testing.T) *service.DataContext {
	t.Helper()
	r := repo.New(kv.NewMemory(), repo.Options{Logger: quietLogger()})
	dc := service.New(r, service.Options{
		Logger:   quietLogger(),
		Now:      func() time.Time { return today },
		Location: time.UTC,
	})
	dc.Start(context.Background())
	select {
	case <-dc.Ready():
	case <-time.After(2 * time.Second):
		t.Fatal("data context never became ready")
	}
	t.Cleanup(func() { _ = dc.Close(context.Background()) })
	return dc
}

// newHTTPHandler wires a Server backed by a real in-memory DataContext.
// This mirrors how main.go wires it in production.
func newHTTPHandler(t *testing.T) (http.Handler, *service.DataContext) {
	t.Helper()
	dc := newDataContext(t)
	srv := handler.NewServer(handler.FromDataContext(dc), handler.Options{
		Logger:   quietLogger(),
		Location: time.UTC,
	})
	return srv.Routes(), dc
}

// newMockHandler wires a Server with hand-written doubles.
func newMockHandler(svc handler.Services) http.Handler {
	return handler.NewServer(svc, handler.Options{Logger: quietLogger()}).Routes()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends one request. body may be nil, an io.Reader, or any JSON-encodable value.
func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		r = b
	default:
		r = jsonBody(t, b)
	}
	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func tripBody(title string, start time.Time, days int) map[string]any {
	return map[string]any{
		"title":       title,
		"destination": title,
		"startDate":   start.Format(time.RFC3339),
		"endDate":     start.AddDate(0, 0, days).Format(time.RFC3339),
	}
}

func addTrip(t *testing.T, dc *service.DataContext, title string, start time.Time, days int) domain.Trip {
	t.Helper()
	trip, err := dc.AddTrip(domain.TripInput{
		Title:       title,
		Destination: title,
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, days),
	})
	require.NoError(t, err)
	return trip
}

// ---- mocks -----------------------------------------------------------------

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	addTrip     func(in domain.TripInput) (domain.Trip, error)
	updateTrip  func(id string, patch domain.TripPatch) error
	deleteTrip  func(id string)
	setReview   func(id string, in domain.ReviewInput) (domain.Trip, error)
	trip        func(id string) (service.TripView, error)
	sortedTrips func(f views.TripFilter) []domain.Trip
	stats       func() views.TravelStats
}

func (m *mockTripServicer) AddTrip(in domain.TripInput) (domain.Trip, error) { return m.addTrip(in) }
func (m *mockTripServicer) UpdateTrip(id string, patch domain.TripPatch) error {
	return m.updateTrip(id, patch)
}
func (m *mockTripServicer) DeleteTrip(id string) { m.deleteTrip(id) }
func (m *mockTripServicer) SetReview(id string, in domain.ReviewInput) (domain.Trip, error) {
	return m.setReview(id, in)
}
func (m *mockTripServicer) Trip(id string) (service.TripView, error)     { return m.trip(id) }
func (m *mockTripServicer) SortedTrips(f views.TripFilter) []domain.Trip { return m.sortedTrips(f) }
func (m *mockTripServicer) Stats() views.TravelStats                     { return m.stats() }

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// mockEventSource is a test double for handler.EventSource whose channel the
// test drives directly.
type mockEventSource struct {
	loaded bool
	ch     chan service.Event
	unsubs int
}

func (m *mockEventSource) Loaded() bool { return m.loaded }
func (m *mockEventSource) Subscribe() (<-chan service.Event, func()) {
	return m.ch, func() { m.unsubs++ }
}

var _ handler.EventSource = (*mockEventSource)(nil)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func() []domain.ExportRow
}

func (m *mockExportServicer) Export() []domain.ExportRow { return m.export() }

var _ handler.ExportServicer = (*mockExportServicer)(nil)
