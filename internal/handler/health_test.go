package handler_test

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/handler"
	"github.com/pkordes/tripstore/internal/metrics"
)

// TestGetHealth_returns200WithLoaded verifies that GET /healthz returns
// HTTP 200 and reports whether persisted data has been loaded.
func TestGetHealth_returns200WithLoaded(t *testing.T) {
	for _, loaded := range []bool{false, true} {
		h := newMockHandler(handler.Services{Events: &mockEventSource{loaded: loaded}})

		rec := do(t, h, http.MethodGet, "/healthz", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeJSON[handler.HealthResponse](t, rec)
		assert.Equal(t, handler.HealthResponse{Status: "ok", Loaded: loaded}, body)
	}
}

func TestGetOpenAPI(t *testing.T) {
	h := newMockHandler(handler.Services{})

	rec := do(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi:")
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.Mutation("trips", "add")
	h := handler.NewServer(handler.Services{}, handler.Options{
		Logger:  quietLogger(),
		Metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}).Routes()

	rec := do(t, h, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tripstore_mutations_total{collection="trips",op="add"} 1`)
}

func TestMetricsRoute_AbsentWithoutHandler(t *testing.T) {
	rec := do(t, newMockHandler(handler.Services{}), http.MethodGet, "/metrics", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMaxBodyBytes_413(t *testing.T) {
	dc := newDataContext(t)
	h := handler.NewServer(handler.FromDataContext(dc), handler.Options{
		Logger:       quietLogger(),
		MaxBodyBytes: 64,
	}).Routes()

	rec := do(t, h, http.MethodPost, "/trips", tripBody("A title long enough to overflow the tiny limit", today, 3))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, dc.Trips())
}

func TestCORS_PreflightAllowed(t *testing.T) {
	h := handler.NewServer(handler.Services{}, handler.Options{
		Logger:      quietLogger(),
		CORSOrigins: []string{"http://localhost:8081"},
	}).Routes()

	req := newRequest(http.MethodOptions, "/trips")
	req.Header.Set("Origin", "http://localhost:8081")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := serve(h, req)

	assert.Equal(t, "http://localhost:8081", rec.Header().Get("Access-Control-Allow-Origin"))
}
