package handler

import (
	"net/http"

	"github.com/pkordes/tripstore/spec"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
	// Loaded is false until persisted data has been merged into memory.
	Loaded bool `json:"loaded"`
}

// getHealth handles GET /healthz.
// It returns HTTP 200 while the process is running, loaded or not.
func (s *Server) getHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if s.events != nil {
		resp.Loaded = s.events.Loaded()
	}
	writeJSON(w, http.StatusOK, resp)
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	//nolint:errcheck
	w.Write(spec.OpenAPI)
}
