package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tripstore/internal/catalog"
	"github.com/pkordes/tripstore/internal/domain"
)

// SavedState is the body of GET /saved/{id} and the toggle response.
type SavedState struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

// listSaved handles GET /saved.
func (s *Server) listSaved(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.saved.SavedItems())
}

// addSaved handles POST /saved. A body carrying only an id is completed from
// the catalog. Saving an item twice keeps the first copy.
func (s *Server) addSaved(w http.ResponseWriter, r *http.Request) {
	var item domain.SavedItem
	if !decode(w, r, &item) {
		return
	}
	if item.Title == "" && item.ID != "" {
		fromCatalog, ok := catalog.SavedItem(item.ID)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found", "catalog item not found")
			return
		}
		item = fromCatalog
	}
	if err := s.saved.AddSavedItem(item); err != nil {
		s.fail(w, r, err, "catalog item not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// getSaved handles GET /saved/{id}.
func (s *Server) getSaved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, SavedState{ID: id, Saved: s.saved.IsItemSaved(id)})
}

// deleteSaved handles DELETE /saved/{id}. Removing an unsaved item is not an error.
func (s *Server) deleteSaved(w http.ResponseWriter, r *http.Request) {
	s.saved.RemoveSavedItem(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// toggleSaved handles POST /saved/{id}/toggle. The body is optional: without
// one, the item is taken from the saved list or the catalog.
func (s *Server) toggleSaved(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, ok, err := s.toggleTarget(r, id)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", "malformed JSON: "+err.Error())
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "catalog item not found")
		return
	}
	saved, err := s.saved.ToggleSavedItem(item)
	if err != nil {
		s.fail(w, r, err, "catalog item not found")
		return
	}
	writeJSON(w, http.StatusOK, SavedState{ID: id, Saved: saved})
}

func (s *Server) toggleTarget(r *http.Request, id string) (domain.SavedItem, bool, error) {
	var item domain.SavedItem
	err := decodeOptional(r, &item)
	if err != nil {
		return domain.SavedItem{}, false, err
	}
	if item.Title != "" {
		item.ID = id
		return item, true, nil
	}
	for _, it := range s.saved.SavedItems() {
		if it.ID == id {
			return it, true, nil
		}
	}
	fromCatalog, ok := catalog.SavedItem(id)
	return fromCatalog, ok, nil
}

// decodeOptional decodes a JSON body when there is one. An empty body leaves
// dst untouched.
func decodeOptional(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
