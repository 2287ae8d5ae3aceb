// Package handler: export.go implements GET /export.
// Returns all trips and their itinerary items as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripstore/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_destination", "trip_status",
	"trip_start_date", "trip_end_date",
	"item_title", "item_type", "item_location", "item_start", "item_end", "item_completed",
}

// ExportRow is the JSON shape of one export row. Item fields are omitted for
// trips without an itinerary.
type ExportRow struct {
	TripID          string             `json:"tripId"`
	TripTitle       string             `json:"tripTitle"`
	TripDestination string             `json:"tripDestination"`
	TripStatus      string             `json:"tripStatus"`
	TripStartDate   openapi_types.Date `json:"tripStartDate"`
	TripEndDate     openapi_types.Date `json:"tripEndDate"`
	ItemTitle       *string            `json:"itemTitle,omitempty"`
	ItemType        *string            `json:"itemType,omitempty"`
	ItemLocation    *string            `json:"itemLocation,omitempty"`
	ItemStart       *time.Time         `json:"itemStart,omitempty"`
	ItemEnd         *time.Time         `json:"itemEnd,omitempty"`
	ItemCompleted   *bool              `json:"itemCompleted,omitempty"`
}

// getExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) getExport(w http.ResponseWriter, r *http.Request) {
	format, err := queryString(r.URL.Query(), "format")
	if err != nil {
		badQuery(w, err)
		return
	}
	rows := s.export.Export()

	switch format {
	case "", "json":
		writeJSON(w, http.StatusOK, buildJSONRows(rows))
	case "csv":
		body := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="tripstore-export.csv"`)
		w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck
		body.WriteTo(w)
	default:
		writeError(w, http.StatusBadRequest, "bad_request", `format must be "json" or "csv"`)
	}
}

// buildJSONRows converts domain rows to the JSON response shape.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domainRowToJSON(r))
	}
	return out
}

// buildCSV encodes domain rows as CSV with a header row.
func buildCSV(rows []domain.ExportRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

// domainRowToJSON maps a domain.ExportRow to ExportRow. Rows without an item
// keep every item field nil.
func domainRowToJSON(r domain.ExportRow) ExportRow {
	row := ExportRow{
		TripID:          r.TripID,
		TripTitle:       r.TripTitle,
		TripDestination: r.TripDestination,
		TripStatus:      r.TripStatus,
		TripStartDate:   parseDate(r.TripStartDate),
		TripEndDate:     parseDate(r.TripEndDate),
	}
	if r.ItemStart == nil {
		return row
	}
	row.ItemTitle = &r.ItemTitle
	row.ItemType = &r.ItemType
	if r.ItemLocation != "" {
		row.ItemLocation = &r.ItemLocation
	}
	row.ItemStart = r.ItemStart
	row.ItemEnd = r.ItemEnd
	row.ItemCompleted = &r.ItemCompleted
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Rows without an item leave every item column empty.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	completed := ""
	if r.ItemStart != nil {
		completed = strconv.FormatBool(r.ItemCompleted)
	}
	return []string{
		r.TripID,
		r.TripTitle,
		r.TripDestination,
		r.TripStatus,
		r.TripStartDate,
		r.TripEndDate,
		r.ItemTitle,
		r.ItemType,
		r.ItemLocation,
		formatOptionalTime(r.ItemStart),
		formatOptionalTime(r.ItemEnd),
		completed,
	}
}

// parseDate parses a "2006-01-02" string into an openapi_types.Date. Rows are
// built from stored trips, so a malformed date yields the zero date.
func parseDate(s string) openapi_types.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return openapi_types.Date{}
	}
	return openapi_types.Date{Time: t}
}

// formatOptionalTime returns the RFC3339 representation of t, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
