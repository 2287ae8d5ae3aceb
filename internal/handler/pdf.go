package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/phpdave11/gofpdf"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/itinerary"
)

// getItineraryPDF handles GET /trips/{id}/itinerary.pdf.
func (s *Server) getItineraryPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	trip, err := s.trips.Trip(id)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	days, err := s.itinerary.Itinerary(id)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	doc, err := renderItineraryPDF(trip.Trip, days, s.opts.Location)
	if err != nil {
		s.fail(w, r, err, "trip not found")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="itinerary-%s.pdf"`, trip.ID))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(doc)
}

// renderItineraryPDF lays out one A4 document: a trip header, then one
// section per day with the items in start order.
func renderItineraryPDF(trip domain.Trip, days []itinerary.Day, loc *time.Location) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented place names survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(trip.Title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(trip.Title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr(fmt.Sprintf("%s, %s to %s", trip.Destination,
		trip.StartDate.In(loc).Format("Jan 2, 2006"), trip.EndDate.In(loc).Format("Jan 2, 2006"))))
	pdf.Ln(12)

	if len(days) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 7, "No itinerary items yet.")
		pdf.Ln(7)
	}

	for _, day := range days {
		heading := day.Date
		if d, err := time.ParseInLocation(itinerary.DayLayout, day.Date, loc); err == nil {
			heading = d.Format("Monday, Jan 2")
		}
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, heading)
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "", 11)
		for _, it := range day.Items {
			mark := "[ ]"
			if it.Completed {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s-%s  %s (%s, %s)", mark,
				it.StartTime.In(loc).Format("15:04"), it.EndTime.In(loc).Format("15:04"),
				it.Title, it.Type, itinerary.FormatDuration(it))
			pdf.MultiCell(0, 6, tr(line), "", "", false)
			if it.Location != "" {
				pdf.SetFont("Helvetica", "I", 10)
				pdf.MultiCell(0, 5, tr("    "+it.Location), "", "", false)
				pdf.SetFont("Helvetica", "", 11)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("handler.renderItineraryPDF: %w", err)
	}
	return buf.Bytes(), nil
}
