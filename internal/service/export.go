package service

import (
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// ExportRows flattens trips into one row per itinerary item, in trip order
// and item order. Trips with no itinerary contribute one row with empty item
// fields.
func ExportRows(trips []domain.Trip) []domain.ExportRow {
	rows := []domain.ExportRow{}
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:          t.ID,
			TripTitle:       t.Title,
			TripDestination: t.Destination,
			TripStatus:      string(t.Status),
			TripStartDate:   t.StartDate.Format(time.DateOnly),
			TripEndDate:     t.EndDate.Format(time.DateOnly),
		}
		if len(t.Itinerary) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, it := range t.Itinerary {
			row := base
			start, end := it.StartTime, it.EndTime
			row.ItemTitle = it.Title
			row.ItemType = string(it.Type)
			row.ItemLocation = it.Location
			row.ItemStart = &start
			row.ItemEnd = &end
			row.ItemCompleted = it.Completed
			rows = append(rows, row)
		}
	}
	return rows
}
