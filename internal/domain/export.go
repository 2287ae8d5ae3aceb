package domain

import "time"

// ExportRow is a single row in the full-data export.
// It is a flat, denormalized view: one row per itinerary item, with trip
// fields repeated for every item on that trip. Trips with an empty itinerary
// yield one row with zero values for all item fields.
type ExportRow struct {
	// Trip fields, repeated for every item on the trip.
	TripID          string
	TripTitle       string
	TripDestination string
	TripStatus      string
	TripStartDate   string // "2006-01-02"
	TripEndDate     string // "2006-01-02"

	// Item fields, zero values when the trip has no itinerary.
	ItemTitle     string
	ItemType      string
	ItemLocation  string
	ItemStart     *time.Time
	ItemEnd       *time.Time
	ItemCompleted bool
}
