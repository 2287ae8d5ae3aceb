package views

import (
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// TravelStats summarises the traveller's history for the profile screen.
type TravelStats struct {
	CountriesVisited int `json:"countriesVisited"`
	TripsCompleted   int `json:"tripsCompleted"`
	ReviewsWritten   int `json:"reviewsWritten"`
}

// Stats counts completed trips, their distinct destination values and
// written reviews. Destinations are compared exactly as stored.
func Stats(trips []domain.Trip) TravelStats {
	var s TravelStats
	seen := make(map[string]struct{})
	for _, t := range trips {
		if t.Review != nil {
			s.ReviewsWritten++
		}
		if t.Status != domain.TripCompleted {
			continue
		}
		s.TripsCompleted++
		seen[t.Destination] = struct{}{}
	}
	s.CountriesVisited = len(seen)
	return s
}

// CalendarState is the position of a trip on the calendar relative to now.
type CalendarState string

const (
	CalendarUpcoming CalendarState = "upcoming"
	CalendarOngoing  CalendarState = "ongoing"
	CalendarPast     CalendarState = "past"
)

// DateState derives the calendar state of t purely from its dates. It is
// independent of t.Status, which the user manages.
func DateState(t domain.Trip, now time.Time) CalendarState {
	switch {
	case now.Before(t.StartDate):
		return CalendarUpcoming
	case now.After(t.EndDate):
		return CalendarPast
	default:
		return CalendarOngoing
	}
}
