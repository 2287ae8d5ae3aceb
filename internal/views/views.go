// Package views computes the read-only projections screens render: upcoming
// and past bookings, ordered and filtered trip lists, travel statistics and
// the calendar state of a trip. Every function is pure; callers pass the
// current time and location.
package views

import (
	"slices"
	"strings"
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// StartOfDay returns local midnight of the day containing now in loc.
func StartOfDay(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	n := now.In(loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)
}

// byDateDesc returns a copy of bookings sorted newest first.
func byDateDesc(bookings []domain.Booking) []domain.Booking {
	out := slices.Clone(bookings)
	slices.SortStableFunc(out, func(a, b domain.Booking) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// UpcomingBookings returns the bookings dated today or later that are not
// cancelled, newest first.
func UpcomingBookings(bookings []domain.Booking, now time.Time, loc *time.Location) []domain.Booking {
	today := StartOfDay(now, loc)
	out := []domain.Booking{}
	for _, b := range byDateDesc(bookings) {
		if !b.Date.Before(today) && b.Status != domain.BookingCancelled {
			out = append(out, b)
		}
	}
	return out
}

// BookingFilter narrows BookingHistory. Zero fields match everything.
type BookingFilter struct {
	// Query is a case-insensitive substring matched against title or location.
	Query  string
	Status domain.BookingStatus
	Type   domain.BookingType
}

func (f BookingFilter) match(b domain.Booking) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Type != "" && b.Type != f.Type {
		return false
	}
	return containsFold(f.Query, b.Title, b.Location)
}

// BookingHistory returns past or cancelled bookings that match f, newest
// first. It is the complement of UpcomingBookings before filtering.
func BookingHistory(bookings []domain.Booking, now time.Time, loc *time.Location, f BookingFilter) []domain.Booking {
	today := StartOfDay(now, loc)
	out := []domain.Booking{}
	for _, b := range byDateDesc(bookings) {
		if !b.Date.Before(today) && b.Status != domain.BookingCancelled {
			continue
		}
		if f.match(b) {
			out = append(out, b)
		}
	}
	return out
}

// TripFilter narrows SortTrips. Zero fields match everything.
type TripFilter struct {
	// Query is a case-insensitive substring matched against title or destination.
	Query  string
	Status domain.TripStatus
}

func statusRank(s domain.TripStatus) int {
	switch s {
	case domain.TripOngoing:
		return 0
	case domain.TripUpcoming:
		return 1
	case domain.TripCompleted:
		return 2
	default:
		return 3
	}
}

// SortTrips filters trips by f and orders them ongoing, upcoming, completed,
// then by ascending start date. Equal keys keep their input order.
func SortTrips(trips []domain.Trip, f TripFilter) []domain.Trip {
	out := []domain.Trip{}
	for _, t := range trips {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if !containsFold(f.Query, t.Title, t.Destination) {
			continue
		}
		out = append(out, t)
	}
	slices.SortStableFunc(out, func(a, b domain.Trip) int {
		if ra, rb := statusRank(a.Status), statusRank(b.Status); ra != rb {
			return ra - rb
		}
		return a.StartDate.Compare(b.StartDate)
	})
	return out
}

// containsFold reports whether any field contains q, ignoring case.
// An empty q matches.
func containsFold(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
