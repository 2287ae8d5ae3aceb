package repo

import (
	"fmt"
	"slices"

	"github.com/pkordes/tripstore/internal/domain"
)

// AddBooking validates in, assigns an id, and stores the booking.
func (r *Repository) AddBooking(in domain.BookingInput) (domain.Booking, error) {
	b := in.Booking()

	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.newID()
	if err := b.Validate(); err != nil {
		return domain.Booking{}, fmt.Errorf("repo.Repository.AddBooking: %w", err)
	}
	r.bookings = append(r.bookings, b)
	r.metrics.Mutation(KeyBookings, "add")
	r.persistLocked(KeyBookings)
	return b.Clone(), nil
}

// CancelBooking moves a booking to cancelled. Bookings are never deleted.
// Unknown ids and already cancelled bookings are a silent no-op. It reports
// whether the booking changed.
func (r *Repository) CancelBooking(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 || r.bookings[i].Status == domain.BookingCancelled {
		return false
	}
	r.bookings[i].Status = domain.BookingCancelled
	r.metrics.Mutation(KeyBookings, "cancel")
	r.persistLocked(KeyBookings)
	return true
}

// Bookings returns a deep copy of every booking in insertion order.
func (r *Repository) Bookings() []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Booking, len(r.bookings))
	for i, b := range r.bookings {
		out[i] = b.Clone()
	}
	return out
}

// Booking returns a deep copy of one booking.
// Returns domain.ErrNotFound if no booking with that id exists.
func (r *Repository) Booking(id string) (domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := slices.IndexFunc(r.bookings, func(b domain.Booking) bool { return b.ID == id })
	if i < 0 {
		return domain.Booking{}, fmt.Errorf("repo.Repository.Booking: %w", domain.ErrNotFound)
	}
	return r.bookings[i].Clone(), nil
}
