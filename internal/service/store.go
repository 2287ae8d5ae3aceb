// Package service exposes the trip store to the rest of the application
// through a single DataContext: every mutator and read of the repository,
// the derived views, catalog booking, and change notifications.
package service

import (
	"context"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/repo"
)

// Store is the repository surface the DataContext drives.
// *repo.Repository implements it; tests may substitute a fake.
type Store interface {
	Load(ctx context.Context) error
	Loaded() bool
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
	Durability() repo.Durability

	AddTrip(in domain.TripInput) (domain.Trip, error)
	UpdateTrip(id string, patch domain.TripPatch) error
	DeleteTrip(id string) bool
	SetReview(id string, in domain.ReviewInput) (domain.Trip, error)
	Trips() []domain.Trip
	Trip(id string) (domain.Trip, error)

	AddItineraryItem(tripID string, in domain.ItemInput) (domain.ItineraryItem, error)
	UpdateItineraryItem(tripID, itemID string, patch domain.ItemPatch) error
	ToggleItineraryItem(tripID, itemID string) error
	DeleteItineraryItem(tripID, itemID string) bool
	ItineraryItem(tripID, itemID string) (domain.ItineraryItem, error)

	AddBooking(in domain.BookingInput) (domain.Booking, error)
	CancelBooking(id string) bool
	Bookings() []domain.Booking
	Booking(id string) (domain.Booking, error)

	AddSavedItem(item domain.SavedItem) error
	RemoveSavedItem(id string) bool
	ToggleSavedItem(item domain.SavedItem) (bool, error)
	IsItemSaved(id string) bool
	SavedItems() []domain.SavedItem
}

var _ Store = (*repo.Repository)(nil)
