package repo

import (
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/itinerary"
)

// AddItineraryItem appends a new item to the trip's itinerary.
// Returns domain.ErrNotFound if the trip does not exist.
func (r *Repository) AddItineraryItem(tripID string, in domain.ItemInput) (domain.ItineraryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.tripIndex(tripID)
	if i < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("repo.Repository.AddItineraryItem: trip %s: %w", tripID, domain.ErrNotFound)
	}
	t := r.trips[i].Clone()
	now := r.stamp(t.UpdatedAt)
	item, err := itinerary.New(in, r.newID(), now)
	if err != nil {
		return domain.ItineraryItem{}, fmt.Errorf("repo.Repository.AddItineraryItem: %w", err)
	}
	t.Itinerary = append(t.Itinerary, item)
	t.UpdatedAt = now
	r.trips[i] = t
	r.metrics.Mutation(KeyTrips, "itinerary_add")
	r.persistLocked(KeyTrips)
	return item, nil
}

// UpdateItineraryItem edits one item. Unknown trip or item ids are a
// silent no-op.
func (r *Repository) UpdateItineraryItem(tripID, itemID string, patch domain.ItemPatch) error {
	return r.mutateItem(tripID, itemID, "itinerary_update", func(it domain.ItineraryItem, now time.Time) (domain.ItineraryItem, error) {
		return itinerary.Edit(it, patch, now)
	})
}

// ToggleItineraryItem flips the completed flag of one item. Unknown trip or
// item ids are a silent no-op.
func (r *Repository) ToggleItineraryItem(tripID, itemID string) error {
	return r.mutateItem(tripID, itemID, "itinerary_toggle", func(it domain.ItineraryItem, now time.Time) (domain.ItineraryItem, error) {
		return itinerary.Toggle(it, now), nil
	})
}

// DeleteItineraryItem removes one item and reports whether it existed.
// Unknown ids are a silent no-op.
func (r *Repository) DeleteItineraryItem(tripID, itemID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.tripIndex(tripID)
	if i < 0 {
		return false
	}
	j := itemIndex(r.trips[i].Itinerary, itemID)
	if j < 0 {
		return false
	}
	t := r.trips[i].Clone()
	t.Itinerary = slices.Delete(t.Itinerary, j, j+1)
	t.UpdatedAt = r.stamp(t.UpdatedAt)
	r.trips[i] = t
	r.metrics.Mutation(KeyTrips, "itinerary_delete")
	r.persistLocked(KeyTrips)
	return true
}

// ItineraryItem returns one item of a trip.
// Returns domain.ErrNotFound if either the trip or the item does not exist.
func (r *Repository) ItineraryItem(tripID, itemID string) (domain.ItineraryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.tripIndex(tripID)
	if i < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("repo.Repository.ItineraryItem: trip %s: %w", tripID, domain.ErrNotFound)
	}
	j := itemIndex(r.trips[i].Itinerary, itemID)
	if j < 0 {
		return domain.ItineraryItem{}, fmt.Errorf("repo.Repository.ItineraryItem: item %s: %w", itemID, domain.ErrNotFound)
	}
	return r.trips[i].Itinerary[j], nil
}

func (r *Repository) mutateItem(tripID, itemID, op string, fn func(domain.ItineraryItem, time.Time) (domain.ItineraryItem, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.tripIndex(tripID)
	if i < 0 {
		return nil
	}
	j := itemIndex(r.trips[i].Itinerary, itemID)
	if j < 0 {
		return nil
	}
	t := r.trips[i].Clone()
	now := r.stamp(t.UpdatedAt)
	item, err := fn(t.Itinerary[j], now)
	if err != nil {
		return fmt.Errorf("repo.Repository.mutateItem %s: %w", op, err)
	}
	t.Itinerary[j] = item
	t.UpdatedAt = now
	r.trips[i] = t
	r.metrics.Mutation(KeyTrips, op)
	r.persistLocked(KeyTrips)
	return nil
}

func itemIndex(items []domain.ItineraryItem, id string) int {
	return slices.IndexFunc(items, func(it domain.ItineraryItem) bool { return it.ID == id })
}
