package repo

import (
	"fmt"
	"slices"

	"github.com/pkordes/tripstore/internal/domain"
)

// AddTrip validates in, assigns an id and timestamps, and stores the trip.
func (r *Repository) AddTrip(in domain.TripInput) (domain.Trip, error) {
	t := in.Trip()

	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.newID()
	t.CreatedAt = r.stamp(t.CreatedAt)
	t.UpdatedAt = t.CreatedAt
	if err := t.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.Repository.AddTrip: %w", err)
	}
	r.trips = append(r.trips, t)
	r.metrics.Mutation(KeyTrips, "add")
	r.persistLocked(KeyTrips)
	return t.Clone(), nil
}

// UpdateTrip merges patch into the trip with the given id and refreshes
// updatedAt. An unknown id is a silent no-op. A patch that would leave the
// trip invalid returns domain.ErrValidation and changes nothing.
func (r *Repository) UpdateTrip(id string, patch domain.TripPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.tripIndex(id)
	if i < 0 {
		return nil
	}
	t := patch.Apply(r.trips[i])
	if err := t.Validate(); err != nil {
		return fmt.Errorf("repo.Repository.UpdateTrip: %w", err)
	}
	t.UpdatedAt = r.stamp(t.UpdatedAt)
	r.trips[i] = t
	r.metrics.Mutation(KeyTrips, "update")
	r.persistLocked(KeyTrips)
	return nil
}

// DeleteTrip removes a trip together with its itinerary and reports whether
// a trip was removed. Idempotent.
func (r *Repository) DeleteTrip(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.deletedTrips[id] = struct{}{}
	}
	i := r.tripIndex(id)
	if i < 0 {
		if !r.loaded {
			// The trip may exist in storage; persist the tombstone after load.
			r.dirty[KeyTrips] = true
		}
		return false
	}
	r.trips = slices.Delete(r.trips, i, i+1)
	r.metrics.Mutation(KeyTrips, "delete")
	r.persistLocked(KeyTrips)
	return true
}

// SetReview attaches or replaces the review of a completed trip. Replacing
// keeps the original review createdAt.
func (r *Repository) SetReview(id string, in domain.ReviewInput) (domain.Trip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.tripIndex(id)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("repo.Repository.SetReview: trip %s: %w", id, domain.ErrNotFound)
	}
	t := r.trips[i].Clone()
	if t.Status != domain.TripCompleted {
		return domain.Trip{}, fmt.Errorf("repo.Repository.SetReview: %w: only completed trips can be reviewed", domain.ErrValidation)
	}

	now := r.stamp(t.UpdatedAt)
	review := domain.Review{
		Text:      in.Text,
		Rating:    in.Rating,
		Images:    slices.Clone(in.Images),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if review.Images == nil {
		review.Images = []string{}
	}
	if t.Review != nil {
		review.CreatedAt = t.Review.CreatedAt
	}
	t.Review = &review
	t.UpdatedAt = now
	if err := t.Validate(); err != nil {
		return domain.Trip{}, fmt.Errorf("repo.Repository.SetReview: %w", err)
	}
	r.trips[i] = t
	r.metrics.Mutation(KeyTrips, "review")
	r.persistLocked(KeyTrips)
	return t.Clone(), nil
}

// Trips returns a deep copy of every trip in insertion order.
func (r *Repository) Trips() []domain.Trip {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Trip, len(r.trips))
	for i, t := range r.trips {
		out[i] = t.Clone()
	}
	return out
}

// Trip returns a deep copy of one trip.
// Returns domain.ErrNotFound if no trip with that id exists.
func (r *Repository) Trip(id string) (domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.tripIndex(id)
	if i < 0 {
		return domain.Trip{}, fmt.Errorf("repo.Repository.Trip: %w", domain.ErrNotFound)
	}
	return r.trips[i].Clone(), nil
}

func (r *Repository) tripIndex(id string) int {
	return slices.IndexFunc(r.trips, func(t domain.Trip) bool { return t.ID == id })
}
