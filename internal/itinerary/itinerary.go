// Package itinerary holds the pure rules for itinerary items: creation and
// edit normalisation, completion toggling, day grouping and durations.
// Ownership of items (attaching them to a trip and persisting) lives in the
// repository.
package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// DefaultDuration is the length given to an item whose end time is missing
// or not after its start time.
const DefaultDuration = time.Hour

// NormalizeEnd returns the end time an item spanning start..end should have.
// A nil or zero end, or one not after start, becomes start+DefaultDuration.
func NormalizeEnd(start time.Time, end *time.Time) time.Time {
	if end == nil || end.IsZero() || !start.Before(*end) {
		return start.Add(DefaultDuration)
	}
	return *end
}

// New builds a validated item from in. The caller supplies the id and clock.
func New(in domain.ItemInput, id string, now time.Time) (domain.ItineraryItem, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.ItineraryItem{}, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if in.StartTime.IsZero() {
		return domain.ItineraryItem{}, fmt.Errorf("%w: startTime is required", domain.ErrValidation)
	}
	it := domain.ItineraryItem{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		StartTime:   in.StartTime,
		EndTime:     NormalizeEnd(in.StartTime, in.EndTime),
		Type:        in.Type,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if it.Type == "" {
		it.Type = domain.ItemActivity
	}
	if err := it.Validate(); err != nil {
		return domain.ItineraryItem{}, err
	}
	return it, nil
}

// Edit applies patch to it. ID, CreatedAt and Completed are preserved and
// UpdatedAt is set to now. The end time is normalised against the resulting
// start time only when the patch touches either time; a stored zero-length
// range survives edits to other fields.
func Edit(it domain.ItineraryItem, patch domain.ItemPatch, now time.Time) (domain.ItineraryItem, error) {
	out := it
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.StartTime != nil {
		out.StartTime = *patch.StartTime
	}
	if patch.StartTime != nil || patch.EndTime != nil {
		end := out.EndTime
		if patch.EndTime != nil {
			end = *patch.EndTime
		}
		out.EndTime = NormalizeEnd(out.StartTime, &end)
	}
	if patch.Type != nil {
		out.Type = *patch.Type
	}
	out.UpdatedAt = now

	if err := out.Validate(); err != nil {
		return domain.ItineraryItem{}, err
	}
	return out, nil
}

// Toggle flips the completion flag and stamps UpdatedAt.
func Toggle(it domain.ItineraryItem, now time.Time) domain.ItineraryItem {
	it.Completed = !it.Completed
	it.UpdatedAt = now
	return it
}

// Duration returns the length of the item in hours.
func Duration(it domain.ItineraryItem) float64 {
	return it.EndTime.Sub(it.StartTime).Hours()
}

// FormatDuration renders Duration with one decimal place, e.g. "1.5h".
func FormatDuration(it domain.ItineraryItem) string {
	return fmt.Sprintf("%.1fh", Duration(it))
}
