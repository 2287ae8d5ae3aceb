package domain

import (
	"fmt"
	"time"
)

// ItemType classifies an itinerary entry.
type ItemType string

const (
	ItemActivity      ItemType = "activity"
	ItemAccommodation ItemType = "accommodation"
	ItemTransport     ItemType = "transport"
	ItemMeal          ItemType = "meal"
)

// ItineraryItem is a scheduled sub-event of exactly one trip.
type ItineraryItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"notblank"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required"`
	Type        ItemType  `json:"type" validate:"oneof=activity accommodation transport meal"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks field rules and that the item does not end before it starts.
func (it ItineraryItem) Validate() error {
	if err := validateStruct(it); err != nil {
		return err
	}
	if it.EndTime.Before(it.StartTime) {
		return fmt.Errorf("%w: endTime must not be before startTime", ErrValidation)
	}
	return nil
}

// ItemInput is the caller-supplied data for a new itinerary item.
// A nil EndTime means "one hour after StartTime".
type ItemInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Type        ItemType   `json:"type,omitempty"`
}

// ItemPatch carries a partial edit of an itinerary item.
type ItemPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Type        *ItemType  `json:"type,omitempty"`
}
