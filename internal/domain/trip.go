// Package domain contains the core data types for the trip store: trips and
// their itineraries, bookings, and saved catalog items.
// Types carry their own validation rules and deep-copy helpers so the
// repository can hand out values without sharing mutable state.
package domain

import (
	"fmt"
	"slices"
	"time"
)

// TripStatus is the user-managed lifecycle label of a trip.
// It is not derived from the calendar; see views.DateState for that.
type TripStatus string

const (
	TripUpcoming  TripStatus = "upcoming"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// TripType classifies the purpose of a trip.
type TripType string

const (
	TripLeisure   TripType = "leisure"
	TripBusiness  TripType = "business"
	TripAdventure TripType = "adventure"
	TripFamily    TripType = "family"
	TripRomantic  TripType = "romantic"
	TripOther     TripType = "other"
)

// Priority is the planning priority of a trip.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Review is the traveller's write-up of a completed trip.
type Review struct {
	Text      string    `json:"text"`
	Rating    int       `json:"rating" validate:"min=1,max=5"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Trip is the top-level aggregate. It exclusively owns its itinerary; items
// are serialized inside the trip and never stored under their own key.
type Trip struct {
	ID          string          `json:"id"`
	Title       string          `json:"title" validate:"notblank"`
	Destination string          `json:"destination" validate:"notblank"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image"`
	StartDate   time.Time       `json:"startDate" validate:"required"`
	EndDate     time.Time       `json:"endDate" validate:"required"`
	Status      TripStatus      `json:"status" validate:"oneof=upcoming ongoing completed"`
	Budget      *float64        `json:"budget,omitempty" validate:"omitempty,gte=0"`
	Currency    string          `json:"currency,omitempty" validate:"omitempty,len=3"`
	Travelers   *int            `json:"travelers,omitempty" validate:"omitempty,gte=1"`
	TripType    TripType        `json:"tripType" validate:"oneof=leisure business adventure family romantic other"`
	Priority    Priority        `json:"priority" validate:"oneof=low medium high"`
	IsPublic    bool            `json:"isPublic"`
	Review      *Review         `json:"review,omitempty"`
	Itinerary   []ItineraryItem `json:"itinerary" validate:"dive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Validate checks field rules and the date-range invariant.
func (t Trip) Validate() error {
	if err := validateStruct(t); err != nil {
		return err
	}
	if !t.EndDate.After(t.StartDate) {
		return fmt.Errorf("%w: endDate must be after startDate", ErrValidation)
	}
	return nil
}

// Clone returns a deep copy of t.
func (t Trip) Clone() Trip {
	out := t
	if t.Budget != nil {
		b := *t.Budget
		out.Budget = &b
	}
	if t.Travelers != nil {
		n := *t.Travelers
		out.Travelers = &n
	}
	if t.Review != nil {
		r := *t.Review
		r.Images = slices.Clone(t.Review.Images)
		out.Review = &r
	}
	if t.Itinerary != nil {
		out.Itinerary = make([]ItineraryItem, len(t.Itinerary))
		copy(out.Itinerary, t.Itinerary)
	}
	return out
}

// TripInput is the caller-supplied data for a new trip. Empty enum fields
// fall back to upcoming / leisure / medium.
type TripInput struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	Description string     `json:"description,omitempty"`
	Image       string     `json:"image,omitempty"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	Status      TripStatus `json:"status,omitempty"`
	Budget      *float64   `json:"budget,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Travelers   *int       `json:"travelers,omitempty"`
	TripType    TripType   `json:"tripType,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	IsPublic    bool       `json:"isPublic,omitempty"`
}

// Trip builds an unsaved Trip with defaults applied. ID and timestamps are
// left for the repository to assign.
func (in TripInput) Trip() Trip {
	t := Trip{
		Title:       in.Title,
		Destination: in.Destination,
		Description: in.Description,
		Image:       in.Image,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      in.Status,
		Budget:      in.Budget,
		Currency:    in.Currency,
		Travelers:   in.Travelers,
		TripType:    in.TripType,
		Priority:    in.Priority,
		IsPublic:    in.IsPublic,
		Itinerary:   []ItineraryItem{},
	}
	if t.Status == "" {
		t.Status = TripUpcoming
	}
	if t.TripType == "" {
		t.TripType = TripLeisure
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	return t.Clone()
}

// TripPatch carries a partial update. Nil fields are left untouched.
// Itinerary and review have their own operations and are not patchable here.
type TripPatch struct {
	Title       *string     `json:"title,omitempty"`
	Destination *string     `json:"destination,omitempty"`
	Description *string     `json:"description,omitempty"`
	Image       *string     `json:"image,omitempty"`
	StartDate   *time.Time  `json:"startDate,omitempty"`
	EndDate     *time.Time  `json:"endDate,omitempty"`
	Status      *TripStatus `json:"status,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	Currency    *string     `json:"currency,omitempty"`
	Travelers   *int        `json:"travelers,omitempty"`
	TripType    *TripType   `json:"tripType,omitempty"`
	Priority    *Priority   `json:"priority,omitempty"`
	IsPublic    *bool       `json:"isPublic,omitempty"`
}

// Apply returns a copy of t with the non-nil patch fields merged in.
func (p TripPatch) Apply(t Trip) Trip {
	out := t.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Destination != nil {
		out.Destination = *p.Destination
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.StartDate != nil {
		out.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		out.EndDate = *p.EndDate
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.Budget != nil {
		b := *p.Budget
		out.Budget = &b
	}
	if p.Currency != nil {
		out.Currency = *p.Currency
	}
	if p.Travelers != nil {
		n := *p.Travelers
		out.Travelers = &n
	}
	if p.TripType != nil {
		out.TripType = *p.TripType
	}
	if p.Priority != nil {
		out.Priority = *p.Priority
	}
	if p.IsPublic != nil {
		out.IsPublic = *p.IsPublic
	}
	return out
}

// ReviewInput is the caller-supplied content of a trip review.
type ReviewInput struct {
	Text   string   `json:"text"`
	Rating int      `json:"rating"`
	Images []string `json:"images,omitempty"`
}
