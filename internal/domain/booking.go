package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// BookingType is the catalog vertical a booking belongs to. It also selects
// the Details variant.
type BookingType string

const (
	BookingHotel    BookingType = "hotel"
	BookingCar      BookingType = "car"
	BookingFlight   BookingType = "flight"
	BookingActivity BookingType = "activity"
)

// BookingStatus is the reservation state. The only transition the store
// performs is to BookingCancelled.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingPending   BookingStatus = "pending"
	BookingCancelled BookingStatus = "cancelled"
)

// Details is the per-type payload of a booking. Exactly one variant exists
// per BookingType.
type Details interface {
	BookingType() BookingType
}

// HotelDetails describes a hotel stay.
type HotelDetails struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
	Guests   int       `json:"guests"`
	Rooms    int       `json:"rooms"`
	RoomType string    `json:"roomType,omitempty"`
	Provider string    `json:"provider,omitempty"`
	Features []string  `json:"features,omitempty"`
}

// CarDetails describes a car rental.
type CarDetails struct {
	PickupDate     time.Time `json:"pickupDate"`
	ReturnDate     time.Time `json:"returnDate"`
	PickupLocation string    `json:"pickupLocation,omitempty"`
	Provider       string    `json:"provider,omitempty"`
	Transmission   string    `json:"transmission,omitempty"`
	Seats          int       `json:"seats,omitempty"`
	Features       []string  `json:"features,omitempty"`
}

// FlightDetails describes a flight segment.
type FlightDetails struct {
	Airline      string    `json:"airline"`
	FlightNumber string    `json:"flightNumber"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Departure    time.Time `json:"departure"`
	Arrival      time.Time `json:"arrival"`
	Class        string    `json:"class,omitempty"`
	Passengers   int       `json:"passengers"`
}

// ActivityDetails describes a booked tour or activity.
type ActivityDetails struct {
	Provider     string   `json:"provider,omitempty"`
	Duration     string   `json:"duration,omitempty"`
	Participants int      `json:"participants"`
	Features     []string `json:"features,omitempty"`
}

func (HotelDetails) BookingType() BookingType    { return BookingHotel }
func (CarDetails) BookingType() BookingType      { return BookingCar }
func (FlightDetails) BookingType() BookingType   { return BookingFlight }
func (ActivityDetails) BookingType() BookingType { return BookingActivity }

// Booking is a reservation of a catalog item. Price is denominated in Currency.
type Booking struct {
	ID       string        `json:"id"`
	Type     BookingType   `json:"type" validate:"oneof=hotel car flight activity"`
	Title    string        `json:"title" validate:"notblank"`
	Location string        `json:"location"`
	Date     time.Time     `json:"date" validate:"required"`
	Status   BookingStatus `json:"status" validate:"oneof=confirmed pending cancelled"`
	Price    float64       `json:"price" validate:"gte=0"`
	Currency string        `json:"currency" validate:"len=3"`
	Image    string        `json:"image"`
	Details  Details       `json:"details,omitempty"`
}

// Validate checks required fields and that Details matches Type.
func (b Booking) Validate() error {
	if err := validateStruct(b); err != nil {
		return err
	}
	if b.Details != nil && b.Details.BookingType() != b.Type {
		return fmt.Errorf("%w: details do not match booking type %q", ErrValidation, b.Type)
	}
	return nil
}

// Clone returns a deep copy of b.
func (b Booking) Clone() Booking {
	out := b
	switch d := b.Details.(type) {
	case HotelDetails:
		d.Features = slices.Clone(d.Features)
		out.Details = d
	case CarDetails:
		d.Features = slices.Clone(d.Features)
		out.Details = d
	case ActivityDetails:
		d.Features = slices.Clone(d.Features)
		out.Details = d
	}
	return out
}

// bookingJSON mirrors Booking with the union left raw so it can be decoded
// once the type is known.
type bookingJSON struct {
	ID       string          `json:"id"`
	Type     BookingType     `json:"type"`
	Title    string          `json:"title"`
	Location string          `json:"location"`
	Date     time.Time       `json:"date"`
	Status   BookingStatus   `json:"status"`
	Price    float64         `json:"price"`
	Currency string          `json:"currency"`
	Image    string          `json:"image"`
	Details  json.RawMessage `json:"details,omitempty"`
}

// MarshalJSON encodes Details as a plain object next to the type tag.
func (b Booking) MarshalJSON() ([]byte, error) {
	out := bookingJSON{
		ID:       b.ID,
		Type:     b.Type,
		Title:    b.Title,
		Location: b.Location,
		Date:     b.Date,
		Status:   b.Status,
		Price:    b.Price,
		Currency: b.Currency,
		Image:    b.Image,
	}
	if b.Details != nil {
		raw, err := json.Marshal(b.Details)
		if err != nil {
			return nil, err
		}
		out.Details = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes Details into the variant selected by Type.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var in bookingJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	details, err := DecodeDetails(in.Type, in.Details)
	if err != nil {
		return err
	}
	*b = Booking{
		ID:       in.ID,
		Type:     in.Type,
		Title:    in.Title,
		Location: in.Location,
		Date:     in.Date,
		Status:   in.Status,
		Price:    in.Price,
		Currency: in.Currency,
		Image:    in.Image,
		Details:  details,
	}
	return nil
}

// DecodeDetails decodes a raw details object for the given booking type.
// Empty or null input yields nil details.
func DecodeDetails(t BookingType, raw json.RawMessage) (Details, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	switch t {
	case BookingHotel:
		var d HotelDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case BookingCar:
		var d CarDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case BookingFlight:
		var d FlightDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	case BookingActivity:
		var d ActivityDetails
		err := json.Unmarshal(raw, &d)
		return d, err
	default:
		return nil, fmt.Errorf("%w: unknown booking type %q", ErrValidation, t)
	}
}

// BookingInput is the caller-supplied data for a new booking.
// Status defaults to confirmed and Currency to USD.
type BookingInput struct {
	Type     BookingType   `json:"type"`
	Title    string        `json:"title"`
	Location string        `json:"location"`
	Date     time.Time     `json:"date"`
	Status   BookingStatus `json:"status,omitempty"`
	Price    float64       `json:"price"`
	Currency string        `json:"currency,omitempty"`
	Image    string        `json:"image,omitempty"`
	Details  Details       `json:"-"`
}

// UnmarshalJSON lets API clients send details as a plain object.
func (in *BookingInput) UnmarshalJSON(data []byte) error {
	type plain BookingInput
	var aux struct {
		plain
		Details json.RawMessage `json:"details,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	details, err := DecodeDetails(aux.Type, aux.Details)
	if err != nil {
		return err
	}
	*in = BookingInput(aux.plain)
	in.Details = details
	return nil
}

// Booking builds an unsaved Booking with defaults applied.
func (in BookingInput) Booking() Booking {
	b := Booking{
		Type:     in.Type,
		Title:    in.Title,
		Location: in.Location,
		Date:     in.Date,
		Status:   in.Status,
		Price:    in.Price,
		Currency: in.Currency,
		Image:    in.Image,
		Details:  in.Details,
	}
	if b.Status == "" {
		b.Status = BookingConfirmed
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	return b.Clone()
}
