package catalog

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// Request asks for a booking of one catalog entry. Date is the check-in,
// pickup, departure or activity day; EndDate is the check-out or return day
// for hotels and cars. Quantity counts guests, passengers or participants.
type Request struct {
	Type     domain.BookingType `json:"type"`
	ItemID   string             `json:"itemId"`
	Date     time.Time          `json:"date"`
	EndDate  *time.Time         `json:"endDate,omitempty"`
	Quantity int                `json:"quantity,omitempty"`
	Rooms    int                `json:"rooms,omitempty"`
	RoomType string             `json:"roomType,omitempty"`
}

// Build turns req into a booking input with the matching details variant.
// Returns domain.ErrNotFound for an unknown item and domain.ErrValidation for
// an impossible date range.
func Build(req Request) (domain.BookingInput, error) {
	if req.Date.IsZero() {
		return domain.BookingInput{}, fmt.Errorf("catalog.Build: %w: date is required", domain.ErrValidation)
	}
	qty := max(req.Quantity, 1)

	switch req.Type {
	case domain.BookingHotel:
		h, ok := FindHotel(req.ItemID)
		if !ok {
			return domain.BookingInput{}, notFound(req)
		}
		return HotelBooking(h, req.Date, endOr(req.EndDate, req.Date.AddDate(0, 0, 1)), qty, max(req.Rooms, 1), req.RoomType)
	case domain.BookingCar:
		c, ok := FindCar(req.ItemID)
		if !ok {
			return domain.BookingInput{}, notFound(req)
		}
		return CarBooking(c, req.Date, endOr(req.EndDate, req.Date.AddDate(0, 0, 1)))
	case domain.BookingFlight:
		f, ok := FindFlight(req.ItemID)
		if !ok {
			return domain.BookingInput{}, notFound(req)
		}
		return FlightBooking(f, req.Date, qty)
	case domain.BookingActivity:
		a, ok := FindActivity(req.ItemID)
		if !ok {
			return domain.BookingInput{}, notFound(req)
		}
		return ActivityBooking(a, req.Date, qty), nil
	default:
		return domain.BookingInput{}, fmt.Errorf("catalog.Build: %w: unknown booking type %q", domain.ErrValidation, req.Type)
	}
}

// HotelBooking books rooms of h from checkIn to checkOut. The price is
// nights x rooms x nightly rate, where a partial day counts as a night.
func HotelBooking(h Hotel, checkIn, checkOut time.Time, guests, rooms int, roomType string) (domain.BookingInput, error) {
	nights, err := spanDays(checkIn, checkOut)
	if err != nil {
		return domain.BookingInput{}, fmt.Errorf("catalog.HotelBooking: %w", err)
	}
	if roomType == "" && len(h.RoomTypes) > 0 {
		roomType = h.RoomTypes[0]
	}
	return domain.BookingInput{
		Type:     domain.BookingHotel,
		Title:    h.Name,
		Location: h.Location,
		Date:     checkIn,
		Price:    float64(nights*rooms) * h.PricePerNight,
		Currency: h.Currency,
		Image:    h.Image,
		Details: domain.HotelDetails{
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Guests:   guests,
			Rooms:    rooms,
			RoomType: roomType,
			Provider: h.Provider,
			Features: slices.Clone(h.Amenities),
		},
	}, nil
}

// CarBooking rents c from pickup to drop-off, charged per started day.
func CarBooking(c Car, pickup, dropOff time.Time) (domain.BookingInput, error) {
	days, err := spanDays(pickup, dropOff)
	if err != nil {
		return domain.BookingInput{}, fmt.Errorf("catalog.CarBooking: %w", err)
	}
	return domain.BookingInput{
		Type:     domain.BookingCar,
		Title:    c.Model,
		Location: c.Location,
		Date:     pickup,
		Price:    float64(days) * c.PricePerDay,
		Currency: c.Currency,
		Image:    c.Image,
		Details: domain.CarDetails{
			PickupDate:     pickup,
			ReturnDate:     dropOff,
			PickupLocation: c.Location,
			Provider:       c.Provider,
			Transmission:   c.Transmission,
			Seats:          c.Seats,
			Features:       slices.Clone(c.Features),
		},
	}, nil
}

// FlightBooking books passengers seats on f departing on day. The departure
// is f.DepartsAt on that calendar day in day's location.
func FlightBooking(f Flight, day time.Time, passengers int) (domain.BookingInput, error) {
	clock, err := time.Parse("15:04", f.DepartsAt)
	if err != nil {
		return domain.BookingInput{}, fmt.Errorf("catalog.FlightBooking: departure time %q: %w", f.DepartsAt, err)
	}
	departure := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, day.Location())
	arrival := departure.Add(time.Duration(f.DurationMinutes) * time.Minute)
	return domain.BookingInput{
		Type:     domain.BookingFlight,
		Title:    fmt.Sprintf("%s %s %s-%s", f.Airline, f.FlightNumber, f.From, f.To),
		Location: f.From,
		Date:     departure,
		Price:    float64(passengers) * f.Price,
		Currency: f.Currency,
		Image:    f.Image,
		Details: domain.FlightDetails{
			Airline:      f.Airline,
			FlightNumber: f.FlightNumber,
			From:         f.From,
			To:           f.To,
			Departure:    departure,
			Arrival:      arrival,
			Class:        f.Class,
			Passengers:   passengers,
		},
	}, nil
}

// ActivityBooking books participants places on a on date.
func ActivityBooking(a Activity, date time.Time, participants int) domain.BookingInput {
	return domain.BookingInput{
		Type:     domain.BookingActivity,
		Title:    a.Title,
		Location: a.Location,
		Date:     date,
		Price:    float64(participants) * a.Price,
		Currency: a.Currency,
		Image:    a.Image,
		Details: domain.ActivityDetails{
			Provider:     a.Provider,
			Duration:     a.Duration,
			Participants: participants,
			Features:     slices.Clone(a.Features),
		},
	}
}

// spanDays counts the started 24h periods between from and to.
func spanDays(from, to time.Time) (int, error) {
	if !to.After(from) {
		return 0, fmt.Errorf("%w: end must be after start", domain.ErrValidation)
	}
	return int(math.Ceil(to.Sub(from).Hours() / 24)), nil
}

func endOr(end *time.Time, fallback time.Time) time.Time {
	if end == nil || end.IsZero() {
		return fallback
	}
	return *end
}

func notFound(req Request) error {
	return fmt.Errorf("catalog.Build: %s %q: %w", req.Type, req.ItemID, domain.ErrNotFound)
}
