// Package catalog holds the static, read-only travel catalog (hotels, cars,
// flights, activities, destinations and attractions) and turns catalog
// entries into booking inputs.
package catalog

import (
	"fmt"
	"slices"

	"github.com/pkordes/tripstore/internal/domain"
)

// Kind names one catalog listing.
type Kind string

const (
	KindHotels       Kind = "hotels"
	KindCars         Kind = "cars"
	KindFlights      Kind = "flights"
	KindActivities   Kind = "activities"
	KindDestinations Kind = "destinations"
	KindAttractions  Kind = "attractions"
)

// Kinds lists every catalog listing.
var Kinds = []Kind{KindHotels, KindCars, KindFlights, KindActivities, KindDestinations, KindAttractions}

type Hotel struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Image         string   `json:"image"`
	Rating        float64  `json:"rating"`
	PricePerNight float64  `json:"pricePerNight"`
	Currency      string   `json:"currency"`
	Provider      string   `json:"provider"`
	RoomTypes     []string `json:"roomTypes"`
	Amenities     []string `json:"amenities"`
}

type Car struct {
	ID           string   `json:"id"`
	Model        string   `json:"model"`
	Provider     string   `json:"provider"`
	Location     string   `json:"location"`
	Image        string   `json:"image"`
	Transmission string   `json:"transmission"`
	Seats        int      `json:"seats"`
	PricePerDay  float64  `json:"pricePerDay"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

// Flight is a scheduled daily service. DepartsAt is the local time of day
// (HH:MM) in the origin's timezone as given by the booking date.
type Flight struct {
	ID              string  `json:"id"`
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flightNumber"`
	From            string  `json:"from"`
	To              string  `json:"to"`
	DepartsAt       string  `json:"departsAt"`
	DurationMinutes int     `json:"durationMinutes"`
	Class           string  `json:"class"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Image           string  `json:"image"`
}

type Activity struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Provider string   `json:"provider"`
	Location string   `json:"location"`
	Image    string   `json:"image"`
	Duration string   `json:"duration"`
	Rating   float64  `json:"rating"`
	Price    float64  `json:"price"`
	Currency string   `json:"currency"`
	Features []string `json:"features"`
}

// Place is a destination or attraction that can only be saved, not booked.
type Place struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating"`
	Price    float64 `json:"price"`
}

// Hotels returns a copy of the hotel listing.
func Hotels() []Hotel {
	return cloneAll(hotels, func(h Hotel) Hotel {
		h.RoomTypes = slices.Clone(h.RoomTypes)
		h.Amenities = slices.Clone(h.Amenities)
		return h
	})
}

func Cars() []Car {
	return cloneAll(cars, func(c Car) Car {
		c.Features = slices.Clone(c.Features)
		return c
	})
}

func Flights() []Flight { return slices.Clone(flights) }

func Activities() []Activity {
	return cloneAll(activities, func(a Activity) Activity {
		a.Features = slices.Clone(a.Features)
		return a
	})
}

func Destinations() []Place { return slices.Clone(destinations) }

func Attractions() []Place { return slices.Clone(attractions) }

func cloneAll[T any](in []T, clone func(T) T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// List returns the listing for kind.
// Returns domain.ErrNotFound for an unknown kind.
func List(kind Kind) (any, error) {
	switch kind {
	case KindHotels:
		return Hotels(), nil
	case KindCars:
		return Cars(), nil
	case KindFlights:
		return Flights(), nil
	case KindActivities:
		return Activities(), nil
	case KindDestinations:
		return Destinations(), nil
	case KindAttractions:
		return Attractions(), nil
	default:
		return nil, fmt.Errorf("catalog.List: kind %q: %w", kind, domain.ErrNotFound)
	}
}

func find[T any](items []T, id string, idOf func(T) string) (T, bool) {
	i := slices.IndexFunc(items, func(v T) bool { return idOf(v) == id })
	if i < 0 {
		var zero T
		return zero, false
	}
	return items[i], true
}

// FindHotel looks up a hotel by id.
func FindHotel(id string) (Hotel, bool) {
	return find(hotels, id, func(h Hotel) string { return h.ID })
}

func FindCar(id string) (Car, bool) {
	return find(cars, id, func(c Car) string { return c.ID })
}

func FindFlight(id string) (Flight, bool) {
	return find(flights, id, func(f Flight) string { return f.ID })
}

func FindActivity(id string) (Activity, bool) {
	return find(activities, id, func(a Activity) string { return a.ID })
}

// SavedItem returns the favorite entry for a catalog id. Hotels,
// destinations and attractions can be saved.
func SavedItem(id string) (domain.SavedItem, bool) {
	if h, ok := FindHotel(id); ok {
		return domain.SavedItem{
			ID: h.ID, Type: domain.SavedHotel, Title: h.Name, Location: h.Location,
			Image: h.Image, Rating: h.Rating, Price: h.PricePerNight,
		}, true
	}
	if p, ok := find(destinations, id, placeID); ok {
		return p.savedItem(domain.SavedDestination), true
	}
	if p, ok := find(attractions, id, placeID); ok {
		return p.savedItem(domain.SavedAttraction), true
	}
	return domain.SavedItem{}, false
}

func placeID(p Place) string { return p.ID }

func (p Place) savedItem(t domain.SavedItemType) domain.SavedItem {
	return domain.SavedItem{
		ID: p.ID, Type: t, Title: p.Name, Location: p.Location,
		Image: p.Image, Rating: p.Rating, Price: p.Price,
	}
}
