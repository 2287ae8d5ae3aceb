package repo

import (
	"encoding/json"

	"github.com/pkordes/tripstore/internal/domain"
)

// encode renders a collection as the JSON array stored under its key.
func encode[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode[T any](raw string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func decodeTrips(raw string) ([]domain.Trip, error) {
	trips, err := decode[domain.Trip](raw)
	if err != nil {
		return nil, err
	}
	for i := range trips {
		if trips[i].Itinerary == nil {
			trips[i].Itinerary = []domain.ItineraryItem{}
		}
	}
	return trips, nil
}

func decodeBookings(raw string) ([]domain.Booking, error) {
	return decode[domain.Booking](raw)
}

func decodeSavedItems(raw string) ([]domain.SavedItem, error) {
	return decode[domain.SavedItem](raw)
}

// EncodeTrips and DecodeTrips expose the stored form of the trips
// collection for export and tests.
func EncodeTrips(trips []domain.Trip) (string, error) { return encode(trips) }

func DecodeTrips(raw string) ([]domain.Trip, error) { return decodeTrips(raw) }
