package itinerary

import (
	"slices"
	"time"

	"github.com/pkordes/tripstore/internal/domain"
)

// DayLayout is the format of day keys produced by DayKey.
const DayLayout = "2006-01-02"

// Day is one calendar day of an itinerary with its items in start order.
type Day struct {
	Date  string                 `json:"date"`
	Items []domain.ItineraryItem `json:"items"`
}

// DayKey returns the calendar day of t in loc as YYYY-MM-DD.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// GroupByDay buckets items by the calendar day of their start time in loc.
// Items within a day are ordered by ascending start time; ties keep their
// input order.
func GroupByDay(items []domain.ItineraryItem, loc *time.Location) map[string][]domain.ItineraryItem {
	groups := make(map[string][]domain.ItineraryItem)
	for _, it := range items {
		key := DayKey(it.StartTime, loc)
		groups[key] = append(groups[key], it)
	}
	for _, day := range groups {
		slices.SortStableFunc(day, func(a, b domain.ItineraryItem) int {
			return a.StartTime.Compare(b.StartTime)
		})
	}
	return groups
}

// SortedDays returns the keys of groups in ascending order.
func SortedDays(groups map[string][]domain.ItineraryItem) []string {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	// YYYY-MM-DD sorts lexically in calendar order.
	slices.Sort(keys)
	return keys
}

// Days groups items by day and returns the days in ascending order.
func Days(items []domain.ItineraryItem, loc *time.Location) []Day {
	groups := GroupByDay(items, loc)
	out := make([]Day, 0, len(groups))
	for _, key := range SortedDays(groups) {
		out = append(out, Day{Date: key, Items: groups[key]})
	}
	return out
}
