package itinerary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/domain"
	"github.com/pkordes/tripstore/internal/itinerary"
)

var (
	created = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	edited  = created.Add(time.Hour)
	nine    = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
)

func timePtr(t time.Time) *time.Time { return &t }
func strPtr(s string) *string        { return &s }

func TestNormalizeEnd(t *testing.T) {
	tests := []struct {
		name string
		end  *time.Time
		want time.Time
	}{
		{name: "nil end", end: nil, want: nine.Add(time.Hour)},
		{name: "zero end", end: timePtr(time.Time{}), want: nine.Add(time.Hour)},
		{name: "equal to start", end: timePtr(nine), want: nine.Add(time.Hour)},
		{name: "before start", end: timePtr(nine.Add(-2 * time.Hour)), want: nine.Add(time.Hour)},
		{name: "after start", end: timePtr(nine.Add(3 * time.Hour)), want: nine.Add(3 * time.Hour)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(itinerary.NormalizeEnd(nine, tc.end)))
		})
	}
}

func TestNew_DefaultsEndAndType(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)

	require.NoError(t, err)
	assert.Equal(t, "item-1", it.ID)
	assert.True(t, it.EndTime.Equal(nine.Add(time.Hour)), "end defaults to start+1h")
	assert.Equal(t, domain.ItemActivity, it.Type)
	assert.False(t, it.Completed)
	assert.Equal(t, created, it.CreatedAt)
	assert.Equal(t, created, it.UpdatedAt)
}

func TestNew_CorrectsEndBeforeStart(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{
		Title:     "Dinner",
		StartTime: nine,
		EndTime:   timePtr(nine.Add(-time.Hour)),
		Type:      domain.ItemMeal,
	}, "item-1", created)

	require.NoError(t, err)
	assert.True(t, it.EndTime.Equal(nine.Add(time.Hour)))
	assert.Equal(t, domain.ItemMeal, it.Type)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   domain.ItemInput
		msg  string
	}{
		{name: "blank title", in: domain.ItemInput{Title: "  ", StartTime: nine}, msg: "title"},
		{name: "missing start", in: domain.ItemInput{Title: "Walk"}, msg: "startTime"},
		{name: "bad type", in: domain.ItemInput{Title: "Walk", StartTime: nine, Type: "party"}, msg: "type"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := itinerary.New(tc.in, "x", created)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestEdit_PreservesIdentity(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)
	require.NoError(t, err)
	it.Completed = true

	got, err := itinerary.Edit(it, domain.ItemPatch{Title: strPtr("Louvre")}, edited)

	require.NoError(t, err)
	assert.Equal(t, "item-1", got.ID)
	assert.Equal(t, "Louvre", got.Title)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, edited, got.UpdatedAt)
	assert.True(t, got.Completed)
	assert.True(t, got.EndTime.Equal(it.EndTime), "end untouched when still after start")
}

func TestEdit_MovingStartPastEndAdvancesEnd(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)
	require.NoError(t, err)

	later := nine.Add(5 * time.Hour)
	got, err := itinerary.Edit(it, domain.ItemPatch{StartTime: &later}, edited)

	require.NoError(t, err)
	assert.True(t, got.StartTime.Equal(later))
	assert.True(t, got.EndTime.Equal(later.Add(time.Hour)))
}

func TestEdit_EndBeforeStartIsCorrected(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)
	require.NoError(t, err)

	got, err := itinerary.Edit(it, domain.ItemPatch{EndTime: timePtr(nine.Add(-30 * time.Minute))}, edited)

	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(nine.Add(time.Hour)))
}

func TestEdit_TitleOnlyKeepsZeroLengthRange(t *testing.T) {
	it := domain.ItineraryItem{
		ID:        "item-1",
		Title:     "Sunset",
		StartTime: nine,
		EndTime:   nine,
		Type:      domain.ItemActivity,
		CreatedAt: created,
		UpdatedAt: created,
	}

	got, err := itinerary.Edit(it, domain.ItemPatch{Title: strPtr("Sunset at Miradouro")}, edited)

	require.NoError(t, err)
	assert.True(t, got.EndTime.Equal(nine), "end must not move when no time was patched")
	assert.Equal(t, "0.0h", itinerary.FormatDuration(got))
}

func TestEdit_BlankTitleRejected(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)
	require.NoError(t, err)

	_, err = itinerary.Edit(it, domain.ItemPatch{Title: strPtr("")}, edited)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestToggle(t *testing.T) {
	it, err := itinerary.New(domain.ItemInput{Title: "Museum", StartTime: nine}, "item-1", created)
	require.NoError(t, err)

	once := itinerary.Toggle(it, edited)
	assert.True(t, once.Completed)
	assert.Equal(t, edited, once.UpdatedAt)
	assert.Equal(t, it.Title, once.Title)
	assert.Equal(t, it.CreatedAt, once.CreatedAt)

	twice := itinerary.Toggle(once, edited.Add(time.Minute))
	assert.False(t, twice.Completed)
}

func TestDuration(t *testing.T) {
	tests := []struct {
		name string
		span time.Duration
		want string
	}{
		{name: "same instant", span: 0, want: "0.0h"},
		{name: "ninety minutes", span: 90 * time.Minute, want: "1.5h"},
		{name: "twenty minutes", span: 20 * time.Minute, want: "0.3h"},
		{name: "two days", span: 48 * time.Hour, want: "48.0h"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := domain.ItineraryItem{StartTime: nine, EndTime: nine.Add(tc.span)}
			assert.Equal(t, tc.want, itinerary.FormatDuration(it))
			assert.InDelta(t, tc.span.Hours(), itinerary.Duration(it), 1e-9)
		})
	}
}
