package repo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripstore/internal/domain"
)

func TestRepository_AddBooking(t *testing.T) {
	r := newRepo(t, newRecordingStore())

	got, err := r.AddBooking(hotelInput("Alfama Suites", epoch))

	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, "USD", got.Currency)
	assert.IsType(t, domain.HotelDetails{}, got.Details)

	all := r.Bookings()
	require.Len(t, all, 1)
	assert.Equal(t, got, all[0])
}

func TestRepository_AddBooking_Validation(t *testing.T) {
	r := newRepo(t, newRecordingStore())

	tests := []struct {
		name string
		in   domain.BookingInput
	}{
		{name: "missing title", in: hotelInput("", epoch)},
		{name: "missing date", in: func() domain.BookingInput {
			in := hotelInput("x", epoch)
			in.Date = time.Time{}
			return in
		}()},
		{name: "details mismatch", in: func() domain.BookingInput {
			in := hotelInput("x", epoch)
			in.Type = domain.BookingCar
			return in
		}()},
		{name: "negative price", in: func() domain.BookingInput {
			in := hotelInput("x", epoch)
			in.Price = -1
			return in
		}()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.AddBooking(tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Empty(t, r.Bookings())
}

func TestRepository_CancelBooking(t *testing.T) {
	store := newRecordingStore()
	r := newRepo(t, store)
	b, err := r.AddBooking(hotelInput("Alfama Suites", epoch))
	require.NoError(t, err)

	assert.True(t, r.CancelBooking(b.ID))
	assert.False(t, r.CancelBooking(b.ID), "already cancelled")
	assert.False(t, r.CancelBooking("missing"))

	got, err := r.Booking(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.Len(t, r.Bookings(), 1, "bookings are never deleted")
}

func TestRepository_Booking_NotFound(t *testing.T) {
	r := newRepo(t, newRecordingStore())
	_, err := r.Booking("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
