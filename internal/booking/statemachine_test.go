package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from booking.Status
		to   booking.Status
		rel  booking.Relation
		want error
	}{
		{"owner confirms pending", booking.StatusPending, booking.StatusConfirmed, booking.RelationHotelOwner, nil},
		{"guest cannot confirm", booking.StatusPending, booking.StatusConfirmed, booking.RelationGuest, booking.ErrPermissionDenied},
		{"stranger cannot confirm", booking.StatusPending, booking.StatusConfirmed, booking.RelationNone, booking.ErrPermissionDenied},

		{"guest cancels pending", booking.StatusPending, booking.StatusCancelled, booking.RelationGuest, nil},
		{"owner cancels pending", booking.StatusPending, booking.StatusCancelled, booking.RelationHotelOwner, nil},
		{"guest cancels confirmed", booking.StatusConfirmed, booking.StatusCancelled, booking.RelationGuest, nil},
		{"owner cancels confirmed", booking.StatusConfirmed, booking.StatusCancelled, booking.RelationHotelOwner, nil},
		{"stranger cannot cancel", booking.StatusPending, booking.StatusCancelled, booking.RelationNone, booking.ErrPermissionDenied},

		{"cancelled is terminal for confirm", booking.StatusCancelled, booking.StatusConfirmed, booking.RelationHotelOwner, booking.ErrAlreadyCancelled},
		{"cancelled is terminal for cancel", booking.StatusCancelled, booking.StatusCancelled, booking.RelationGuest, booking.ErrAlreadyCancelled},

		{"confirmed cannot go back to pending", booking.StatusConfirmed, booking.StatusPending, booking.RelationHotelOwner, booking.ErrInvalidTransition},
		{"pending to pending is a no-op", booking.StatusPending, booking.StatusPending, booking.RelationGuest, booking.ErrInvalidTransition},
		{"confirm twice is rejected", booking.StatusConfirmed, booking.StatusConfirmed, booking.RelationHotelOwner, booking.ErrInvalidTransition},

		{"unknown target status", booking.StatusPending, booking.Status("archived"), booking.RelationHotelOwner, booking.ErrInvalidStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := booking.CanTransition(tc.from, tc.to, tc.rel)
			if tc.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, time.December, d, 0, 0, 0, 0, time.UTC)
	}

	t.Run("identical ranges overlap", func(t *testing.T) {
		assert.True(t, booking.Overlaps(day(1), day(5), day(1), day(5)))
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, booking.Overlaps(day(1), day(5), day(3), day(6)))
	})

	t.Run("containment overlaps", func(t *testing.T) {
		assert.True(t, booking.Overlaps(day(1), day(10), day(3), day(4)))
	})

	t.Run("back to back does not overlap", func(t *testing.T) {
		// Check-out day is free, a new stay may begin on it.
		assert.False(t, booking.Overlaps(day(1), day(5), day(5), day(8)))
		assert.False(t, booking.Overlaps(day(5), day(8), day(1), day(5)))
	})

	t.Run("disjoint ranges do not overlap", func(t *testing.T) {
		assert.False(t, booking.Overlaps(day(1), day(3), day(10), day(12)))
	})
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	in := time.Date(2025, time.December, 1, 23, 30, 0, 0, loc)

	got := booking.DateOnly(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
	// 23:30 UTC+8 is 15:30 UTC on the same calendar day.
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), got)
}
