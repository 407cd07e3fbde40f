package booking_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/notify"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

// fakeRepo is an in-memory Repository honoring the same atomicity contract as
// the real one: the overlap check and the insert happen under one lock, and
// status updates are conditional on the previously read status.
type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]*booking.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[string]*booking.Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.bookings {
		if existing.RoomID != b.RoomID || existing.Status == booking.StatusCancelled {
			continue
		}
		if booking.Overlaps(existing.CheckIn, existing.CheckOut, b.CheckIn, b.CheckOut) {
			return booking.ErrDatesUnavailable
		}
	}

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	clone := *b
	r.bookings[b.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*booking.Booking
	for _, b := range r.bookings {
		if filter.GuestID != "" && b.GuestID != filter.GuestID {
			continue
		}
		if filter.RoomID != "" && b.RoomID != filter.RoomID {
			continue
		}
		if filter.HotelID != "" && b.HotelID != filter.HotelID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		if filter.IsPaid != nil && b.IsPaid != *filter.IsPaid {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, from, to booking.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if b.Status != from {
		return booking.ErrConcurrentUpdate
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *fakeRepo) UpdatePayment(ctx context.Context, id string, isPaid *bool, paymentMethod *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return booking.ErrNotFound
	}
	if isPaid != nil {
		b.IsPaid = *isPaid
	}
	if paymentMethod != nil {
		b.PaymentMethod = *paymentMethod
	}
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return booking.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.RoomID != roomID || b.ID == excludeBookingID || b.Status == booking.StatusCancelled {
			continue
		}
		if booking.Overlaps(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRooms struct {
	rooms map[string]*room.Room
}

func (f *fakeRooms) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := f.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

type fakeHotels struct {
	hotels map[string]*hotel.Hotel
}

func (f *fakeHotels) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	return h, nil
}

// chanNotifier delivers published events on a channel so tests can wait for
// the background publish.
type chanNotifier struct {
	events chan notify.BookingCreatedEvent
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{events: make(chan notify.BookingCreatedEvent, 16)}
}

func (n *chanNotifier) BookingCreated(ctx context.Context, ev notify.BookingCreatedEvent) error {
	n.events <- ev
	return nil
}

func (n *chanNotifier) Close() error { return nil }

// testEnv bundles a service wired against fakes plus the common fixtures:
// one hotel owned by ownerID, one available room in it.
type testEnv struct {
	svc      booking.Service
	repo     *fakeRepo
	rooms    *fakeRooms
	notifier *chanNotifier

	ownerID string
	guestID string
	hotelID string
	roomID  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:     newFakeRepo(),
		notifier: newChanNotifier(),
		ownerID:  uuid.NewString(),
		guestID:  uuid.NewString(),
		hotelID:  uuid.NewString(),
		roomID:   uuid.NewString(),
	}

	hotels := &fakeHotels{hotels: map[string]*hotel.Hotel{
		env.hotelID: {ID: env.hotelID, OwnerID: env.ownerID, Name: "Seaside Inn", City: "Da Nang"},
	}}
	env.rooms = &fakeRooms{rooms: map[string]*room.Room{
		env.roomID: {
			ID:            env.roomID,
			HotelID:       env.hotelID,
			HotelName:     "Seaside Inn",
			HotelCity:     "Da Nang",
			RoomType:      "Double",
			PricePerNight: 120,
			MaxGuests:     4,
			IsAvailable:   true,
		},
	}}

	env.svc = booking.NewService(env.repo, env.rooms, hotels, env.notifier)
	return env
}

func futureDate(daysAhead int) time.Time {
	return booking.DateOnly(time.Now().UTC().AddDate(0, 0, daysAhead))
}

func (e *testEnv) createRequest(checkInDays, checkOutDays int) booking.CreateRequest {
	return booking.CreateRequest{
		GuestID:  e.guestID,
		RoomID:   e.roomID,
		CheckIn:  futureDate(checkInDays),
		CheckOut: futureDate(checkOutDays),
		Guests:   2,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request creates pending unpaid booking", func(t *testing.T) {
		env := newTestEnv(t)

		b, err := env.svc.Create(ctx, env.createRequest(10, 14))
		require.NoError(t, err)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, booking.StatusPending, b.Status)
		assert.False(t, b.IsPaid)
		assert.Equal(t, booking.DefaultPaymentMethod, b.PaymentMethod)
		assert.Equal(t, env.hotelID, b.HotelID, "hotel is derived from the room, not the request")
		assert.Equal(t, float64(4*120), b.TotalPrice, "price defaults to nights times room rate")
	})

	t.Run("explicit total price is kept", func(t *testing.T) {
		env := newTestEnv(t)

		req := env.createRequest(10, 14)
		req.TotalPrice = 999.50
		req.PaymentMethod = "Credit Card"

		b, err := env.svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 999.50, b.TotalPrice)
		assert.Equal(t, "Credit Card", b.PaymentMethod)
	})

	t.Run("check-in in the past is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(-1, 3))
		assert.ErrorIs(t, err, booking.ErrCheckInPast)
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(0, 2))
		assert.NoError(t, err)
	})

	t.Run("check-out not after check-in is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(10, 10))
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)

		_, err = env.svc.Create(ctx, env.createRequest(10, 8))
		assert.ErrorIs(t, err, booking.ErrInvalidDateRange)
	})

	t.Run("non-positive guests is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		req := env.createRequest(10, 12)
		req.Guests = 0
		_, err := env.svc.Create(ctx, req)
		assert.ErrorIs(t, err, booking.ErrInvalidGuests)
	})

	t.Run("guests above room capacity is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		req := env.createRequest(10, 12)
		req.Guests = 5
		_, err := env.svc.Create(ctx, req)
		assert.ErrorIs(t, err, booking.ErrInvalidGuests)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		req := env.createRequest(10, 12)
		req.TotalPrice = -1
		_, err := env.svc.Create(ctx, req)
		assert.ErrorIs(t, err, booking.ErrInvalidPrice)
	})

	t.Run("unknown room is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		req := env.createRequest(10, 12)
		req.RoomID = uuid.NewString()
		_, err := env.svc.Create(ctx, req)
		assert.ErrorIs(t, err, booking.ErrRoomNotFound)
	})

	t.Run("unavailable room is rejected", func(t *testing.T) {
		env := newTestEnv(t)
		env.rooms.rooms[env.roomID].IsAvailable = false

		_, err := env.svc.Create(ctx, env.createRequest(10, 12))
		assert.ErrorIs(t, err, booking.ErrRoomUnavailable)
	})

	t.Run("successful create publishes an event", func(t *testing.T) {
		env := newTestEnv(t)

		b, err := env.svc.Create(ctx, env.createRequest(10, 14))
		require.NoError(t, err)

		select {
		case ev := <-env.notifier.events:
			assert.Equal(t, b.ID, ev.BookingID)
			assert.Equal(t, env.hotelID, ev.HotelID)
			assert.Equal(t, string(booking.StatusPending), ev.Status)
		case <-time.After(time.Second):
			t.Fatal("expected a booking created event")
		}
	})
}

func TestCreateBookingConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("overlapping dates conflict", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(1, 5))
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, env.createRequest(3, 6))
		assert.ErrorIs(t, err, booking.ErrDatesUnavailable)
	})

	t.Run("back to back stay succeeds", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(1, 5))
		require.NoError(t, err)

		// New stay starts exactly on the previous check-out date.
		_, err = env.svc.Create(ctx, env.createRequest(5, 8))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking releases its dates", func(t *testing.T) {
		env := newTestEnv(t)

		b, err := env.svc.Create(ctx, env.createRequest(1, 5))
		require.NoError(t, err)

		_, err = env.svc.Cancel(ctx, b.ID, env.guestID)
		require.NoError(t, err)

		_, err = env.svc.Create(ctx, env.createRequest(3, 6))
		assert.NoError(t, err)
	})

	t.Run("exactly one of N concurrent overlapping creates succeeds", func(t *testing.T) {
		env := newTestEnv(t)

		const n = 16
		errs := make([]error, n)
		var wg sync.WaitGroup
		wg.Add(n)

		for i := 0; i < n; i++ {
			go func(i int) {
				defer wg.Done()
				_, errs[i] = env.svc.Create(ctx, env.createRequest(1, 5))
			}(i)
		}
		wg.Wait()

		successes := 0
		for _, err := range errs {
			if err == nil {
				successes++
				continue
			}
			assert.ErrorIs(t, err, booking.ErrDatesUnavailable)
		}
		assert.Equal(t, 1, successes)
	})
}

func TestBookingAuthorization(t *testing.T) {
	ctx := context.Background()
	strangerID := uuid.NewString()

	t.Run("guest and owner can view, stranger cannot", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		_, err = env.svc.GetByID(ctx, b.ID, env.guestID)
		assert.NoError(t, err)

		_, err = env.svc.GetByID(ctx, b.ID, env.ownerID)
		assert.NoError(t, err)

		_, err = env.svc.GetByID(ctx, b.ID, strangerID)
		assert.ErrorIs(t, err, booking.ErrPermissionDenied)
	})

	t.Run("only the owner confirms", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, b.ID, booking.StatusConfirmed, env.guestID)
		assert.ErrorIs(t, err, booking.ErrPermissionDenied)

		confirmed, err := env.svc.UpdateStatus(ctx, b.ID, booking.StatusConfirmed, env.ownerID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		_, err = env.svc.Cancel(ctx, b.ID, strangerID)
		assert.ErrorIs(t, err, booking.ErrPermissionDenied)
	})

	t.Run("only the guest updates payment", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		paid := true
		_, err = env.svc.UpdatePayment(ctx, b.ID, booking.PaymentUpdateRequest{IsPaid: &paid}, env.ownerID)
		assert.ErrorIs(t, err, booking.ErrPermissionDenied)

		updated, err := env.svc.UpdatePayment(ctx, b.ID, booking.PaymentUpdateRequest{IsPaid: &paid}, env.guestID)
		require.NoError(t, err)
		assert.True(t, updated.IsPaid)
	})
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("cancel then cancel again conflicts", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		cancelled, err := env.svc.Cancel(ctx, b.ID, env.guestID)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, cancelled.Status)

		_, err = env.svc.Cancel(ctx, b.ID, env.guestID)
		assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	})

	t.Run("confirmed booking cannot return to pending", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, b.ID, booking.StatusConfirmed, env.ownerID)
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, b.ID, booking.StatusPending, env.ownerID)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
	})

	t.Run("payment is independent of status", func(t *testing.T) {
		env := newTestEnv(t)
		b, err := env.svc.Create(ctx, env.createRequest(10, 12))
		require.NoError(t, err)

		paid := true
		method := "Bank Transfer"
		updated, err := env.svc.UpdatePayment(ctx, b.ID, booking.PaymentUpdateRequest{
			IsPaid:        &paid,
			PaymentMethod: &method,
		}, env.guestID)
		require.NoError(t, err)

		assert.True(t, updated.IsPaid)
		assert.Equal(t, "Bank Transfer", updated.PaymentMethod)
		assert.Equal(t, booking.StatusPending, updated.Status, "paying does not confirm the booking")
	})

	t.Run("unknown booking yields not found", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.GetByID(ctx, uuid.NewString(), env.guestID)
		assert.ErrorIs(t, err, booking.ErrNotFound)
	})
}

func TestBookingListing(t *testing.T) {
	ctx := context.Background()

	t.Run("guest listing filters by status", func(t *testing.T) {
		env := newTestEnv(t)

		first, err := env.svc.Create(ctx, env.createRequest(1, 5))
		require.NoError(t, err)
		_, err = env.svc.Create(ctx, env.createRequest(5, 8))
		require.NoError(t, err)

		_, err = env.svc.Cancel(ctx, first.ID, env.guestID)
		require.NoError(t, err)

		all, total, err := env.svc.ListForGuest(ctx, env.guestID, booking.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, all, 2)

		cancelled, total, err := env.svc.ListForGuest(ctx, env.guestID, booking.Filter{Status: string(booking.StatusCancelled)})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, cancelled, 1)
		assert.Equal(t, first.ID, cancelled[0].ID)
	})

	t.Run("guest listing excludes other guests", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.svc.Create(ctx, env.createRequest(1, 5))
		require.NoError(t, err)

		other, total, err := env.svc.ListForGuest(ctx, uuid.NewString(), booking.Filter{})
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, other)
	})
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()

	env := newTestEnv(t)
	b, err := env.svc.Create(ctx, env.createRequest(1, 5))
	require.NoError(t, err)

	require.NoError(t, env.svc.Delete(ctx, b.ID))

	_, err = env.svc.GetByID(ctx, b.ID, env.guestID)
	assert.True(t, errors.Is(err, booking.ErrNotFound))
}
