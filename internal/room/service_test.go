package room_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

type fakeRoomRepo struct {
	rooms map[string]*room.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]*room.Room)}
}

func (r *fakeRoomRepo) Create(ctx context.Context, rm *room.Room) error {
	rm.ID = uuid.NewString()
	rm.CreatedAt = time.Now().UTC()
	clone := *rm
	r.rooms[rm.ID] = &clone
	return nil
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id string) (*room.Room, error) {
	rm, ok := r.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	clone := *rm
	return &clone, nil
}

func (r *fakeRoomRepo) List(ctx context.Context, filter room.Filter) ([]*room.Room, int, error) {
	var out []*room.Room
	for _, rm := range r.rooms {
		if filter.HotelID != "" && rm.HotelID != filter.HotelID {
			continue
		}
		if filter.OnlyAvailable && !rm.IsAvailable {
			continue
		}
		clone := *rm
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRoomRepo) ListRoomTypes(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var types []string
	for _, rm := range r.rooms {
		if !seen[rm.RoomType] {
			seen[rm.RoomType] = true
			types = append(types, rm.RoomType)
		}
	}
	return types, nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, rm *room.Room) error {
	if _, ok := r.rooms[rm.ID]; !ok {
		return room.ErrNotFound
	}
	clone := *rm
	r.rooms[rm.ID] = &clone
	return nil
}

func (r *fakeRoomRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.rooms[id]; !ok {
		return room.ErrNotFound
	}
	delete(r.rooms, id)
	return nil
}

// fakeHotelService implements the single hotel.Service dependency the room
// service uses, ownership resolution.
type fakeHotelService struct {
	hotel.Service
	hotels map[string]*hotel.Hotel
}

func (f *fakeHotelService) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	return h, nil
}

func newRoomTestEnv() (room.Service, string, string) {
	ownerID := uuid.NewString()
	hotelID := uuid.NewString()

	hotels := &fakeHotelService{hotels: map[string]*hotel.Hotel{
		hotelID: {ID: hotelID, OwnerID: ownerID, Name: "Seaside Inn", City: "Da Nang"},
	}}
	return room.NewService(newFakeRoomRepo(), hotels), ownerID, hotelID
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("valid room", func(t *testing.T) {
		svc, ownerID, hotelID := newRoomTestEnv()

		rm, err := svc.Create(ctx, room.CreateRequest{
			HotelID:       hotelID,
			RoomType:      "Double",
			PricePerNight: 120,
			MaxGuests:     2,
		}, ownerID)
		require.NoError(t, err)

		assert.NotEmpty(t, rm.ID)
		assert.True(t, rm.IsAvailable, "new rooms start available")
		assert.NotNil(t, rm.Amenities)
	})

	t.Run("validation failures", func(t *testing.T) {
		svc, ownerID, hotelID := newRoomTestEnv()

		_, err := svc.Create(ctx, room.CreateRequest{HotelID: hotelID, RoomType: " ", PricePerNight: 100, MaxGuests: 2}, ownerID)
		assert.ErrorIs(t, err, room.ErrEmptyRoomType)

		_, err = svc.Create(ctx, room.CreateRequest{HotelID: hotelID, RoomType: "Double", PricePerNight: 0, MaxGuests: 2}, ownerID)
		assert.ErrorIs(t, err, room.ErrInvalidPrice)

		_, err = svc.Create(ctx, room.CreateRequest{HotelID: hotelID, RoomType: "Double", PricePerNight: 100, MaxGuests: 0}, ownerID)
		assert.ErrorIs(t, err, room.ErrInvalidMaxGuests)
	})

	t.Run("only the hotel owner creates rooms", func(t *testing.T) {
		svc, _, hotelID := newRoomTestEnv()

		_, err := svc.Create(ctx, room.CreateRequest{
			HotelID:       hotelID,
			RoomType:      "Double",
			PricePerNight: 120,
			MaxGuests:     2,
		}, uuid.NewString())
		assert.ErrorIs(t, err, room.ErrPermissionDenied)
	})

	t.Run("unknown hotel is rejected", func(t *testing.T) {
		svc, ownerID, _ := newRoomTestEnv()

		_, err := svc.Create(ctx, room.CreateRequest{
			HotelID:       uuid.NewString(),
			RoomType:      "Double",
			PricePerNight: 120,
			MaxGuests:     2,
		}, ownerID)
		assert.ErrorIs(t, err, room.ErrHotelNotFound)
	})
}

func TestToggleAvailability(t *testing.T) {
	ctx := context.Background()
	svc, ownerID, hotelID := newRoomTestEnv()

	rm, err := svc.Create(ctx, room.CreateRequest{
		HotelID:       hotelID,
		RoomType:      "Suite",
		PricePerNight: 300,
		MaxGuests:     4,
	}, ownerID)
	require.NoError(t, err)

	t.Run("owner toggles off and on", func(t *testing.T) {
		off, err := svc.ToggleAvailability(ctx, rm.ID, ownerID)
		require.NoError(t, err)
		assert.False(t, off.IsAvailable)

		on, err := svc.ToggleAvailability(ctx, rm.ID, ownerID)
		require.NoError(t, err)
		assert.True(t, on.IsAvailable)
	})

	t.Run("stranger cannot toggle", func(t *testing.T) {
		_, err := svc.ToggleAvailability(ctx, rm.ID, uuid.NewString())
		assert.ErrorIs(t, err, room.ErrPermissionDenied)
	})
}

func TestAddImage(t *testing.T) {
	ctx := context.Background()
	svc, ownerID, hotelID := newRoomTestEnv()

	rm, err := svc.Create(ctx, room.CreateRequest{
		HotelID:       hotelID,
		RoomType:      "Twin",
		PricePerNight: 90,
		MaxGuests:     2,
	}, ownerID)
	require.NoError(t, err)

	updated, err := svc.AddImage(ctx, rm.ID, "rooms/abc/1.jpg", ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"rooms/abc/1.jpg"}, updated.Images)

	_, err = svc.AddImage(ctx, rm.ID, "rooms/abc/2.jpg", uuid.NewString())
	assert.ErrorIs(t, err, room.ErrPermissionDenied)
}
