package hotel_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
)

type fakeHotelRepo struct {
	hotels map[string]*hotel.Hotel
}

func newFakeHotelRepo() *fakeHotelRepo {
	return &fakeHotelRepo{hotels: make(map[string]*hotel.Hotel)}
}

func (r *fakeHotelRepo) Create(ctx context.Context, h *hotel.Hotel) error {
	h.ID = uuid.NewString()
	h.CreatedAt = time.Now().UTC()
	clone := *h
	r.hotels[h.ID] = &clone
	return nil
}

func (r *fakeHotelRepo) GetByID(ctx context.Context, id string) (*hotel.Hotel, error) {
	h, ok := r.hotels[id]
	if !ok {
		return nil, hotel.ErrNotFound
	}
	clone := *h
	return &clone, nil
}

func (r *fakeHotelRepo) List(ctx context.Context, filter hotel.Filter) ([]*hotel.Hotel, int, error) {
	var out []*hotel.Hotel
	for _, h := range r.hotels {
		if filter.City != "" && h.City != filter.City {
			continue
		}
		if filter.OwnerID != "" && h.OwnerID != filter.OwnerID {
			continue
		}
		clone := *h
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeHotelRepo) ListCities(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var cities []string
	for _, h := range r.hotels {
		if !seen[h.City] {
			seen[h.City] = true
			cities = append(cities, h.City)
		}
	}
	return cities, nil
}

func (r *fakeHotelRepo) Update(ctx context.Context, h *hotel.Hotel) error {
	if _, ok := r.hotels[h.ID]; !ok {
		return hotel.ErrNotFound
	}
	clone := *h
	r.hotels[h.ID] = &clone
	return nil
}

func (r *fakeHotelRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.hotels[id]; !ok {
		return hotel.ErrNotFound
	}
	delete(r.hotels, id)
	return nil
}

func TestRegisterHotel(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.NewString()

	t.Run("valid registration", func(t *testing.T) {
		svc := hotel.NewService(newFakeHotelRepo())

		h, err := svc.Register(ctx, hotel.CreateRequest{
			OwnerID: ownerID,
			Name:    "  Grand Plaza  ",
			Address: "1 Main St",
			Contact: "+84 123 456",
			City:    "Hue",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Grand Plaza", h.Name, "fields are trimmed")
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		svc := hotel.NewService(newFakeHotelRepo())

		_, err := svc.Register(ctx, hotel.CreateRequest{
			OwnerID: ownerID,
			Name:    "Grand Plaza",
			City:    "Hue",
		})
		assert.ErrorIs(t, err, hotel.ErrMissingFields)
	})
}

func TestHotelOwnership(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.NewString()
	strangerID := uuid.NewString()

	svc := hotel.NewService(newFakeHotelRepo())
	h, err := svc.Register(ctx, hotel.CreateRequest{
		OwnerID: ownerID,
		Name:    "Grand Plaza",
		Address: "1 Main St",
		Contact: "+84 123 456",
		City:    "Hue",
	})
	require.NoError(t, err)

	t.Run("only the owner updates", func(t *testing.T) {
		newName := "Grander Plaza"

		_, err := svc.Update(ctx, h.ID, hotel.UpdateRequest{Name: &newName}, strangerID)
		assert.ErrorIs(t, err, hotel.ErrPermissionDenied)

		updated, err := svc.Update(ctx, h.ID, hotel.UpdateRequest{Name: &newName}, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "Grander Plaza", updated.Name)
	})

	t.Run("only the owner deletes", func(t *testing.T) {
		err := svc.Delete(ctx, h.ID, strangerID)
		assert.ErrorIs(t, err, hotel.ErrPermissionDenied)

		require.NoError(t, svc.Delete(ctx, h.ID, ownerID))

		_, err = svc.GetByID(ctx, h.ID)
		assert.ErrorIs(t, err, hotel.ErrNotFound)
	})
}
