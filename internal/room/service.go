package room

import (
	"context"
	"errors"
	"strings"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
)

type CreateRequest struct {
	HotelID       string
	RoomType      string
	PricePerNight float64
	Amenities     []string
	MaxGuests     int
}

type UpdateRequest struct {
	RoomType      *string
	PricePerNight *float64
	Amenities     []string
	MaxGuests     *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest, creatorUserID string) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	ListRoomTypes(ctx context.Context) ([]string, error)
	Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Room, error)
	Delete(ctx context.Context, id string, deleterUserID string) error
	ToggleAvailability(ctx context.Context, id string, updaterUserID string) (*Room, error)
	AddImage(ctx context.Context, id string, imagePath string, updaterUserID string) (*Room, error)
}

type service struct {
	repo         Repository
	hotelService hotel.Service
}

func NewService(repo Repository, hotelService hotel.Service) Service {
	return &service{
		repo:         repo,
		hotelService: hotelService,
	}
}

// checkHotelOwner verifies the user owns the hotel the room belongs to.
func (s *service) checkHotelOwner(ctx context.Context, hotelID, userID string) error {
	h, err := s.hotelService.GetByID(ctx, hotelID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	if h.OwnerID != userID {
		return ErrPermissionDenied
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateRequest, creatorUserID string) (*Room, error) {
	if strings.TrimSpace(req.RoomType) == "" {
		return nil, ErrEmptyRoomType
	}
	if req.PricePerNight <= 0 {
		return nil, ErrInvalidPrice
	}
	if req.MaxGuests <= 0 {
		return nil, ErrInvalidMaxGuests
	}

	if err := s.checkHotelOwner(ctx, req.HotelID, creatorUserID); err != nil {
		return nil, err
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	rm := &Room{
		HotelID:       req.HotelID,
		RoomType:      strings.TrimSpace(req.RoomType),
		PricePerNight: req.PricePerNight,
		Amenities:     amenities,
		Images:        []string{},
		MaxGuests:     req.MaxGuests,
		IsAvailable:   true,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListRoomTypes(ctx context.Context) ([]string, error) {
	return s.repo.ListRoomTypes(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, updaterUserID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHotelOwner(ctx, rm.HotelID, updaterUserID); err != nil {
		return nil, err
	}

	if req.RoomType != nil {
		if strings.TrimSpace(*req.RoomType) == "" {
			return nil, ErrEmptyRoomType
		}
		rm.RoomType = strings.TrimSpace(*req.RoomType)
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			return nil, ErrInvalidPrice
		}
		rm.PricePerNight = *req.PricePerNight
	}
	if req.Amenities != nil {
		rm.Amenities = req.Amenities
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests <= 0 {
			return nil, ErrInvalidMaxGuests
		}
		rm.MaxGuests = *req.MaxGuests
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) Delete(ctx context.Context, id string, deleterUserID string) error {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkHotelOwner(ctx, rm.HotelID, deleterUserID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// ToggleAvailability flips the room-level availability switch. This gate is
// checked on booking creation before any date-conflict logic runs.
func (s *service) ToggleAvailability(ctx context.Context, id string, updaterUserID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHotelOwner(ctx, rm.HotelID, updaterUserID); err != nil {
		return nil, err
	}

	rm.IsAvailable = !rm.IsAvailable
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// AddImage appends a stored image path to the room's gallery.
func (s *service) AddImage(ctx context.Context, id string, imagePath string, updaterUserID string) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHotelOwner(ctx, rm.HotelID, updaterUserID); err != nil {
		return nil, err
	}

	rm.Images = append(rm.Images, imagePath)
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}
