package http

import (
	"time"

	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/request"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

// RoomTag is a brief representation of a room for embedding in other responses.
type RoomTag struct {
	ID            string  `json:"id"`
	RoomType      string  `json:"room_type"`
	PricePerNight float64 `json:"price_per_night,omitempty"`
}

// RoomResponse is the full room representation returned by the API.
type RoomResponse struct {
	ID            string             `json:"id"`
	Hotel         hotelHttp.HotelTag `json:"hotel"`
	RoomType      string             `json:"room_type"`
	PricePerNight float64            `json:"price_per_night"`
	Amenities     []string           `json:"amenities"`
	Images        []string           `json:"images"`
	MaxGuests     int                `json:"max_guests"`
	IsAvailable   bool               `json:"is_available"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewRoomResponse(rm *room.Room) RoomResponse {
	amenities := rm.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := rm.Images
	if images == nil {
		images = []string{}
	}

	return RoomResponse{
		ID:            rm.ID,
		Hotel:         hotelHttp.HotelTag{ID: rm.HotelID, Name: rm.HotelName, City: rm.HotelCity},
		RoomType:      rm.RoomType,
		PricePerNight: rm.PricePerNight,
		Amenities:     amenities,
		Images:        images,
		MaxGuests:     rm.MaxGuests,
		IsAvailable:   rm.IsAvailable,
		CreatedAt:     rm.CreatedAt,
	}
}

// CreateRoomBody defines the payload for adding a room to a hotel.
type CreateRoomBody struct {
	HotelID       string   `json:"hotel_id" binding:"required,uuid"`
	RoomType      string   `json:"room_type" binding:"required"`
	PricePerNight float64  `json:"price_per_night" binding:"required,gt=0"`
	Amenities     []string `json:"amenities"`
	MaxGuests     int      `json:"max_guests" binding:"required,gt=0"`
}

// UpdateRoomBody defines the payload for updating a room; nil fields are unchanged.
type UpdateRoomBody struct {
	RoomType      *string  `json:"room_type"`
	PricePerNight *float64 `json:"price_per_night"`
	Amenities     []string `json:"amenities"`
	MaxGuests     *int     `json:"max_guests"`
}

// ListRoomsRequest defines query parameters for listing rooms.
type ListRoomsRequest struct {
	request.ListParams
	HotelID       string  `form:"hotel_id" binding:"omitempty,uuid"`
	RoomType      string  `form:"room_type"`
	City          string  `form:"city"`
	MaxPrice      float64 `form:"max_price" binding:"omitempty,gt=0"`
	OnlyAvailable bool    `form:"only_available"`
}
