package http

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/request"
)

// HotelTag is a brief representation of a hotel for embedding in other responses.
type HotelTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// HotelResponse is the full hotel representation returned by the API.
type HotelResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Contact   string    `json:"contact"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

func NewHotelResponse(h *hotel.Hotel) HotelResponse {
	return HotelResponse{
		ID:        h.ID,
		OwnerID:   h.OwnerID,
		OwnerName: h.OwnerName,
		Name:      h.Name,
		Address:   h.Address,
		Contact:   h.Contact,
		City:      h.City,
		CreatedAt: h.CreatedAt,
	}
}

// CreateHotelBody defines the payload for registering a hotel.
type CreateHotelBody struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	City    string `json:"city" binding:"required"`
}

// UpdateHotelBody defines the payload for updating a hotel; nil fields are unchanged.
type UpdateHotelBody struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
	City    *string `json:"city"`
}

// ListHotelsRequest defines query parameters for listing hotels.
type ListHotelsRequest struct {
	request.ListParams
	City   string `form:"city"`
	Search string `form:"search"`
}
