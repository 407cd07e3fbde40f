package room

import (
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("room not found")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrEmptyRoomType    = errors.New("room type cannot be empty")
	ErrInvalidPrice     = errors.New("price per night must be positive")
	ErrInvalidMaxGuests = errors.New("max guests must be positive")
	ErrPermissionDenied = errors.New("you are not the owner of this room's hotel")
)

// Room represents a bookable room inside a hotel. IsAvailable is the owner's
// on/off switch for the room and is independent of date-based booking
// conflicts.
type Room struct {
	ID            string
	HotelID       string
	HotelName     string // joined for display
	HotelCity     string // joined for display
	RoomType      string
	PricePerNight float64
	Amenities     []string
	Images        []string
	MaxGuests     int
	IsAvailable   bool
	CreatedAt     time.Time
}

// Filter defines parameters for listing rooms.
type Filter struct {
	HotelID       string
	OwnerID       string // rooms across all hotels of this owner
	RoomType      string
	City          string
	MaxPrice      float64
	OnlyAvailable bool

	Page     int
	PageSize int
}
