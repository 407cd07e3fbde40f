package booking

import (
	"net/http"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrHotelNotFound     = apperror.New(http.StatusNotFound, "hotel not found")
	ErrRoomUnavailable   = apperror.New(http.StatusConflict, "room is not available")
	ErrDatesUnavailable  = apperror.New(http.StatusConflict, "room is already booked for selected dates")
	ErrCheckInPast       = apperror.New(http.StatusBadRequest, "check-in date cannot be in the past")
	ErrInvalidDateRange  = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrInvalidGuests     = apperror.New(http.StatusBadRequest, "guest count must be positive")
	ErrInvalidPrice      = apperror.New(http.StatusBadRequest, "total price cannot be negative")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrAlreadyCancelled  = apperror.New(http.StatusConflict, "booking is already cancelled")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "booking status cannot make this transition")
	ErrConcurrentUpdate  = apperror.New(http.StatusConflict, "booking was modified concurrently, please retry")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "you are not authorized to access this booking")
)

// DefaultPaymentMethod is applied when a booking request omits one.
const DefaultPaymentMethod = "Pay At Hotel"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Booking is a guest's reservation of a room for a half-open date range
// [CheckIn, CheckOut): the checkout day itself is free, so a new stay may
// begin on another booking's checkout date.
type Booking struct {
	ID      string
	GuestID string
	RoomID  string
	HotelID string

	// Display projections joined from the room, hotel and user directories.
	GuestName  string
	GuestEmail string
	RoomType   string
	HotelName  string
	HotelCity  string

	CheckIn       time.Time // date-only, UTC midnight
	CheckOut      time.Time // date-only, UTC midnight
	Guests        int
	TotalPrice    float64
	PaymentMethod string
	IsPaid        bool
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	GuestID      string
	RoomID       string
	HotelID      string
	HotelOwnerID string // bookings across every hotel owned by this user
	Status       string
	IsPaid       *bool

	Page     int
	PageSize int
}

// Overlaps reports whether two half-open date ranges intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DateOnly truncates a timestamp to UTC midnight. All range comparisons in
// this package operate on calendar dates, never times of day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
