package http

import (
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/booking"
	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/request"
	roomHttp "github.com/quickstay/hotel-booking-backend/internal/room/http"
)

// dateLayout is the wire format for check-in and check-out. Bookings operate
// on calendar dates, not timestamps.
const dateLayout = "2006-01-02"

// CreateBookingBody defines the payload for placing a booking.
type CreateBookingBody struct {
	RoomID        string  `json:"room_id" binding:"required,uuid"`
	CheckIn       string  `json:"check_in" binding:"required"`
	CheckOut      string  `json:"check_out" binding:"required"`
	Guests        int     `json:"guests" binding:"required"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
}

// UpdateStatusBody defines the payload for a status transition.
type UpdateStatusBody struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentBody defines the payload for payment updates; nil fields are unchanged.
type UpdatePaymentBody struct {
	IsPaid        *bool   `json:"is_paid"`
	PaymentMethod *string `json:"payment_method"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Status string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
	IsPaid *bool  `form:"is_paid"`
}

// BookingResponse is the booking representation returned by the API. Room and
// hotel are embedded as tags so clients can render a booking card without
// extra lookups.
type BookingResponse struct {
	ID            string             `json:"id"`
	GuestID       string             `json:"guest_id"`
	GuestName     string             `json:"guest_name,omitempty"`
	GuestEmail    string             `json:"guest_email,omitempty"`
	Room          roomHttp.RoomTag   `json:"room"`
	Hotel         hotelHttp.HotelTag `json:"hotel"`
	CheckIn       string             `json:"check_in"`
	CheckOut      string             `json:"check_out"`
	Guests        int                `json:"guests"`
	TotalPrice    float64            `json:"total_price"`
	PaymentMethod string             `json:"payment_method"`
	IsPaid        bool               `json:"is_paid"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		GuestID:    b.GuestID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		Room:       roomHttp.RoomTag{ID: b.RoomID, RoomType: b.RoomType},
		Hotel:      hotelHttp.HotelTag{ID: b.HotelID, Name: b.HotelName, City: b.HotelCity},
		CheckIn:       b.CheckIn.Format(dateLayout),
		CheckOut:      b.CheckOut.Format(dateLayout),
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		IsPaid:        b.IsPaid,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
