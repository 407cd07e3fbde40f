package notify

import (
	"context"
	"time"
)

// BookingCreatedEvent is the payload published after a booking is persisted.
type BookingCreatedEvent struct {
	BookingID     string    `json:"booking_id"`
	GuestID       string    `json:"guest_id"`
	GuestEmail    string    `json:"guest_email,omitempty"`
	HotelID       string    `json:"hotel_id"`
	HotelName     string    `json:"hotel_name,omitempty"`
	RoomID        string    `json:"room_id"`
	RoomType      string    `json:"room_type,omitempty"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Guests        int       `json:"guests"`
	TotalPrice    float64   `json:"total_price"`
	PaymentMethod string    `json:"payment_method"`
	Status        string    `json:"status"`
}

// Notifier delivers booking events to interested consumers (mail senders,
// dashboards). Delivery is best-effort: a failed publish must never fail or
// roll back the booking that triggered it.
type Notifier interface {
	BookingCreated(ctx context.Context, ev BookingCreatedEvent) error
	Close() error
}

// NopNotifier discards all events. Used when no broker is configured.
type NopNotifier struct{}

func (NopNotifier) BookingCreated(ctx context.Context, ev BookingCreatedEvent) error {
	return nil
}

func (NopNotifier) Close() error {
	return nil
}
