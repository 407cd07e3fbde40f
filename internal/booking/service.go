package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/notify"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

// RoomDirectory is the slice of the room service the booking core needs.
type RoomDirectory interface {
	GetByID(ctx context.Context, id string) (*room.Room, error)
}

// HotelDirectory resolves a hotel so ownership can be checked.
type HotelDirectory interface {
	GetByID(ctx context.Context, id string) (*hotel.Hotel, error)
}

type CreateRequest struct {
	GuestID       string
	RoomID        string
	CheckIn       time.Time
	CheckOut      time.Time
	Guests        int
	TotalPrice    float64
	PaymentMethod string
}

type PaymentUpdateRequest struct {
	IsPaid        *bool
	PaymentMethod *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)

	// GetByID returns the booking only to its guest or the owning hotel's owner.
	GetByID(ctx context.Context, id string, actorUserID string) (*Booking, error)

	ListForGuest(ctx context.Context, guestID string, filter Filter) ([]*Booking, int, error)
	ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error)
	ListAll(ctx context.Context, filter Filter) ([]*Booking, int, error)

	UpdateStatus(ctx context.Context, id string, to Status, actorUserID string) (*Booking, error)
	UpdatePayment(ctx context.Context, id string, req PaymentUpdateRequest, actorUserID string) (*Booking, error)
	Cancel(ctx context.Context, id string, actorUserID string) (*Booking, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	rooms    RoomDirectory
	hotels   HotelDirectory
	notifier notify.Notifier

	// now is swappable so the past-check-in rule is testable.
	now func() time.Time
}

func NewService(repo Repository, rooms RoomDirectory, hotels HotelDirectory, notifier notify.Notifier) Service {
	return &service{
		repo:     repo,
		rooms:    rooms,
		hotels:   hotels,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	checkIn := DateOnly(req.CheckIn)
	checkOut := DateOnly(req.CheckOut)
	today := DateOnly(s.now())

	if checkIn.Before(today) {
		return nil, ErrCheckInPast
	}
	if !checkOut.After(checkIn) {
		return nil, ErrInvalidDateRange
	}
	if req.Guests <= 0 {
		return nil, ErrInvalidGuests
	}
	if req.TotalPrice < 0 {
		return nil, ErrInvalidPrice
	}

	rm, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, room.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !rm.IsAvailable {
		return nil, ErrRoomUnavailable
	}
	if req.Guests > rm.MaxGuests {
		return nil, ErrInvalidGuests
	}

	totalPrice := req.TotalPrice
	if totalPrice == 0 {
		nights := int(checkOut.Sub(checkIn).Hours() / 24)
		totalPrice = rm.PricePerNight * float64(nights)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	b := &Booking{
		GuestID:       req.GuestID,
		RoomID:        rm.ID,
		HotelID:       rm.HotelID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		TotalPrice:    totalPrice,
		PaymentMethod: paymentMethod,
		IsPaid:        false,
		Status:        StatusPending,
	}

	// The repository holds the authoritative conflict check; it runs inside
	// the same transaction as the insert.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	b.RoomType = rm.RoomType
	b.HotelName = rm.HotelName
	b.HotelCity = rm.HotelCity

	s.publishCreated(b)

	return b, nil
}

// publishCreated fires the booking-created event in the background. The
// booking is already committed, so a publish failure is only logged.
func (s *service) publishCreated(b *Booking) {
	ev := notify.BookingCreatedEvent{
		BookingID:     b.ID,
		GuestID:       b.GuestID,
		GuestEmail:    b.GuestEmail,
		HotelID:       b.HotelID,
		HotelName:     b.HotelName,
		RoomID:        b.RoomID,
		RoomType:      b.RoomType,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		TotalPrice:    b.TotalPrice,
		PaymentMethod: b.PaymentMethod,
		Status:        string(b.Status),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.notifier.BookingCreated(ctx, ev); err != nil {
			log.Printf("failed to publish booking created event for %s: %v", ev.BookingID, err)
		}
	}()
}

// relationTo resolves how the acting user relates to a booking.
func (s *service) relationTo(ctx context.Context, b *Booking, actorUserID string) (Relation, error) {
	if b.GuestID == actorUserID {
		return RelationGuest, nil
	}

	h, err := s.hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			return RelationNone, nil
		}
		return RelationNone, err
	}
	if h.OwnerID == actorUserID {
		return RelationHotelOwner, nil
	}
	return RelationNone, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relationTo(ctx, b, actorUserID)
	if err != nil {
		return nil, err
	}
	if rel == RelationNone {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) ListForGuest(ctx context.Context, guestID string, filter Filter) ([]*Booking, int, error) {
	filter.GuestID = guestID
	filter.HotelOwnerID = ""
	return s.repo.List(ctx, filter)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, filter Filter) ([]*Booking, int, error) {
	filter.HotelOwnerID = ownerID
	filter.GuestID = ""
	return s.repo.List(ctx, filter)
}

func (s *service) ListAll(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, to Status, actorUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	rel, err := s.relationTo(ctx, b, actorUserID)
	if err != nil {
		return nil, err
	}
	if rel == RelationNone {
		return nil, ErrPermissionDenied
	}

	if err := CanTransition(b.Status, to, rel); err != nil {
		return nil, err
	}

	// Conditional on the status read above; a concurrent transition surfaces
	// as ErrConcurrentUpdate rather than silently overwriting it.
	if err := s.repo.UpdateStatus(ctx, id, b.Status, to); err != nil {
		return nil, err
	}

	b.Status = to
	return b, nil
}

// UpdatePayment records payment details. Only the guest may touch payment.
// It deliberately does not gate on or change the booking status.
func (s *service) UpdatePayment(ctx context.Context, id string, req PaymentUpdateRequest, actorUserID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID != actorUserID {
		return nil, ErrPermissionDenied
	}

	if req.IsPaid == nil && req.PaymentMethod == nil {
		return b, nil
	}

	if err := s.repo.UpdatePayment(ctx, id, req.IsPaid, req.PaymentMethod); err != nil {
		return nil, err
	}

	if req.IsPaid != nil {
		b.IsPaid = *req.IsPaid
	}
	if req.PaymentMethod != nil {
		b.PaymentMethod = *req.PaymentMethod
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string, actorUserID string) (*Booking, error) {
	return s.UpdateStatus(ctx, id, StatusCancelled, actorUserID)
}

// Delete removes a booking outright. Reserved for admins; regular flows
// cancel instead so the record stays auditable.
func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
