package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	checkIn, err := time.Parse(dateLayout, body.CheckIn)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be a date in YYYY-MM-DD format"})
		return
	}
	checkOut, err := time.Parse(dateLayout, body.CheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be a date in YYYY-MM-DD format"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		GuestID:       auth.GetUserID(c),
		RoomID:        body.RoomID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        body.Guests,
		TotalPrice:    body.TotalPrice,
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// ListMine lists the authenticated guest's own bookings.
func (h *Handler) ListMine(c *gin.Context) {
	h.list(c, func(req ListBookingsRequest) ([]*booking.Booking, int, error) {
		return h.service.ListForGuest(c.Request.Context(), auth.GetUserID(c), booking.Filter{
			Status:   req.Status,
			IsPaid:   req.IsPaid,
			Page:     req.Page,
			PageSize: req.PageSize,
		})
	})
}

// ListForOwner lists bookings across every hotel the caller owns.
func (h *Handler) ListForOwner(c *gin.Context) {
	h.list(c, func(req ListBookingsRequest) ([]*booking.Booking, int, error) {
		return h.service.ListForOwner(c.Request.Context(), auth.GetUserID(c), booking.Filter{
			Status:   req.Status,
			IsPaid:   req.IsPaid,
			Page:     req.Page,
			PageSize: req.PageSize,
		})
	})
}

// ListAll lists every booking in the system. Admin only.
func (h *Handler) ListAll(c *gin.Context) {
	h.list(c, func(req ListBookingsRequest) ([]*booking.Booking, int, error) {
		return h.service.ListAll(c.Request.Context(), booking.Filter{
			Status:   req.Status,
			IsPaid:   req.IsPaid,
			Page:     req.Page,
			PageSize: req.PageSize,
		})
	})
}

func (h *Handler) list(c *gin.Context, fetch func(ListBookingsRequest) ([]*booking.Booking, int, error)) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	bookings, total, err := fetch(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, booking.Status(body.Status), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePaymentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.UpdatePayment(c.Request.Context(), id, booking.PaymentUpdateRequest{
		IsPaid:        body.IsPaid,
		PaymentMethod: body.PaymentMethod,
	}, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
