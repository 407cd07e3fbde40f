package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
)

type Handler struct {
	service hotel.Service
}

func NewHandler(service hotel.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var body CreateHotelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	created, err := h.service.Register(c.Request.Context(), hotel.CreateRequest{
		OwnerID: auth.GetUserID(c),
		Name:    body.Name,
		Address: body.Address,
		Contact: body.Contact,
		City:    body.City,
	})
	if err != nil {
		if errors.Is(err, hotel.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register hotel"})
		return
	}

	c.JSON(http.StatusCreated, NewHotelResponse(created))
}

func (h *Handler) List(c *gin.Context) {
	var req ListHotelsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	hotels, total, err := h.service.List(c.Request.Context(), hotel.Filter{
		City:     req.City,
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hotels"})
		return
	}

	items := make([]HotelResponse, len(hotels))
	for i, it := range hotels {
		items[i] = NewHotelResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListMine lists hotels owned by the authenticated hotel owner.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListHotelsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	hotels, total, err := h.service.List(c.Request.Context(), hotel.Filter{
		OwnerID:  auth.GetUserID(c),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list hotels"})
		return
	}

	items := make([]HotelResponse, len(hotels))
	for i, it := range hotels {
		items[i] = NewHotelResponse(it)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Cities lists the distinct cities that currently have hotels.
func (h *Handler) Cities(c *gin.Context) {
	cities, err := h.service.ListCities(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list cities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, hotel.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get hotel"})
		return
	}

	c.JSON(http.StatusOK, NewHotelResponse(found))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateHotelBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, hotel.UpdateRequest{
		Name:    body.Name,
		Address: body.Address,
		Contact: body.Contact,
		City:    body.City,
	}, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		case errors.Is(err, hotel.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, hotel.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update hotel"})
		}
		return
	}

	c.JSON(http.StatusOK, NewHotelResponse(updated))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, hotel.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
		case errors.Is(err, hotel.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete hotel"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
