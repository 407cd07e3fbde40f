package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/response"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/storage"
	"github.com/quickstay/hotel-booking-backend/internal/room"
)

// maxImageSizeBytes limits uploaded room photos to 10 MiB.
const maxImageSizeBytes = 10 << 20

type Handler struct {
	service room.Service
	store   storage.Storage
	imgProc *storage.ImageProcessor
}

func NewHandler(service room.Service, store storage.Storage) *Handler {
	return &Handler{
		service: service,
		store:   store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (h *Handler) respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, room.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, room.ErrHotelNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "hotel not found"})
	case errors.Is(err, room.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, room.ErrEmptyRoomType),
		errors.Is(err, room.ErrInvalidPrice),
		errors.Is(err, room.ErrInvalidMaxGuests):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to " + action})
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rm, err := h.service.Create(c.Request.Context(), room.CreateRequest{
		HotelID:       body.HotelID,
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Amenities:     body.Amenities,
		MaxGuests:     body.MaxGuests,
	}, auth.GetUserID(c))
	if err != nil {
		h.respondServiceError(c, err, "create room")
		return
	}

	c.JSON(http.StatusCreated, NewRoomResponse(rm))
}

func (h *Handler) List(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		HotelID:       req.HotelID,
		RoomType:      req.RoomType,
		City:          req.City,
		MaxPrice:      req.MaxPrice,
		OnlyAvailable: req.OnlyAvailable,
		Page:          req.Page,
		PageSize:      req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListMine lists rooms across all hotels owned by the authenticated owner.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		OwnerID:  auth.GetUserID(c),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// ListByHotel lists rooms of one hotel.
func (h *Handler) ListByHotel(c *gin.Context) {
	hotelID := c.Param("hotelId")
	if _, err := uuid.Parse(hotelID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req ListRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	rooms, total, err := h.service.List(c.Request.Context(), room.Filter{
		HotelID:  hotelID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, rm := range rooms {
		items[i] = NewRoomResponse(rm)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// RoomTypes lists the distinct room types currently offered.
func (h *Handler) RoomTypes(c *gin.Context) {
	types, err := h.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list room types"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_types": types})
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rm, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, err, "get room")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateRoomBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rm, err := h.service.Update(c.Request.Context(), id, room.UpdateRequest{
		RoomType:      body.RoomType,
		PricePerNight: body.PricePerNight,
		Amenities:     body.Amenities,
		MaxGuests:     body.MaxGuests,
	}, auth.GetUserID(c))
	if err != nil {
		h.respondServiceError(c, err, "update room")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		h.respondServiceError(c, err, "delete room")
		return
	}

	c.Status(http.StatusNoContent)
}

// ToggleAvailability flips the room's availability switch.
func (h *Handler) ToggleAvailability(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rm, err := h.service.ToggleAvailability(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		h.respondServiceError(c, err, "toggle availability")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}

// UploadImage accepts a multipart photo, normalizes it to JPEG, stores it,
// and appends its path to the room's image list.
func (h *Handler) UploadImage(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return
	}
	if fileHeader.Size > maxImageSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
		return
	}
	defer src.Close()

	// Buffer the upload so it can be decoded twice, once for the full-size
	// photo and once for the listing-card thumbnail.
	raw, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded image"})
		return
	}

	normalized, err := h.imgProc.NormalizeJPEG(bytes.NewReader(raw), 1600, 1200, 85)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
		return
	}

	thumbnail, err := h.imgProc.GenerateThumbnail(bytes.NewReader(raw), 400, 300)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is not a valid image"})
		return
	}

	base := fmt.Sprintf("rooms/%s/%d-%s", id, time.Now().UTC().Unix(), uuid.NewString())
	imagePath := base + ".jpg"
	thumbPath := base + "_thumb.jpg"

	if err := h.store.Save(c.Request.Context(), imagePath, normalized); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}
	if err := h.store.Save(c.Request.Context(), thumbPath, thumbnail); err != nil {
		_ = h.store.Delete(c.Request.Context(), imagePath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		return
	}

	rm, err := h.service.AddImage(c.Request.Context(), id, imagePath, auth.GetUserID(c))
	if err != nil {
		// Roll back the stored files if the room update is rejected.
		_ = h.store.Delete(c.Request.Context(), imagePath)
		_ = h.store.Delete(c.Request.Context(), thumbPath)
		h.respondServiceError(c, err, "upload image")
		return
	}

	c.JSON(http.StatusOK, NewRoomResponse(rm))
}
