package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, hotelOwnerMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/types", h.RoomTypes)
	group.GET("/hotel/:hotelId", h.ListByHotel)
	group.GET("/:id", h.Get)

	// === Hotel Owner Routes ===
	owner := group.Group("")
	owner.Use(authMiddleware, hotelOwnerMiddleware)
	{
		owner.POST("", h.Create)
		owner.GET("/owner/mine", h.ListMine)
		owner.PUT("/:id", h.Update)
		owner.DELETE("/:id", h.Delete)
		owner.PATCH("/:id/availability", h.ToggleAvailability)
		owner.POST("/:id/images", h.UploadImage)
	}
}
