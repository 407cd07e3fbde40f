package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, hotelOwnerMiddleware gin.HandlerFunc) {
	group := g.Group("/hotels")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/cities", h.Cities)
	group.GET("/:id", h.Get)

	// === Hotel Owner Routes ===
	owner := group.Group("")
	owner.Use(authMiddleware, hotelOwnerMiddleware)
	{
		owner.POST("", h.Register)
		owner.GET("/owner/mine", h.ListMine)
		owner.PUT("/:id", h.Update)
		owner.DELETE("/:id", h.Delete)
	}
}
