package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, hotelOwnerMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")
	group.Use(authMiddleware)

	// === Guest Routes ===
	group.POST("", h.Create)
	group.GET("/my", h.ListMine)
	group.GET("/:id", h.Get)
	group.PATCH("/:id/status", h.UpdateStatus)
	group.PATCH("/:id/payment", h.UpdatePayment)
	group.PATCH("/:id/cancel", h.Cancel)

	// === Hotel Owner Routes ===
	group.GET("/owner", hotelOwnerMiddleware, h.ListForOwner)

	// === Admin Routes ===
	group.GET("", adminMiddleware, h.ListAll)
	group.DELETE("/:id", adminMiddleware, h.Delete)
}
