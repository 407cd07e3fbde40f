package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	me := g.Group("/me", authMiddleware)
	{
		me.GET("", h.Me)
		me.PUT("/profile", h.UpdateProfile)
		me.POST("/recent-cities", h.AddRecentCity)
		me.GET("/recent-cities", h.RecentCities)
		me.DELETE("", h.DeleteAccount)
	}

	// Admin Routes
	usersGroup := g.Group("/users")
	usersGroup.Use(authMiddleware, adminMiddleware)
	{
		usersGroup.GET("", h.List)
		usersGroup.PATCH("/:id/role", h.UpdateRole)
	}
}
