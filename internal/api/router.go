package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	bookingHttp "github.com/quickstay/hotel-booking-backend/internal/booking/http"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	hotelHttp "github.com/quickstay/hotel-booking-backend/internal/hotel/http"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/storage"
	"github.com/quickstay/hotel-booking-backend/internal/room"
	roomHttp "github.com/quickstay/hotel-booking-backend/internal/room/http"
	"github.com/quickstay/hotel-booking-backend/internal/user"
	userHttp "github.com/quickstay/hotel-booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble middleware and routes.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	HotelService   hotel.Service
	RoomService    room.Service
	BookingService booking.Service

	ImageStore storage.Storage
	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// Role middlewares: further check the authenticated user's privileges.
	adminMiddleware := RequireAdmin(cfg.UserService)
	hotelOwnerMiddleware := RequireHotelOwner(cfg.UserService)

	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	hotelHandler := hotelHttp.NewHandler(cfg.HotelService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.ImageStore)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		hotelHttp.RegisterRoutes(v1, hotelHandler, authMiddleware, hotelOwnerMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware, hotelOwnerMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, hotelOwnerMiddleware, adminMiddleware)
	}

	return r
}
