package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickstay/hotel-booking-backend/internal/api"
	"github.com/quickstay/hotel-booking-backend/internal/auth"
	"github.com/quickstay/hotel-booking-backend/internal/booking"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/notify"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/storage"
	"github.com/quickstay/hotel-booking-backend/internal/room"
	"github.com/quickstay/hotel-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string

	// AMQPURL empty means booking events are dropped.
	AMQPURL      string
	AMQPExchange string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Notifier   notify.Notifier
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	imageStore, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init image storage failed: %w", err)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.AMQPURL != "" {
		notifier, err = notify.NewAMQPNotifier(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return nil, fmt.Errorf("init amqp notifier failed: %w", err)
		}
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Hotel Module
	hotelRepo := hotel.NewPgxRepository(cfg.DBPool)
	hotelService := hotel.NewService(hotelRepo)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, hotelService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, hotelService, notifier)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		HotelService:   hotelService,
		RoomService:    roomService,
		BookingService: bookingService,
		ImageStore:     imageStore,
		JWTManager:     jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Notifier:   notifier,
	}, nil
}
