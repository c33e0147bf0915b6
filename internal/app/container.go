package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/darlink/rental-booking-backend/internal/api"
	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/booking"
	"github.com/darlink/rental-booking-backend/internal/hold"
	"github.com/darlink/rental-booking-backend/internal/property"
	"github.com/darlink/rental-booking-backend/internal/review"
	"github.com/darlink/rental-booking-backend/internal/room"
	"github.com/darlink/rental-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	HoldStore    hold.Store
	HoldTTL      time.Duration
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Property Module
	propRepo := property.NewPgxRepository(cfg.DBPool)
	propService := property.NewService(propRepo, userService)

	// Room Module
	roomRepo := room.NewPgxRepository(cfg.DBPool)
	roomService := room.NewService(roomRepo, propService)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, roomService, propService, cfg.HoldStore, cfg.HoldTTL)

	// Review Module
	reviewRepo := review.NewPgxRepository(cfg.DBPool)
	reviewService := review.NewService(reviewRepo, propService, bookingService)

	// API Router Config
	routerParams := api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		PropertyService: propService,
		RoomService:     roomService,
		BookingService:  bookingService,
		ReviewService:   reviewService,
		JWTManager:      jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
