package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/booking"
	bookingHttp "github.com/darlink/rental-booking-backend/internal/booking/http"
	"github.com/darlink/rental-booking-backend/internal/property"
	propertyHttp "github.com/darlink/rental-booking-backend/internal/property/http"
	"github.com/darlink/rental-booking-backend/internal/review"
	reviewHttp "github.com/darlink/rental-booking-backend/internal/review/http"
	"github.com/darlink/rental-booking-backend/internal/room"
	roomHttp "github.com/darlink/rental-booking-backend/internal/room/http"
	"github.com/darlink/rental-booking-backend/internal/user"
	userHttp "github.com/darlink/rental-booking-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated list of allowed origins in production

	UserService     user.Service
	PropertyService property.Service
	RoomService     room.Service
	BookingService  booking.Service
	ReviewService   review.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	// adminMiddleware: Further checks if the authenticated user is a platform admin.
	adminMiddleware := RequireAdmin(cfg.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewUserHandler(cfg.UserService, cfg.JWTManager)
	propertyHandler := propertyHttp.NewHandler(cfg.PropertyService, cfg.UserService)
	roomHandler := roomHttp.NewHandler(cfg.RoomService, cfg.UserService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.UserService)
	reviewHandler := reviewHttp.NewHandler(cfg.ReviewService, cfg.UserService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		propertyHttp.RegisterRoutes(v1, propertyHandler, authMiddleware, adminMiddleware)
		roomHttp.RegisterRoutes(v1, roomHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		reviewHttp.RegisterRoutes(v1, reviewHandler, authMiddleware)
	}

	return r
}
