package room

import (
	"net/http"
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "room not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "room name is required")
	ErrInvalidPrice     = apperror.New(http.StatusBadRequest, "price per night must be positive")
	ErrInvalidGuests    = apperror.New(http.StatusBadRequest, "max guests must be at least 1")
	ErrInvalidBeds      = apperror.New(http.StatusBadRequest, "beds must be at least 1")
	ErrInvalidUnits     = apperror.New(http.StatusBadRequest, "units count must be at least 1")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Room is a bookable unit type under a property. A room with UnitsCount = N
// represents N identical physical units sold under the same name, so up to N
// bookings may overlap on any given night.
type Room struct {
	ID            string
	PropertyID    string
	Name          string
	PricePerNight float64
	MaxGuests     int
	Beds          int
	UnitsCount    int
	CreatedAt     time.Time
}
