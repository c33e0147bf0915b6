package booking

import (
	"net/http"
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "booking not found")
	ErrRoomNotFound         = apperror.New(http.StatusNotFound, "room not found")
	ErrCapacityExceeded     = apperror.New(http.StatusConflict, "room is not available for the selected dates")
	ErrBeingProcessed       = apperror.New(http.StatusConflict, "a booking for these dates is currently being processed, try again shortly")
	ErrInvalidDateRange     = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrStartDatePast        = apperror.New(http.StatusBadRequest, "cannot create booking in the past")
	ErrInvalidUnits         = apperror.New(http.StatusBadRequest, "units booked must be at least 1")
	ErrTooManyUnits         = apperror.New(http.StatusBadRequest, "units booked exceeds the room's unit count")
	ErrInvalidTripPurpose   = apperror.New(http.StatusBadRequest, "invalid trip purpose")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition    = apperror.New(http.StatusConflict, "booking status can no longer be changed")
	ErrStatusChanged        = apperror.New(http.StatusConflict, "booking status changed concurrently, reload and retry")
	ErrPermissionDenied     = apperror.New(http.StatusForbidden, "permission denied")
	ErrPropertyNotPublished = apperror.New(http.StatusBadRequest, "property is not open for bookings")
)

// Status is the lifecycle state of a booking request.
//
// pending is the initial state. confirmed, cancelled and rejected are
// terminal. cancelled (guest withdrew) and rejected (host declined) are both
// negative outcomes with the same effect: the booking stops consuming
// capacity the moment it enters either state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusRejected  Status = "rejected"
)

// ConsumesCapacity reports whether a booking in this status counts against
// the room's unit inventory. Both pending and confirmed hold units.
func (s Status) ConsumesCapacity() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transition is allowed from this status.
func (s Status) Terminal() bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusRejected
}

// Trip purposes accepted on a booking request.
var ValidTripPurposes = []string{"Family", "Friends", "Company", "Romantic"}

// Booking is a reservation request for UnitsBooked units of a room over the
// half-open date range [StartDate, EndDate): the guest sleeps every night
// from StartDate up to but not including EndDate.
type Booking struct {
	ID            string
	RoomID        string
	RoomName      string
	PropertyID    string
	PropertyTitle string
	OwnerID       string
	UserID        string
	UserName      string
	StartDate     time.Time
	EndDate       time.Time
	UnitsBooked   int
	TotalPrice    float64
	TripPurpose   string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Event is one entry of the append-only status audit log.
type Event struct {
	ID         string
	BookingID  string
	FromStatus *Status // nil for the creation event
	ToStatus   Status
	ActorID    string
	CreatedAt  time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	OwnerID    string // matches bookings on properties owned by this user
	PropertyID string
	RoomID     string
	Status     string
	DateFrom   *time.Time // bookings ending on or after this date
	DateTo     *time.Time // bookings starting before this date
	Page       int
	PageSize   int
}
