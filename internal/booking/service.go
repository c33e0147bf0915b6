package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/darlink/rental-booking-backend/internal/hold"
	"github.com/darlink/rental-booking-backend/internal/pricing"
	"github.com/darlink/rental-booking-backend/internal/property"
	"github.com/darlink/rental-booking-backend/internal/room"
)

type CreateRequest struct {
	UserID      string
	RoomID      string
	StartDate   time.Time
	EndDate     time.Time
	UnitsBooked int
	TripPurpose string
}

// CapacityResult is the outcome of a capacity probe for a date range.
type CapacityResult struct {
	Available      bool
	UnitsRemaining int
}

type Service interface {
	// BlockedDates returns the calendar nights that must be greyed out in a
	// date picker for the room: every night on or after asOf whose occupancy
	// has reached the room's unit count. Past nights are the caller's
	// unconditional rule and are not included here.
	BlockedDates(ctx context.Context, roomID string, asOf time.Time) ([]time.Time, error)

	// CheckCapacity probes whether units more units fit on every night of
	// [startDate, endDate). It is advisory: Create re-checks inside a
	// transaction before inserting.
	CheckCapacity(ctx context.Context, roomID string, startDate, endDate time.Time, units int) (*CapacityResult, error)

	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string, actorID string, isAdmin bool) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// SetStatus performs the accept/decline/cancel lifecycle transition.
	SetStatus(ctx context.Context, id string, actorID string, isAdmin bool, newStatus Status) (*Booking, error)

	// Events returns the append-only status history of a booking.
	Events(ctx context.Context, id string, actorID string, isAdmin bool) ([]*Event, error)
}

type service struct {
	repo        Repository
	roomService room.Service
	propService property.Service
	holds       hold.Store
	holdTTL     time.Duration

	now func() time.Time
}

func NewService(repo Repository, roomService room.Service, propService property.Service, holds hold.Store, holdTTL time.Duration) Service {
	return &service{
		repo:        repo,
		roomService: roomService,
		propService: propService,
		holds:       holds,
		holdTTL:     holdTTL,
		now:         time.Now,
	}
}

func (s *service) BlockedDates(ctx context.Context, roomID string, asOf time.Time) ([]time.Time, error) {
	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	// A fetch failure must propagate: silently treating the room as fully
	// available would let guests request nights that are already taken.
	bookings, err := s.repo.ListActiveForRoom(ctx, roomID, Day(asOf))
	if err != nil {
		return nil, err
	}

	return BlockedNights(bookings, rm.UnitsCount), nil
}

func (s *service) CheckCapacity(ctx context.Context, roomID string, startDate, endDate time.Time, units int) (*CapacityResult, error) {
	if units < 1 {
		return nil, ErrInvalidUnits
	}
	if !Day(endDate).After(Day(startDate)) {
		return nil, ErrInvalidDateRange
	}

	rm, err := s.roomService.GetByID(ctx, roomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	bookings, err := s.repo.ListOverlapping(ctx, roomID, Day(startDate), Day(endDate))
	if err != nil {
		return nil, err
	}

	remaining := UnitsRemaining(bookings, rm.UnitsCount, startDate, endDate)
	return &CapacityResult{
		Available:      remaining >= units,
		UnitsRemaining: remaining,
	}, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	start := Day(req.StartDate)
	end := Day(req.EndDate)

	// 1. Validate the request
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	if start.Before(Day(s.now())) {
		return nil, ErrStartDatePast
	}
	if req.UnitsBooked < 1 {
		return nil, ErrInvalidUnits
	}
	if !isValidTripPurpose(req.TripPurpose) {
		return nil, ErrInvalidTripPurpose
	}

	// 2. Resolve the room and its property
	rm, err := s.roomService.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if req.UnitsBooked > rm.UnitsCount {
		return nil, ErrTooManyUnits
	}

	prop, err := s.propService.GetByID(ctx, rm.PropertyID)
	if err != nil {
		return nil, err
	}
	if prop.Status != property.StatusPublished {
		return nil, ErrPropertyNotPublished
	}

	// 3. Price the stay server-side; the client never dictates the total
	quote, err := pricing.ForStay(rm.PricePerNight, start, end, req.UnitsBooked)
	if err != nil {
		return nil, err
	}

	// 4. Soft-lock the room and range while this request is in flight
	key := hold.Key(req.RoomID, start, end)
	acquired, err := s.holds.Acquire(ctx, key, s.holdTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrBeingProcessed
	}
	defer func() {
		if err := s.holds.Release(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to release booking hold")
		}
	}()

	b := &Booking{
		RoomID:      req.RoomID,
		PropertyID:  rm.PropertyID,
		UserID:      req.UserID,
		StartDate:   start,
		EndDate:     end,
		UnitsBooked: req.UnitsBooked,
		TotalPrice:  quote.Total,
		TripPurpose: req.TripPurpose,
		Status:      StatusPending,
	}

	// 5. Capacity check and insert run in one transaction under a room-scoped
	// lock, so a concurrent request cannot slip between the check and the
	// write and overbook the room.
	if err := s.repo.Create(ctx, b, rm.UnitsCount); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"room_id":    b.RoomID,
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"units":      b.UnitsBooked,
	}).Info("booking created")

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string, actorID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(b, actorID, isAdmin) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) SetStatus(ctx context.Context, id string, actorID string, isAdmin bool, newStatus Status) (*Booking, error) {
	if newStatus != StatusConfirmed && newStatus != StatusCancelled && newStatus != StatusRejected {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Terminal states are immutable; a second decision on the same booking
	// is a caller bug, not a race to win.
	if b.Status.Terminal() {
		return nil, ErrInvalidTransition
	}

	isGuest := b.UserID == actorID
	isHost := b.OwnerID == actorID

	switch newStatus {
	case StatusConfirmed, StatusRejected:
		// Accept/decline is the host's (or an admin's) call.
		if !isHost && !isAdmin {
			return nil, ErrPermissionDenied
		}
	case StatusCancelled:
		// Guests withdraw their own requests; hosts and admins may cancel too.
		if !isGuest && !isHost && !isAdmin {
			return nil, ErrPermissionDenied
		}
	}

	from := b.Status
	b.Status = newStatus

	if err := s.repo.UpdateStatus(ctx, b, from, actorID); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"from":       from,
		"to":         newStatus,
		"actor_id":   actorID,
	}).Info("booking status changed")

	return b, nil
}

func (s *service) Events(ctx context.Context, id string, actorID string, isAdmin bool) ([]*Event, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(b, actorID, isAdmin) {
		return nil, ErrPermissionDenied
	}
	return s.repo.ListEvents(ctx, id)
}

// canView: the guest who requested, the host who owns the property, or an admin.
func (s *service) canView(b *Booking, actorID string, isAdmin bool) bool {
	return isAdmin || b.UserID == actorID || b.OwnerID == actorID
}

func isValidTripPurpose(p string) bool {
	for _, v := range ValidTripPurposes {
		if p == v {
			return true
		}
	}
	return false
}
