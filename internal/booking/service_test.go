package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darlink/rental-booking-backend/internal/hold"
	"github.com/darlink/rental-booking-backend/internal/property"
	"github.com/darlink/rental-booking-backend/internal/room"
)

// ==== Fakes ====

type fakeRepo struct {
	bookings map[string]*Booking
	events   map[string][]*Event

	// ownerID stands in for the property join the real store performs.
	ownerID string

	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings: make(map[string]*Booking),
		events:   make(map[string][]*Event),
	}
}

func (r *fakeRepo) Create(_ context.Context, b *Booking, unitsCount int) error {
	// Same capacity rule the real store enforces inside its transaction.
	var active []*Booking
	for _, existing := range r.bookings {
		if existing.RoomID == b.RoomID && Overlaps(existing.StartDate, existing.EndDate, b.StartDate, b.EndDate) {
			active = append(active, existing)
		}
	}
	if UnitsRemaining(active, unitsCount, b.StartDate, b.EndDate) < b.UnitsBooked {
		return ErrCapacityExceeded
	}

	r.nextID++
	b.ID = fmt.Sprintf("booking-%d", r.nextID)
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = b
	r.events[b.ID] = append(r.events[b.ID], &Event{BookingID: b.ID, ToStatus: b.Status, ActorID: b.UserID})
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *b
	copied.OwnerID = r.ownerID
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Booking, int, error) {
	var result []*Booking
	for _, b := range r.bookings {
		if filter.UserID != "" && b.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, len(result), nil
}

func (r *fakeRepo) ListActiveForRoom(_ context.Context, roomID string, asOf time.Time) ([]*Booking, error) {
	var result []*Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Status.ConsumesCapacity() && !b.EndDate.Before(asOf) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) ListOverlapping(_ context.Context, roomID string, start, end time.Time) ([]*Booking, error) {
	var result []*Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID && b.Status.ConsumesCapacity() && Overlaps(b.StartDate, b.EndDate, start, end) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, b *Booking, from Status, actorID string) error {
	stored, ok := r.bookings[b.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.Status != from {
		return ErrStatusChanged
	}
	stored.Status = b.Status
	fromCopy := from
	r.events[b.ID] = append(r.events[b.ID], &Event{
		BookingID:  b.ID,
		FromStatus: &fromCopy,
		ToStatus:   b.Status,
		ActorID:    actorID,
	})
	return nil
}

func (r *fakeRepo) ListEvents(_ context.Context, bookingID string) ([]*Event, error) {
	return r.events[bookingID], nil
}

type fakeRoomService struct {
	rooms map[string]*room.Room
}

func (s *fakeRoomService) GetByID(_ context.Context, id string) (*room.Room, error) {
	rm, ok := s.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	return rm, nil
}

func (s *fakeRoomService) ListByProperty(_ context.Context, _ string) ([]*room.Room, error) {
	return nil, nil
}

func (s *fakeRoomService) ReplaceForProperty(_ context.Context, _ string, _ []room.RoomInput, _ string, _ bool) ([]*room.Room, error) {
	return nil, nil
}

type fakePropService struct {
	properties map[string]*property.Property
}

func (s *fakePropService) GetByID(_ context.Context, id string) (*property.Property, error) {
	p, ok := s.properties[id]
	if !ok {
		return nil, property.ErrNotFound
	}
	return p, nil
}

func (s *fakePropService) Create(_ context.Context, _ property.CreateRequest) (*property.Property, error) {
	return nil, nil
}

func (s *fakePropService) List(_ context.Context, _ property.Filter) ([]*property.Property, int, error) {
	return nil, 0, nil
}

func (s *fakePropService) Update(_ context.Context, _ string, _ property.UpdateRequest, _ string, _ bool) (*property.Property, error) {
	return nil, nil
}

func (s *fakePropService) Delete(_ context.Context, _ string, _ string, _ bool) error {
	return nil
}

func (s *fakePropService) SetStatus(_ context.Context, _ string, _ property.Status) (*property.Property, error) {
	return nil, nil
}

func (s *fakePropService) IsOwner(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
}

// ==== Fixture ====

const (
	roomID     = "7b7f3b53-67a2-47e8-9e3f-70c35b1bb001"
	propertyID = "7b7f3b53-67a2-47e8-9e3f-70c35b1bb002"
	guestID    = "7b7f3b53-67a2-47e8-9e3f-70c35b1bb003"
	hostID     = "7b7f3b53-67a2-47e8-9e3f-70c35b1bb004"
	otherID    = "7b7f3b53-67a2-47e8-9e3f-70c35b1bb005"
)

type fixture struct {
	repo    *fakeRepo
	rooms   *fakeRoomService
	props   *fakePropService
	service *service
}

func newFixture(t *testing.T, unitsCount int) *fixture {
	t.Helper()

	repo := newFakeRepo()
	repo.ownerID = hostID
	rooms := &fakeRoomService{rooms: map[string]*room.Room{
		roomID: {
			ID:            roomID,
			PropertyID:    propertyID,
			Name:          "Garden Suite",
			PricePerNight: 100,
			MaxGuests:     2,
			Beds:          1,
			UnitsCount:    unitsCount,
		},
	}}
	props := &fakePropService{properties: map[string]*property.Property{
		propertyID: {
			ID:      propertyID,
			OwnerID: hostID,
			Title:   "Seaside House",
			Status:  property.StatusPublished,
		},
	}}

	svc := NewService(repo, rooms, props, hold.NewMemoryStore(), time.Minute).(*service)
	// Freeze the clock so "past date" checks are deterministic.
	svc.now = func() time.Time { return date(2025, 6, 1) }

	return &fixture{repo: repo, rooms: rooms, props: props, service: svc}
}

func (f *fixture) createBooking(t *testing.T, start, end time.Time, units int) *Booking {
	t.Helper()

	b, err := f.service.Create(context.Background(), CreateRequest{
		UserID:      guestID,
		RoomID:      roomID,
		StartDate:   start,
		EndDate:     end,
		UnitsBooked: units,
		TripPurpose: "Family",
	})
	require.NoError(t, err)
	return b
}

// ==== Create ====

func TestCreateBooking(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t, 1)

		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, StatusPending, b.Status)
		assert.Equal(t, propertyID, b.PropertyID)
		// 2 weeknights at 100 plus 10% service fee
		assert.InDelta(t, 220.0, b.TotalPrice, 0.001)
	})

	t.Run("rejects invalid date range", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 12),
			EndDate:     date(2025, 6, 10),
			UnitsBooked: 1,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		_, err = f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 10),
			UnitsBooked: 1,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange, "zero-night stay must be rejected")
	})

	t.Run("rejects past start date", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 5, 20),
			EndDate:     date(2025, 5, 22),
			UnitsBooked: 1,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrStartDatePast)
	})

	t.Run("rejects unknown trip purpose", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 12),
			UnitsBooked: 1,
			TripPurpose: "Business",
		})
		assert.ErrorIs(t, err, ErrInvalidTripPurpose)
	})

	t.Run("rejects more units than the room has", func(t *testing.T) {
		f := newFixture(t, 2)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 12),
			UnitsBooked: 3,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrTooManyUnits)
	})

	t.Run("rejects unpublished property", func(t *testing.T) {
		f := newFixture(t, 1)
		f.props.properties[propertyID].Status = property.StatusPending

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 12),
			UnitsBooked: 1,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrPropertyNotPublished)
	})

	t.Run("overlapping range on a full room is rejected", func(t *testing.T) {
		f := newFixture(t, 1)
		f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      otherID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 11),
			EndDate:     date(2025, 6, 13),
			UnitsBooked: 1,
			TripPurpose: "Friends",
		})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("back to back stays both succeed", func(t *testing.T) {
		f := newFixture(t, 1)
		f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)
		f.createBooking(t, date(2025, 6, 12), date(2025, 6, 14), 1)
	})

	t.Run("two unit room accepts two overlapping bookings but not three", func(t *testing.T) {
		f := newFixture(t, 2)
		f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)
		f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.Create(context.Background(), CreateRequest{
			UserID:      otherID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 12),
			UnitsBooked: 1,
			TripPurpose: "Romantic",
		})
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	})

	t.Run("cancelled booking frees the range", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.SetStatus(context.Background(), b.ID, guestID, false, StatusCancelled)
		require.NoError(t, err)

		f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)
	})

	t.Run("concurrent hold on the same range is rejected", func(t *testing.T) {
		f := newFixture(t, 1)

		key := hold.Key(roomID, date(2025, 6, 10), date(2025, 6, 12))
		acquired, err := f.service.holds.Acquire(context.Background(), key, time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		_, err = f.service.Create(context.Background(), CreateRequest{
			UserID:      guestID,
			RoomID:      roomID,
			StartDate:   date(2025, 6, 10),
			EndDate:     date(2025, 6, 12),
			UnitsBooked: 1,
			TripPurpose: "Family",
		})
		assert.ErrorIs(t, err, ErrBeingProcessed)
	})
}

// ==== Availability ====

func TestServiceBlockedDates(t *testing.T) {
	f := newFixture(t, 1)
	f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

	nights, err := f.service.BlockedDates(context.Background(), roomID, date(2025, 6, 1))
	require.NoError(t, err)
	require.Len(t, nights, 2)
	assert.Equal(t, date(2025, 6, 10), nights[0])
	assert.Equal(t, date(2025, 6, 11), nights[1])

	_, err = f.service.BlockedDates(context.Background(), "missing", date(2025, 6, 1))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestServiceCheckCapacity(t *testing.T) {
	f := newFixture(t, 2)
	f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

	result, err := f.service.CheckCapacity(context.Background(), roomID, date(2025, 6, 10), date(2025, 6, 12), 1)
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, 1, result.UnitsRemaining)

	result, err = f.service.CheckCapacity(context.Background(), roomID, date(2025, 6, 10), date(2025, 6, 12), 2)
	require.NoError(t, err)
	assert.False(t, result.Available)

	_, err = f.service.CheckCapacity(context.Background(), roomID, date(2025, 6, 12), date(2025, 6, 10), 1)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

// ==== Status transitions ====

func TestSetStatus(t *testing.T) {
	t.Run("host confirms a pending booking", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		updated, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("guest cannot confirm their own booking", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.SetStatus(context.Background(), b.ID, guestID, false, StatusConfirmed)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("guest cancels their own booking", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		updated, err := f.service.SetStatus(context.Background(), b.ID, guestID, false, StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, updated.Status)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.SetStatus(context.Background(), b.ID, otherID, false, StatusCancelled)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("host declines a pending booking", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		updated, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, StatusRejected, updated.Status)
	})

	t.Run("admin may decide on any booking", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		updated, err := f.service.SetStatus(context.Background(), b.ID, otherID, true, StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, StatusConfirmed, updated.Status)
	})

	t.Run("terminal states are immutable", func(t *testing.T) {
		terminalStates := []Status{StatusConfirmed, StatusCancelled, StatusRejected}

		for _, terminal := range terminalStates {
			f := newFixture(t, 1)
			b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

			_, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, terminal)
			require.NoError(t, err)

			for _, next := range []Status{StatusConfirmed, StatusCancelled, StatusRejected} {
				_, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, next)
				assert.ErrorIs(t, err, ErrInvalidTransition, "no transition out of %s", terminal)
			}
		}
	})

	t.Run("pending is not a valid target", func(t *testing.T) {
		f := newFixture(t, 1)
		b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

		_, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t, 1)
		_, err := f.service.SetStatus(context.Background(), "missing", hostID, false, StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// ==== Visibility ====

func TestGetByIDVisibility(t *testing.T) {
	f := newFixture(t, 1)
	b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

	tests := []struct {
		name    string
		actorID string
		isAdmin bool
		wantErr error
	}{
		{name: "guest sees own booking", actorID: guestID},
		{name: "host sees incoming booking", actorID: hostID},
		{name: "admin sees everything", actorID: otherID, isAdmin: true},
		{name: "stranger is denied", actorID: otherID, wantErr: ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.service.GetByID(context.Background(), b.ID, tt.actorID, tt.isAdmin)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, b.ID, got.ID)
		})
	}
}

func TestEvents(t *testing.T) {
	f := newFixture(t, 1)
	b := f.createBooking(t, date(2025, 6, 10), date(2025, 6, 12), 1)

	_, err := f.service.SetStatus(context.Background(), b.ID, hostID, false, StatusConfirmed)
	require.NoError(t, err)

	events, err := f.service.Events(context.Background(), b.ID, guestID, false)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Nil(t, events[0].FromStatus)
	assert.Equal(t, StatusPending, events[0].ToStatus)

	require.NotNil(t, events[1].FromStatus)
	assert.Equal(t, StatusPending, *events[1].FromStatus)
	assert.Equal(t, StatusConfirmed, events[1].ToStatus)
	assert.Equal(t, hostID, events[1].ActorID)

	_, err = f.service.Events(context.Background(), b.ID, otherID, false)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
