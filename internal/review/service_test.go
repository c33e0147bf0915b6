package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darlink/rental-booking-backend/internal/booking"
	"github.com/darlink/rental-booking-backend/internal/property"
)

type fakeRepo struct {
	byID     map[string]*Review
	reviewed map[string]bool // property_id + user_id
	nextID   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:     make(map[string]*Review),
		reviewed: make(map[string]bool),
	}
}

func pairKey(propertyID, userID string) string {
	return propertyID + ":" + userID
}

func (r *fakeRepo) Create(_ context.Context, rv *Review) error {
	if r.reviewed[pairKey(rv.PropertyID, rv.UserID)] {
		return ErrAlreadyReviewed
	}
	r.nextID++
	rv.ID = fmt.Sprintf("review-%d", r.nextID)
	rv.CreatedAt = time.Now()
	rv.UpdatedAt = rv.CreatedAt
	r.byID[rv.ID] = rv
	r.reviewed[pairKey(rv.PropertyID, rv.UserID)] = true
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *rv
	return &copied, nil
}

func (r *fakeRepo) List(_ context.Context, filter Filter) ([]*Review, int, error) {
	var result []*Review
	for _, rv := range r.byID {
		if filter.PropertyID != "" && rv.PropertyID != filter.PropertyID {
			continue
		}
		result = append(result, rv)
	}
	return result, len(result), nil
}

func (r *fakeRepo) Update(_ context.Context, rv *Review) error {
	if _, ok := r.byID[rv.ID]; !ok {
		return ErrNotFound
	}
	copied := *rv
	r.byID[rv.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	rv, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.reviewed, pairKey(rv.PropertyID, rv.UserID))
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) AverageForProperty(_ context.Context, propertyID string) (float64, int, error) {
	sum, count := 0, 0
	for _, rv := range r.byID {
		if rv.PropertyID == propertyID {
			sum += rv.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakePropService struct {
	exists map[string]bool
}

func (s *fakePropService) GetByID(_ context.Context, id string) (*property.Property, error) {
	if !s.exists[id] {
		return nil, property.ErrNotFound
	}
	return &property.Property{ID: id}, nil
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

// fakeBookingService only answers List; the review flow uses it to check
// for a confirmed stay.
type fakeBookingService struct {
	confirmedStays map[string]bool // property_id + user_id
}

func (s *fakeBookingService) List(_ context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	if filter.Status == string(booking.StatusConfirmed) && s.confirmedStays[pairKey(filter.PropertyID, filter.UserID)] {
		return []*booking.Booking{{}}, 1, nil
	}
	return nil, 0, nil
}

func (s *fakeBookingService) BlockedDates(_ context.Context, _ string, _ time.Time) ([]time.Time, error) {
	return nil, nil
}

func (s *fakeBookingService) CheckCapacity(_ context.Context, _ string, _, _ time.Time, _ int) (*booking.CapacityResult, error) {
	return nil, nil
}

func (s *fakeBookingService) Create(_ context.Context, _ booking.CreateRequest) (*booking.Booking, error) {
	return nil, nil
}

func (s *fakeBookingService) GetByID(_ context.Context, _ string, _ string, _ bool) (*booking.Booking, error) {
	return nil, nil
}

func (s *fakeBookingService) SetStatus(_ context.Context, _ string, _ string, _ bool, _ booking.Status) (*booking.Booking, error) {
	return nil, nil
}

func (s *fakeBookingService) Events(_ context.Context, _ string, _ string, _ bool) ([]*booking.Event, error) {
	return nil, nil
}

const (
	propertyID = "prop-1"
	guestID    = "guest-1"
	otherID    = "guest-2"
)

func newTestService() Service {
	props := &fakePropService{exists: map[string]bool{propertyID: true}}
	bookings := &fakeBookingService{confirmedStays: map[string]bool{
		pairKey(propertyID, guestID): true,
	}}
	return NewService(newFakeRepo(), props, bookings)
}

func validCreate() CreateRequest {
	return CreateRequest{
		PropertyID: propertyID,
		UserID:     guestID,
		Rating:     4,
		Comment:    "Lovely place, steps from the beach.",
	}
}

func TestCreateReview(t *testing.T) {
	t.Run("guest with a confirmed stay reviews once", func(t *testing.T) {
		svc := newTestService()

		rv, err := svc.Create(context.Background(), validCreate())
		require.NoError(t, err)
		assert.NotEmpty(t, rv.ID)

		_, err = svc.Create(context.Background(), validCreate())
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("guest without a stay is rejected", func(t *testing.T) {
		svc := newTestService()

		req := validCreate()
		req.UserID = otherID
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrNoCompletedStay)
	})

	t.Run("rating bounds", func(t *testing.T) {
		svc := newTestService()

		for _, rating := range []int{0, 6, -1} {
			req := validCreate()
			req.Rating = rating
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidRating)
		}
	})

	t.Run("blank comment", func(t *testing.T) {
		svc := newTestService()

		req := validCreate()
		req.Comment = "   "
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrCommentRequired)
	})

	t.Run("unknown property", func(t *testing.T) {
		svc := newTestService()

		req := validCreate()
		req.PropertyID = "missing"
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, property.ErrNotFound)
	})
}

func TestUpdateAndDeleteReview(t *testing.T) {
	svc := newTestService()

	rv, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	t.Run("author updates", func(t *testing.T) {
		rating := 5
		updated, err := svc.Update(context.Background(), rv.ID, UpdateRequest{Rating: &rating}, guestID, false)
		require.NoError(t, err)
		assert.Equal(t, 5, updated.Rating)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		rating := 1
		_, err := svc.Update(context.Background(), rv.ID, UpdateRequest{Rating: &rating}, otherID, false)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("stranger cannot delete, admin can", func(t *testing.T) {
		err := svc.Delete(context.Background(), rv.ID, otherID, false)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		err = svc.Delete(context.Background(), rv.ID, otherID, true)
		assert.NoError(t, err)
	})
}

func TestSummaryForProperty(t *testing.T) {
	props := &fakePropService{exists: map[string]bool{propertyID: true}}
	bookings := &fakeBookingService{confirmedStays: map[string]bool{
		pairKey(propertyID, guestID): true,
		pairKey(propertyID, otherID): true,
	}}
	svc := NewService(newFakeRepo(), props, bookings)

	_, err := svc.Create(context.Background(), validCreate())
	require.NoError(t, err)

	second := validCreate()
	second.UserID = otherID
	second.Rating = 2
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	summary, err := svc.SummaryForProperty(context.Background(), propertyID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)
	assert.Equal(t, 2, summary.ReviewCount)
}
