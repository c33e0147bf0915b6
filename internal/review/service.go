package review

import (
	"context"
	"strings"

	"github.com/darlink/rental-booking-backend/internal/booking"
	"github.com/darlink/rental-booking-backend/internal/property"
)

type CreateRequest struct {
	PropertyID string
	UserID     string
	Rating     int
	Comment    string
}

type UpdateRequest struct {
	Rating  *int
	Comment *string
}

// Summary is the aggregate rating shown on a property page.
type Summary struct {
	AverageRating float64
	ReviewCount   int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Review, error)
	Delete(ctx context.Context, id string, actorID string, isAdmin bool) error
	SummaryForProperty(ctx context.Context, propertyID string) (*Summary, error)
}

type service struct {
	repo           Repository
	propService    property.Service
	bookingService booking.Service
}

func NewService(repo Repository, propService property.Service, bookingService booking.Service) Service {
	return &service{
		repo:           repo,
		propService:    propService,
		bookingService: bookingService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, ErrCommentRequired
	}

	if _, err := s.propService.GetByID(ctx, req.PropertyID); err != nil {
		return nil, err
	}

	// Reviews are tied to a real stay: the guest must have at least one
	// confirmed booking on the property.
	_, total, err := s.bookingService.List(ctx, booking.Filter{
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		Status:     string(booking.StatusConfirmed),
		Page:       1,
		PageSize:   1,
	})
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNoCompletedStay
	}

	rv := &Review{
		PropertyID: req.PropertyID,
		UserID:     req.UserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Review, error) {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rv.UserID != actorID && !isAdmin {
		return nil, ErrPermissionDenied
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, ErrInvalidRating
		}
		rv.Rating = *req.Rating
	}

	if req.Comment != nil {
		if strings.TrimSpace(*req.Comment) == "" {
			return nil, ErrCommentRequired
		}
		rv.Comment = *req.Comment
	}

	if err := s.repo.Update(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isAdmin bool) error {
	rv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if rv.UserID != actorID && !isAdmin {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SummaryForProperty(ctx context.Context, propertyID string) (*Summary, error) {
	avg, count, err := s.repo.AverageForProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return &Summary{AverageRating: avg, ReviewCount: count}, nil
}
