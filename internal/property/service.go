package property

import (
	"context"
	"errors"
	"strings"

	"github.com/darlink/rental-booking-backend/internal/user"
)

type CreateRequest struct {
	OwnerID     string
	Title       string
	Description string
	Type        string
	Address     string
	City        string
	Governorate string
}

type UpdateRequest struct {
	Title       *string
	Description *string
	Type        *string
	Address     *string
	City        *string
	Governorate *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter Filter) ([]*Property, int, error)
	Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Property, error)
	Delete(ctx context.Context, id string, actorID string, isAdmin bool) error
	// SetStatus is the admin moderation action (publish or reject a listing).
	SetStatus(ctx context.Context, id string, status Status) (*Property, error)
	// IsOwner reports whether userID owns the property.
	IsOwner(ctx context.Context, propertyID, userID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

func NewService(repo Repository, userService user.Service) Service {
	return &service{
		repo:        repo,
		userService: userService,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Property, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	if !isValidType(Type(req.Type)) {
		return nil, ErrInvalidType
	}

	// Only approved hosts may list. Admins provision listings through the
	// same path, so the check covers their own profile too.
	owner, err := s.userService.GetByID(ctx, req.OwnerID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	if owner.Role == user.RoleClient {
		return nil, ErrPermissionDenied
	}
	if !owner.IsApproved {
		return nil, ErrOwnerNotApproved
	}

	p := &Property{
		OwnerID:     req.OwnerID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Type:        Type(req.Type),
		Status:      StatusPending, // Listings await moderation
		Address:     req.Address,
		City:        req.City,
		Governorate: req.Governorate,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Property, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest, actorID string, isAdmin bool) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && p.OwnerID != actorID {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Type != nil {
		if !isValidType(Type(*req.Type)) {
			return nil, ErrInvalidType
		}
		p.Type = Type(*req.Type)
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.Governorate != nil {
		p.Governorate = *req.Governorate
	}

	// Any owner edit sends the listing back through moderation.
	if !isAdmin {
		p.Status = StatusPending
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id string, actorID string, isAdmin bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !isAdmin && p.OwnerID != actorID {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Property, error) {
	if status != StatusPublished && status != StatusRejected && status != StatusPending {
		return nil, ErrInvalidStatus
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Status = status
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) IsOwner(ctx context.Context, propertyID, userID string) (bool, error) {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return p.OwnerID == userID, nil
}

func isValidType(t Type) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}
