package room

import (
	"context"
	"strings"

	"github.com/darlink/rental-booking-backend/internal/property"
)

// RoomInput carries one room definition in a replace request.
type RoomInput struct {
	Name          string
	PricePerNight float64
	MaxGuests     int
	Beds          int
	UnitsCount    int
}

type Service interface {
	GetByID(ctx context.Context, id string) (*Room, error)
	ListByProperty(ctx context.Context, propertyID string) ([]*Room, error)
	// ReplaceForProperty swaps the property's whole room configuration in one
	// transaction: existing rooms are deleted and the new set inserted. This
	// mirrors how the listing editor saves rooms (full replace, no diffing).
	ReplaceForProperty(ctx context.Context, propertyID string, rooms []RoomInput, actorID string, isAdmin bool) ([]*Room, error)
}

type service struct {
	repo        Repository
	propService property.Service
}

func NewService(repo Repository, propService property.Service) Service {
	return &service{
		repo:        repo,
		propService: propService,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByProperty(ctx context.Context, propertyID string) ([]*Room, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *service) ReplaceForProperty(ctx context.Context, propertyID string, rooms []RoomInput, actorID string, isAdmin bool) ([]*Room, error) {
	if !isAdmin {
		isOwner, err := s.propService.IsOwner(ctx, propertyID, actorID)
		if err != nil {
			return nil, err
		}
		if !isOwner {
			return nil, ErrPermissionDenied
		}
	} else {
		// Still verify the property exists.
		if _, err := s.propService.GetByID(ctx, propertyID); err != nil {
			return nil, err
		}
	}

	newRooms := make([]*Room, 0, len(rooms))
	for _, in := range rooms {
		if err := validateInput(in); err != nil {
			return nil, err
		}
		newRooms = append(newRooms, &Room{
			PropertyID:    propertyID,
			Name:          strings.TrimSpace(in.Name),
			PricePerNight: in.PricePerNight,
			MaxGuests:     in.MaxGuests,
			Beds:          in.Beds,
			UnitsCount:    in.UnitsCount,
		})
	}

	if err := s.repo.ReplaceForProperty(ctx, propertyID, newRooms); err != nil {
		return nil, err
	}
	return newRooms, nil
}

func validateInput(in RoomInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrNameRequired
	}
	if in.PricePerNight <= 0 {
		return ErrInvalidPrice
	}
	if in.MaxGuests < 1 {
		return ErrInvalidGuests
	}
	if in.Beds < 1 {
		return ErrInvalidBeds
	}
	if in.UnitsCount < 1 {
		return ErrInvalidUnits
	}
	return nil
}
