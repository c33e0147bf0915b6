package http

import (
	"time"

	"github.com/darlink/rental-booking-backend/internal/property"
	userHttp "github.com/darlink/rental-booking-backend/internal/user/http"
)

// ListPropertiesRequest defines query parameters for the public listing search.
type ListPropertiesRequest struct {
	Type        string `form:"type" binding:"omitempty,oneof=House Apartment Guesthouse"`
	City        string `form:"city"`
	Governorate string `form:"governorate"`
	Keyword     string `form:"keyword" binding:"omitempty,max=100"`
	Page        int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type CreatePropertyRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required,oneof=House Apartment Guesthouse"`
	Address     string `json:"address"`
	City        string `json:"city" binding:"required"`
	Governorate string `json:"governorate" binding:"required"`
}

type UpdatePropertyRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,oneof=House Apartment Guesthouse"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Governorate *string `json:"governorate"`
}

// ModeratePropertyRequest is the admin decision payload for a listing.
type ModeratePropertyRequest struct {
	Status string `json:"status" binding:"required,oneof=Published Rejected Pending"`
}

// PropertyTag is the minimal property reference embedded in other responses.
type PropertyTag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type PropertyResponse struct {
	ID          string           `json:"id"`
	Owner       userHttp.UserTag `json:"owner"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Status      string           `json:"status"`
	Address     string           `json:"address"`
	City        string           `json:"city"`
	Governorate string           `json:"governorate"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func NewPropertyResponse(p *property.Property) PropertyResponse {
	return PropertyResponse{
		ID:          p.ID,
		Owner:       userHttp.UserTag{ID: p.OwnerID, Name: p.OwnerName},
		Title:       p.Title,
		Description: p.Description,
		Type:        string(p.Type),
		Status:      string(p.Status),
		Address:     p.Address,
		City:        p.City,
		Governorate: p.Governorate,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
