package http

import (
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/request"
	"github.com/darlink/rental-booking-backend/internal/review"
	userHttp "github.com/darlink/rental-booking-backend/internal/user/http"
)

type ListReviewsRequest struct {
	request.ListParams
}

type CreateReviewBody struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewBody struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty"`
}

type ReviewResponse struct {
	ID         string           `json:"id"`
	PropertyID string           `json:"property_id"`
	User       userHttp.UserTag `json:"user"`
	Rating     int              `json:"rating"`
	Comment    string           `json:"comment"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         rv.ID,
		PropertyID: rv.PropertyID,
		User:       userHttp.UserTag{ID: rv.UserID, Name: rv.UserName},
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
}

type SummaryResponse struct {
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}
