package review

import (
	"net/http"
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "review not found")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
	ErrCommentRequired  = apperror.New(http.StatusBadRequest, "comment is required")
	ErrAlreadyReviewed  = apperror.New(http.StatusConflict, "you have already reviewed this property")
	ErrNoCompletedStay  = apperror.New(http.StatusForbidden, "only guests with a confirmed booking can review")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Review is a guest's rating of a property, one per guest per property.
type Review struct {
	ID         string
	PropertyID string
	UserID     string
	UserName   string
	Rating     int
	Comment    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Filter defines parameters for listing reviews.
type Filter struct {
	PropertyID string
	UserID     string
	Page       int
	PageSize   int
}
