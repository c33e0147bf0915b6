package property

import (
	"net/http"
	"time"

	"github.com/darlink/rental-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "property not found")
	ErrTitleRequired    = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "invalid property type")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid property status")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrOwnerNotApproved = apperror.New(http.StatusForbidden, "owner profile is not approved for listing")
)

// Type enumerates the supported listing categories.
type Type string

const (
	TypeHouse      Type = "House"
	TypeApartment  Type = "Apartment"
	TypeGuesthouse Type = "Guesthouse"
)

// Status is the moderation state of a listing.
// New listings start Pending and only become visible to guests once an
// admin publishes them.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusPublished Status = "Published"
	StatusRejected  Status = "Rejected"
)

// Property represents a host's listing.
type Property struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Title       string
	Description string
	Type        Type
	Status      Status
	Address     string
	City        string
	Governorate string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing properties.
type Filter struct {
	OwnerID     string
	Status      string
	Type        string
	City        string
	Governorate string
	Keyword     string // matched against title
	Page        int
	PageSize    int
}

// ValidTypes lists the accepted property types.
var ValidTypes = []Type{TypeHouse, TypeApartment, TypeGuesthouse}
