package http

import (
	"time"

	"github.com/darlink/rental-booking-backend/internal/booking"
	propHttp "github.com/darlink/rental-booking-backend/internal/property/http"
	roomHttp "github.com/darlink/rental-booking-backend/internal/room/http"
	userHttp "github.com/darlink/rental-booking-backend/internal/user/http"
)

const dateLayout = "2006-01-02"

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	PropertyID string `form:"property_id" binding:"omitempty,uuid"`
	RoomID     string `form:"room_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled rejected"`
	UserID     string `form:"user_id" binding:"omitempty,uuid"`
	DateFrom   string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string `form:"date_to" binding:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// CheckAvailabilityRequest defines query parameters for the capacity probe.
type CheckAvailabilityRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
	Units     int    `form:"units,default=1" binding:"omitempty,min=1"`
}

type CreateBookingBody struct {
	RoomID      string `json:"room_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	UnitsBooked int    `json:"units_booked,default=1" binding:"omitempty,min=1"`
	TripPurpose string `json:"trip_purpose" binding:"required,oneof=Family Friends Company Romantic"`
}

type SetStatusBody struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled rejected"`
}

type BookingResponse struct {
	ID          string               `json:"id"`
	Room        roomHttp.RoomTag     `json:"room"`
	Property    propHttp.PropertyTag `json:"property"`
	User        userHttp.UserTag     `json:"user"`
	StartDate   string               `json:"start_date"`
	EndDate     string               `json:"end_date"`
	UnitsBooked int                  `json:"units_booked"`
	TotalPrice  float64              `json:"total_price"`
	TripPurpose string               `json:"trip_purpose"`
	Status      string               `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		Room:        roomHttp.RoomTag{ID: b.RoomID, Name: b.RoomName},
		Property:    propHttp.PropertyTag{ID: b.PropertyID, Title: b.PropertyTitle},
		User:        userHttp.UserTag{ID: b.UserID, Name: b.UserName},
		StartDate:   b.StartDate.Format(dateLayout),
		EndDate:     b.EndDate.Format(dateLayout),
		UnitsBooked: b.UnitsBooked,
		TotalPrice:  b.TotalPrice,
		TripPurpose: b.TripPurpose,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

type BlockedDatesResponse struct {
	RoomID       string   `json:"room_id"`
	BlockedDates []string `json:"blocked_dates"`
}

type AvailabilityResponse struct {
	Available      bool `json:"available"`
	UnitsRemaining int  `json:"units_remaining"`
}

type EventResponse struct {
	ID         string    `json:"id"`
	FromStatus *string   `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ActorID    string    `json:"actor_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEventResponse(e *booking.Event) EventResponse {
	resp := EventResponse{
		ID:        e.ID,
		ToStatus:  string(e.ToStatus),
		ActorID:   e.ActorID,
		CreatedAt: e.CreatedAt,
	}
	if e.FromStatus != nil {
		from := string(*e.FromStatus)
		resp.FromStatus = &from
	}
	return resp
}
