package http

import (
	"github.com/darlink/rental-booking-backend/internal/room"
)

type RoomInputBody struct {
	Name          string  `json:"name" binding:"required,max=100"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0"`
	MaxGuests     int     `json:"max_guests" binding:"required,min=1"`
	Beds          int     `json:"beds" binding:"required,min=1"`
	UnitsCount    int     `json:"units_count" binding:"required,min=1"`
}

// ReplaceRoomsRequest replaces the whole room set of a property.
type ReplaceRoomsRequest struct {
	Rooms []RoomInputBody `json:"rooms" binding:"required,min=1,dive"`
}

// RoomTag is the minimal room reference embedded in other responses.
type RoomTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomResponse struct {
	ID            string  `json:"id"`
	PropertyID    string  `json:"property_id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	MaxGuests     int     `json:"max_guests"`
	Beds          int     `json:"beds"`
	UnitsCount    int     `json:"units_count"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:            r.ID,
		PropertyID:    r.PropertyID,
		Name:          r.Name,
		PricePerNight: r.PricePerNight,
		MaxGuests:     r.MaxGuests,
		Beds:          r.Beds,
		UnitsCount:    r.UnitsCount,
	}
}
