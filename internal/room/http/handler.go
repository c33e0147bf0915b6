package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/pkg/response"
	"github.com/darlink/rental-booking-backend/internal/room"
	"github.com/darlink/rental-booking-backend/internal/user"
)

type Handler struct {
	service     room.Service
	userService user.Service
}

func NewHandler(service room.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

func (h *Handler) checkIsAdmin(c *gin.Context) bool {
	u, err := h.userService.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return false
	}
	return u.Role == user.RoleAdmin
}

// ListByProperty returns the room configuration of a property, cheapest first.
func (h *Handler) ListByProperty(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rooms, err := h.service.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{"rooms": items})
}

// Replace swaps the property's room configuration with the submitted set.
func (h *Handler) Replace(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ReplaceRoomsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	inputs := make([]room.RoomInput, len(body.Rooms))
	for i, r := range body.Rooms {
		inputs[i] = room.RoomInput{
			Name:          r.Name,
			PricePerNight: r.PricePerNight,
			MaxGuests:     r.MaxGuests,
			Beds:          r.Beds,
			UnitsCount:    r.UnitsCount,
		}
	}

	rooms, err := h.service.ReplaceForProperty(
		c.Request.Context(), propertyID, inputs, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}

	c.JSON(http.StatusOK, gin.H{"rooms": items})
}
