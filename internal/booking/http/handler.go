package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/booking"
	"github.com/darlink/rental-booking-backend/internal/pkg/response"
	"github.com/darlink/rental-booking-backend/internal/user"
)

type Handler struct {
	service     booking.Service
	userService user.Service
}

func NewHandler(service booking.Service, userService user.Service) *Handler {
	return &Handler{
		service:     service,
		userService: userService,
	}
}

// checkIsAdmin helper checks if the current user is an admin.
func (h *Handler) checkIsAdmin(c *gin.Context) bool {
	u, err := h.userService.GetByID(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		return false
	}
	return u.Role == user.RoleAdmin
}

// BlockedDates is the public calendar endpoint: every future night on which
// the room has no unit left. Date pickers grey these out.
func (h *Handler) BlockedDates(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	nights, err := h.service.BlockedDates(c.Request.Context(), roomID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	dates := make([]string, len(nights))
	for i, n := range nights {
		dates[i] = n.Format(dateLayout)
	}

	c.JSON(http.StatusOK, BlockedDatesResponse{RoomID: roomID, BlockedDates: dates})
}

// CheckAvailability probes whether a date range still fits. The answer is
// advisory; creating the booking re-checks inside a transaction.
func (h *Handler) CheckAvailability(c *gin.Context) {
	roomID := c.Param("id")
	if _, err := uuid.Parse(roomID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req CheckAvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	start, _ := time.Parse(dateLayout, req.StartDate)
	end, _ := time.Parse(dateLayout, req.EndDate)
	units := req.Units
	if units == 0 {
		units = 1
	}

	result, err := h.service.CheckCapacity(c.Request.Context(), roomID, start, end, units)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{
		Available:      result.Available,
		UnitsRemaining: result.UnitsRemaining,
	})
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, _ := time.Parse(dateLayout, body.StartDate)
	end, _ := time.Parse(dateLayout, body.EndDate)
	units := body.UnitsBooked
	if units == 0 {
		units = 1
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		UserID:      auth.GetUserID(c),
		RoomID:      body.RoomID,
		StartDate:   start,
		EndDate:     end,
		UnitsBooked: units,
		TripPurpose: body.TripPurpose,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// ListMine returns the bookings the authenticated guest has requested.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := h.buildFilter(req)
	filter.UserID = auth.GetUserID(c)
	filter.OwnerID = ""

	h.list(c, filter)
}

// ListIncoming returns bookings on properties the authenticated host owns,
// the host's approval inbox.
func (h *Handler) ListIncoming(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := h.buildFilter(req)
	filter.OwnerID = auth.GetUserID(c)
	filter.UserID = ""

	h.list(c, filter)
}

// ListAll is the admin view across all guests and hosts.
func (h *Handler) ListAll(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := h.buildFilter(req)
	filter.UserID = req.UserID

	h.list(c, filter)
}

func (h *Handler) buildFilter(req ListBookingsRequest) booking.Filter {
	filter := booking.Filter{
		PropertyID: req.PropertyID,
		RoomID:     req.RoomID,
		Status:     req.Status,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}
	if req.DateFrom != "" {
		from, _ := time.Parse(dateLayout, req.DateFrom)
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, _ := time.Parse(dateLayout, req.DateTo)
		filter.DateTo = &to
	}
	return filter
}

func (h *Handler) list(c *gin.Context, filter booking.Filter) {
	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// SetStatus performs the lifecycle transition: host confirms or rejects,
// guest cancels.
func (h *Handler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetStatusBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.SetStatus(c.Request.Context(), id, auth.GetUserID(c), h.checkIsAdmin(c), booking.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Events returns the booking's status history, oldest first.
func (h *Handler) Events(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	events, err := h.service.Events(c.Request.Context(), id, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]EventResponse, len(events))
	for i, e := range events {
		items[i] = NewEventResponse(e)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
