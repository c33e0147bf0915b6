package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/pkg/response"
	"github.com/darlink/rental-booking-backend/internal/property"
	"github.com/darlink/rental-booking-backend/internal/user"
)

type Handler struct {
	service     property.Service
	userService user.Service
}

func NewHandler(service property.Service, userService user.Service) *Handler {
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

// List is the public discovery endpoint: only published listings are visible.
func (h *Handler) List(c *gin.Context) {
	var req ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := property.Filter{
		Status:      string(property.StatusPublished),
		Type:        req.Type,
		City:        req.City,
		Governorate: req.Governorate,
		Keyword:     req.Keyword,
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	h.list(c, filter)
}

// ListMine returns the authenticated host's own listings in any status.
func (h *Handler) ListMine(c *gin.Context) {
	var req ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := property.Filter{
		OwnerID:  auth.GetUserID(c),
		Type:     req.Type,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	h.list(c, filter)
}

// ListAll is the admin moderation queue: all listings in any status.
func (h *Handler) ListAll(c *gin.Context) {
	var req ListPropertiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := property.Filter{
		Status:   c.Query("status"),
		Type:     req.Type,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	h.list(c, filter)
}

func (h *Handler) list(c *gin.Context, filter property.Filter) {
	properties, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		items[i] = NewPropertyResponse(p)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Unpublished listings are only visible to their owner and admins.
	if p.Status != property.StatusPublished {
		userID := auth.GetUserID(c)
		if userID != p.OwnerID && !h.checkIsAdmin(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := property.CreateRequest{
		OwnerID:     auth.GetUserID(c),
		Title:       body.Title,
		Description: body.Description,
		Type:        body.Type,
		Address:     body.Address,
		City:        body.City,
		Governorate: body.Governorate,
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPropertyResponse(p))
}

func (h *Handler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdatePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := property.UpdateRequest{
		Title:       body.Title,
		Description: body.Description,
		Type:        body.Type,
		Address:     body.Address,
		City:        body.City,
		Governorate: body.Governorate,
	}

	p, err := h.service.Update(c.Request.Context(), id, req, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}

func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.Delete(c.Request.Context(), id, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Moderate handles the admin publish/reject decision.
func (h *Handler) Moderate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body ModeratePropertyRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.service.SetStatus(c.Request.Context(), id, property.Status(body.Status))
	if err != nil {
		if errors.Is(err, property.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "property not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPropertyResponse(p))
}
