package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/darlink/rental-booking-backend/internal/auth"
	"github.com/darlink/rental-booking-backend/internal/pkg/request"
	"github.com/darlink/rental-booking-backend/internal/pkg/response"
	"github.com/darlink/rental-booking-backend/internal/review"
	"github.com/darlink/rental-booking-backend/internal/user"
)

type Handler struct {
	service     review.Service
	userService user.Service
}

func NewHandler(service review.Service, userService user.Service) *Handler {
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

// ListForProperty is the public review feed of a property.
func (h *Handler) ListForProperty(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req ListReviewsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query", "details": err.Error()})
		return
	}

	filter := review.Filter{
		PropertyID: propertyID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	reviews, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		items[i] = NewReviewResponse(rv)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

// Summary returns the aggregate rating shown on a property page.
func (h *Handler) Summary(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	summary, err := h.service.SummaryForProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		AverageRating: summary.AverageRating,
		ReviewCount:   summary.ReviewCount,
	})
}

func (h *Handler) Create(c *gin.Context) {
	propertyID := c.Param("id")
	if _, err := uuid.Parse(propertyID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body CreateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	rv, err := h.service.Create(c.Request.Context(), review.CreateRequest{
		PropertyID: propertyID,
		UserID:     auth.GetUserID(c),
		Rating:     body.Rating,
		Comment:    body.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReviewResponse(rv))
}

func (h *Handler) Update(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateReviewBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rv, err := h.service.Update(c.Request.Context(), params.ID, review.UpdateRequest{
		Rating:  body.Rating,
		Comment: body.Comment,
	}, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReviewResponse(rv))
}

func (h *Handler) Delete(c *gin.Context) {
	var params request.ByIDRequest
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	err := h.service.Delete(c.Request.Context(), params.ID, auth.GetUserID(c), h.checkIsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
