package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Rooms are managed as part of a property's configuration.
	group := g.Group("/properties/:id/rooms")

	group.GET("", h.ListByProperty)
	group.PUT("", authMiddleware, h.Replace)
}
