package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	properties := g.Group("/properties")
	properties.GET("/:id/reviews", h.ListForProperty)
	properties.GET("/:id/reviews/summary", h.Summary)

	// === Authenticated Routes ===
	authedProps := properties.Group("")
	authedProps.Use(authMiddleware)
	{
		authedProps.POST("/:id/reviews", h.Create)
	}

	reviews := g.Group("/reviews")
	reviews.Use(authMiddleware)
	{
		reviews.PATCH("/:id", h.Update)
		reviews.DELETE("/:id", h.Delete)
	}
}
