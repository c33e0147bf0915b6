package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// === Public Routes ===
	rooms := g.Group("/rooms")
	rooms.GET("/:id/blocked-dates", h.BlockedDates)
	rooms.GET("/:id/availability", h.CheckAvailability)

	group := g.Group("/bookings")

	// === Authenticated Routes ===
	authed := group.Group("")
	authed.Use(authMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.ListMine)
		authed.GET("/incoming", h.ListIncoming)
		authed.GET("/:id", h.Get)
		authed.PATCH("/:id/status", h.SetStatus)
		authed.GET("/:id/events", h.Events)
	}

	// === Admin Routes ===
	admin := group.Group("")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/all", h.ListAll)
	}
}
