package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, providerMiddleware gin.HandlerFunc) {
	group := g.Group("/availability-slots")

	// Clients browse open slots without an account.
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("/bulk", authMiddleware, providerMiddleware, h.BulkGenerate)
	group.POST("/:id/retire", authMiddleware, providerMiddleware, h.Retire)
}
