package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, providerMiddleware gin.HandlerFunc) {
	services := g.Group("/services")
	{
		// Public browse endpoints
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
		services.GET("/:id/photo", h.GetServicePhoto)

		// Provider management
		services.POST("", authMiddleware, providerMiddleware, h.CreateService)
		services.PATCH("/:id", authMiddleware, providerMiddleware, h.UpdateService)
		services.DELETE("/:id", authMiddleware, providerMiddleware, h.DeleteService)
		services.POST("/:id/photo", authMiddleware, providerMiddleware, h.UploadServicePhoto)
	}

	staff := g.Group("/staff")
	{
		staff.GET("", h.ListStaff)

		staff.POST("", authMiddleware, providerMiddleware, h.CreateStaff)
		staff.PATCH("/:id", authMiddleware, providerMiddleware, h.UpdateStaff)
		staff.DELETE("/:id", authMiddleware, providerMiddleware, h.DeleteStaff)
	}
}
