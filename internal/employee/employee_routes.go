package employee

import (
	"go-hris-audit/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("", middleware.RateLimitByIP(5, 20), h.GetAll)
		employees.POST("", middleware.RateLimitByIP(1, 5), h.Create)
		employees.GET("/:id", middleware.RateLimitByIP(5, 20), h.GetById)
		employees.PUT("/:id", middleware.RateLimitByIP(1, 5), h.Update)
		employees.PATCH("/:id", middleware.RateLimitByIP(1, 5), h.Patch)
		employees.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), h.Delete)
		employees.GET("/:id/revisions", middleware.RateLimitByIP(5, 20), h.GetRevisions)
		employees.GET("/:id/revisions/latest", middleware.RateLimitByIP(5, 20), h.GetLatestRevision)
	}
}
