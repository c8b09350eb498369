package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.ContextLogger(logger))
	{
		departments.GET("", middleware.RateLimitByIP(5, 20), h.GetAll)
		departments.POST("", middleware.RateLimitByIP(1, 5), h.Create)
		departments.GET("/:id", middleware.RateLimitByIP(5, 20), h.GetById)
		departments.PUT("/:id", middleware.RateLimitByIP(1, 5), h.Update)
		departments.DELETE("/:id", middleware.RateLimitByIP(0.5, 2), h.Delete)
		departments.GET("/:id/revisions", middleware.RateLimitByIP(5, 20), h.GetRevisions)
		departments.GET("/:id/revisions/latest", middleware.RateLimitByIP(5, 20), h.GetLatestRevision)
	}
}
