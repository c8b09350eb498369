package eventlog

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
	evts := r.Group("/events")
	evts.Use(middleware.ContextLogger(logger))
	{
		evts.GET("/employees/:employee_id", middleware.RateLimitByIP(10, 40), h.ListByEmployeeID)
	}
}
