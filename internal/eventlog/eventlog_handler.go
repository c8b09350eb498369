package eventlog

import (
	"net/http"

	"go-hris-audit/internal/shared/apperror"
	"go-hris-audit/internal/shared/pagination"
	"go-hris-audit/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("eventlog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("eventlog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) ListByEmployeeID(c *gin.Context) {
	page := pagination.FromQuery(c.Query("page"), c.Query("page_size"))

	evts, err := h.service.ListByEmployeeID(c.Request.Context(), c.Param("employee_id"), page)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("list employee events failed",
			zap.String("employee_id", c.Param("employee_id")),
			zap.Int("status", httpErr.Status),
			zap.Error(err),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Paged(c, http.StatusOK, pagination.Map(evts, MapToResponse))
}
