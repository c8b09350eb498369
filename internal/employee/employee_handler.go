package employee

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
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	h.writeCommittedError(c, err, nil)
}

// writeCommittedError reports err; a non-nil data is the committed state that
// the error did not undo.
func (h *Handler) writeCommittedError(c *gin.Context, err error, data any) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.ErrorWithData(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details, data)
}

// writeMutation writes the outcome of a write. The service returns the
// committed employee together with an error when only the event publish failed.
func (h *Handler) writeMutation(c *gin.Context, status int, resp EmployeeResponse, err error) {
	if err == nil {
		response.Success(c, status, resp, nil)
		return
	}
	if resp.ID != "" {
		h.writeCommittedError(c, err, resp)
		return
	}
	h.writeServiceError(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	h.writeMutation(c, http.StatusCreated, resp, err)
}

func (h *Handler) GetAll(c *gin.Context) {
	page := pagination.FromQuery(c.Query("page"), c.Query("page_size"))

	resp, err := h.service.GetAll(c.Request.Context(), page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paged(c, http.StatusOK, resp)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	h.writeMutation(c, http.StatusOK, resp, err)
}

func (h *Handler) Patch(c *gin.Context) {
	var req PatchEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	h.writeMutation(c, http.StatusOK, resp, err)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetRevisions(c *gin.Context) {
	page := pagination.FromQuery(c.Query("page"), c.Query("page_size"))

	resp, err := h.service.GetRevisions(c.Request.Context(), c.Param("id"), page)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Paged(c, http.StatusOK, resp)
}

func (h *Handler) GetLatestRevision(c *gin.Context) {
	resp, err := h.service.GetLatestRevision(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
