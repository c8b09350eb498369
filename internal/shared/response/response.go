package response

import (
	"go-hris-audit/internal/shared/pagination"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		// ceil(total / limit)
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:    true,
		Data:  data,
		Meta:  meta,
		Error: nil,
	})
}

// Paged writes a page with its pagination meta.
func Paged[T any](c *gin.Context, status int, page pagination.Page[T]) {
	meta := NewPaginationMeta(page.Total, page.Page, page.PageSize)
	Success(c, status, page.Items, &meta)
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	ErrorWithData(c, status, errorCode, message, details, nil)
}

// ErrorWithData reports a failure that happened after data was already
// committed, so the client still gets the stored state.
func ErrorWithData(c *gin.Context, status int, errorCode string, message string, details interface{}, data interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok:   false,
		Data: data,
		Meta: nil,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}
