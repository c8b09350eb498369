package eventlog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hris-audit/internal/eventlog"
	eventlogerrors "go-hris-audit/internal/eventlog/errors"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/shared/pagination"

	eventlogMock "go-hris-audit/internal/eventlog/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestEventlogHandler_ListByEmployeeID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := eventlogMock.NewMockService(ctrl)
		h := eventlog.NewHandler(svc)

		page := pagination.NewRequest(1, 5)
		svc.EXPECT().ListByEmployeeID(gomock.Any(), "e1", page).
			Return(pagination.NewPage([]eventlog.EmployeeEvent{{
				ID:             uuid.New(),
				EventType:      events.EventCreated,
				EmployeeID:     "e1",
				DepartmentName: "Engineering",
				CreatedAt:      time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
			}}, 1, page), nil)

		c, w := newTestContext("/events/employees/e1?page=1&page_size=5")
		c.Params = gin.Params{{Key: "employee_id", Value: "e1"}}
		h.ListByEmployeeID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"event_type":"CREATED"`)
		assert.Contains(t, w.Body.String(), `"department_name":"Engineering"`)
	})

	t.Run("empty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := eventlogMock.NewMockService(ctrl)
		h := eventlog.NewHandler(svc)

		svc.EXPECT().ListByEmployeeID(gomock.Any(), "nobody", gomock.Any()).
			Return(pagination.NewPage[eventlog.EmployeeEvent](nil, 0, pagination.NewRequest(1, 20)), nil)

		c, w := newTestContext("/events/employees/nobody")
		c.Params = gin.Params{{Key: "employee_id", Value: "nobody"}}
		h.ListByEmployeeID(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"data":[]`)
	})

	t.Run("store unavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := eventlogMock.NewMockService(ctrl)
		h := eventlog.NewHandler(svc)

		svc.EXPECT().ListByEmployeeID(gomock.Any(), "e1", gomock.Any()).
			Return(pagination.Page[eventlog.EmployeeEvent]{}, eventlogerrors.ErrStoreUnavailable)

		c, w := newTestContext("/events/employees/e1")
		c.Params = gin.Params{{Key: "employee_id", Value: "e1"}}
		h.ListByEmployeeID(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
