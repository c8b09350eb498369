package department_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hris-audit/internal/department"
	departmenterrors "go-hris-audit/internal/department/errors"
	"go-hris-audit/internal/revision"
	revisionerrors "go-hris-audit/internal/revision/errors"
	"go-hris-audit/internal/shared/pagination"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn            func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn            func(ctx context.Context) ([]department.DepartmentResponse, error)
	GetByIDFn           func(ctx context.Context, id uint) (department.DepartmentResponse, error)
	UpdateFn            func(ctx context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	DeleteFn            func(ctx context.Context, id uint) error
	GetRevisionsFn      func(ctx context.Context, id uint, page pagination.Request) (pagination.Page[revision.RevisionResponse], error)
	GetLatestRevisionFn func(ctx context.Context, id uint) (revision.RevisionResponse, error)
}

func (f *fakeDepartmentService) Create(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, id uint) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, id uint) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeDepartmentService) GetRevisions(ctx context.Context, id uint, page pagination.Request) (pagination.Page[revision.RevisionResponse], error) {
	return f.GetRevisionsFn(ctx, id, page)
}
func (f *fakeDepartmentService) GetLatestRevision(ctx context.Context, id uint) (revision.RevisionResponse, error) {
	return f.GetLatestRevisionFn(ctx, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
		c.Request = httptest.NewRequest(method, target, reader)
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	return c, w
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{ID: 1, Name: req.Name}, nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"name":"HR"`)
	})

	t.Run("validation error", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodPost, "/departments", `{}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("unexpected error", func(t *testing.T) {
		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, errors.New("failed")
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/departments", `{"name":"HR"}`)

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "failed")
	})
}

func TestDepartmentHandler_GetAll(t *testing.T) {
	svc := &fakeDepartmentService{
		GetAllFn: func(ctx context.Context) ([]department.DepartmentResponse, error) {
			return []department.DepartmentResponse{{ID: 1, Name: "HR"}}, nil
		},
	}
	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/departments", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "HR")
}

func TestDepartmentHandler_GetById(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, id uint) (department.DepartmentResponse, error) {
				assert.Equal(t, uint(12), id)
				return department.DepartmentResponse{ID: id, Name: "HR"}, nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/12", "")
		c.Params = gin.Params{{Key: "id", Value: "12"}}

		h.GetById(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		h := department.NewHandler(&fakeDepartmentService{})
		c, w := newTestContext(http.MethodGet, "/departments/abc", "")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.GetById(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetByIDFn: func(ctx context.Context, id uint) (department.DepartmentResponse, error) {
				return department.DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/12", "")
		c.Params = gin.Params{{Key: "id", Value: "12"}}

		h.GetById(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDepartmentHandler_Update(t *testing.T) {
	svc := &fakeDepartmentService{
		UpdateFn: func(ctx context.Context, id uint, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
			return department.DepartmentResponse{ID: id, Name: req.Name}, nil
		},
	}
	h := department.NewHandler(svc)
	c, w := newTestContext(http.MethodPut, "/departments/3", `{"name":"IT"}`)
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"IT"`)
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id uint) error { return nil },
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/departments/3", "")
		c.Params = gin.Params{{Key: "id", Value: "3"}}

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("in use", func(t *testing.T) {
		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, id uint) error { return departmenterrors.ErrDepartmentInUse },
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodDelete, "/departments/3", "")
		c.Params = gin.Params{{Key: "id", Value: "3"}}

		h.Delete(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestDepartmentHandler_Revisions(t *testing.T) {
	t.Run("paged list", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetRevisionsFn: func(ctx context.Context, id uint, page pagination.Request) (pagination.Page[revision.RevisionResponse], error) {
				assert.Equal(t, 2, page.Page)
				assert.Equal(t, 5, page.PageSize)
				return pagination.NewPage([]revision.RevisionResponse{{Rev: 6, Kind: "UPDATE"}}, 6, page), nil
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/3/revisions?page=2&page_size=5", "")
		c.Params = gin.Params{{Key: "id", Value: "3"}}

		h.GetRevisions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"totalPages":2`)
	})

	t.Run("latest missing", func(t *testing.T) {
		svc := &fakeDepartmentService{
			GetLatestRevisionFn: func(ctx context.Context, id uint) (revision.RevisionResponse, error) {
				return revision.RevisionResponse{}, revisionerrors.ErrRevisionNotFound
			},
		}
		h := department.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/departments/3/revisions/latest", "")
		c.Params = gin.Params{{Key: "id", Value: "3"}}

		h.GetLatestRevision(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
