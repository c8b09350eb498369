package department

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	departmenterrors "go-hris-audit/internal/department/errors"
	"go-hris-audit/internal/revision"
	"go-hris-audit/internal/shared/contextutil"
	"go-hris-audit/internal/shared/pagination"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const AllDepartmentsKey = "departments:all"

const cacheTTL = time.Hour

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id uint) (DepartmentResponse, error)
	Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id uint) error
	GetRevisions(ctx context.Context, id uint, page pagination.Request) (pagination.Page[revision.RevisionResponse], error)
	GetLatestRevision(ctx context.Context, id uint) (revision.RevisionResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	revisions revision.Recorder
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, revisions revision.Recorder, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		revisions: revisions,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	name := strings.TrimSpace(req.Name)
	s.logger.Debug("create department requested", zap.String("request_id", rid), zap.String("name", name))

	if name == "" {
		return DepartmentResponse{}, departmenterrors.ErrMissingDepartmentName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsByName(ctx, name, 0)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	if exists {
		s.logger.Warn("create department name taken", zap.String("name", name))
		return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
	}

	dept := &Department{Name: name}
	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityDepartment, idString(dept.ID), revision.KindInsert, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.String("request_id", rid), zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("create department success", zap.String("request_id", rid), zap.Uint("department_id", dept.ID))

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, AllDepartmentsKey).Result(); err == nil {
			var resp []DepartmentResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(AllDepartmentsKey, func() (interface{}, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			s.logger.Error("get all departments failed", zap.Error(err))
			return nil, mapRepositoryError(err)
		}

		resp := mapToListResponse(depts)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, AllDepartmentsKey, jsonData, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache departments failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]DepartmentResponse), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (DepartmentResponse, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(ctx context.Context, id uint, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update department requested", zap.String("request_id", rid), zap.Uint("department_id", id))

	if strings.TrimSpace(req.Name) == "" {
		return DepartmentResponse{}, departmenterrors.ErrMissingDepartmentName
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if !dept.Rename(req.Name) {
		s.logger.Debug("update department no change", zap.Uint("department_id", id))
		return mapToResponse(*dept), nil
	}

	exists, err := qtx.ExistsByName(ctx, dept.Name, dept.ID)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	if exists {
		return DepartmentResponse{}, departmenterrors.ErrDepartmentAlreadyExists
	}

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityDepartment, idString(dept.ID), revision.KindUpdate, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("update department success", zap.Uint("department_id", id))

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	s.logger.Debug("delete department requested", zap.Uint("department_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	employees, err := qtx.CountEmployees(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if employees > 0 {
		s.logger.Warn("delete department still referenced",
			zap.Uint("department_id", id),
			zap.Int64("employees", employees),
		)
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityDepartment, idString(id), revision.KindDelete, dept); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info("delete department success", zap.Uint("department_id", id))
	return nil
}

func (s *service) GetRevisions(
	ctx context.Context,
	id uint,
	page pagination.Request,
) (pagination.Page[revision.RevisionResponse], error) {
	revs, err := s.revisions.FindRevisions(ctx, revision.EntityDepartment, idString(id), page)
	if err != nil {
		return pagination.Page[revision.RevisionResponse]{}, err
	}
	return pagination.Map(revs, revision.MapToResponse), nil
}

func (s *service) GetLatestRevision(ctx context.Context, id uint) (revision.RevisionResponse, error) {
	rev, err := s.revisions.FindLatestRevision(ctx, revision.EntityDepartment, idString(id))
	if err != nil {
		return revision.RevisionResponse{}, err
	}
	return revision.MapToResponse(rev), nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, AllDepartmentsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate department cache",
			zap.Error(err),
			zap.String("key", AllDepartmentsKey),
		)
	}
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func mapToResponse(dept Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        dept.ID,
		Name:      dept.Name,
		CreatedAt: dept.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: dept.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
