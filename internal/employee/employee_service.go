package employee

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-hris-audit/internal/department"
	employeeerrors "go-hris-audit/internal/employee/errors"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/revision"
	"go-hris-audit/internal/shared/contextutil"
	"go-hris-audit/internal/shared/pagination"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, page pagination.Request) (pagination.Page[EmployeeResponse], error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Patch(ctx context.Context, id string, req PatchEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	GetRevisions(ctx context.Context, id string, page pagination.Request) (pagination.Page[revision.RevisionResponse], error)
	GetLatestRevision(ctx context.Context, id string) (revision.RevisionResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	departments department.Repository
	revisions   revision.Recorder
	publisher   EventPublisher
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	departments department.Repository,
	revisions revision.Recorder,
	publisher EventPublisher,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		db:          db,
		repo:        repo,
		departments: departments,
		revisions:   revisions,
		publisher:   publisher,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_name", req.DepartmentName),
	)

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl := &Employee{ID: uuid.New()}
	if _, err := ApplyChanges(ctx, empl, ChangeSet{
		Email:          &req.Email,
		FirstName:      &req.FirstName,
		LastName:       &req.LastName,
		Birthday:       birthday,
		DepartmentName: &req.DepartmentName,
	}, s.departments.WithTx(tx)); err != nil {
		s.logger.Warn("create employee rejected", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if empl.Email == "" {
		return EmployeeResponse{}, employeeerrors.ErrMissingEmail
	}
	if empl.Department == nil {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	if err := s.ensureEmailAvailable(ctx, qtx, empl.Email, uuid.Nil); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityEmployee, empl.ID.String(), revision.KindInsert, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	resp := mapToResponse(*empl)
	if err := s.publish(ctx, events.EventCreated, *empl); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, page pagination.Request) (pagination.Page[EmployeeResponse], error) {
	s.logger.Debug("get all employees requested", zap.Int("page", page.Page), zap.Int("page_size", page.PageSize))

	empls, total, err := s.repo.FindAll(ctx, page)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return pagination.Page[EmployeeResponse]{}, mapRepositoryError(err)
	}

	return pagination.Map(pagination.NewPage(empls, total, page), mapToResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	employeeID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return EmployeeResponse{}, err
	}

	return s.mutate(ctx, id, ChangeSet{
		Email:          &req.Email,
		FirstName:      &req.FirstName,
		LastName:       &req.LastName,
		Birthday:       birthday,
		DepartmentName: &req.DepartmentName,
	})
}

func (s *service) Patch(ctx context.Context, id string, req PatchEmployeeRequest) (EmployeeResponse, error) {
	var birthday *time.Time
	if req.Birthday != nil {
		var err error
		if birthday, err = parseBirthday(*req.Birthday); err != nil {
			return EmployeeResponse{}, err
		}
	}

	return s.mutate(ctx, id, ChangeSet{
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Birthday:       birthday,
		DepartmentName: req.DepartmentName,
	})
}

// mutate is shared by full and partial updates. Nothing is written, recorded
// or published unless the diff reports a change.
func (s *service) mutate(ctx context.Context, id string, changes ChangeSet) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	employeeID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	s.logger.Debug("update employee requested", zap.String("request_id", rid), zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	previousEmail := empl.Email

	changed, err := ApplyChanges(ctx, empl, changes, s.departments.WithTx(tx))
	if err != nil {
		s.logger.Warn("update employee rejected", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}
	if !changed {
		s.logger.Debug("update employee no change", zap.String("employee_id", id))
		return mapToResponse(*empl), nil
	}

	if empl.Email != previousEmail {
		if err := s.ensureEmailAvailable(ctx, qtx, empl.Email, empl.ID); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityEmployee, empl.ID.String(), revision.KindUpdate, empl); err != nil {
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("request_id", rid), zap.String("employee_id", id))

	resp := mapToResponse(*empl)
	if err := s.publish(ctx, events.EventUpdated, *empl); err != nil {
		return resp, err
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	employeeID, err := parseID(id)
	if err != nil {
		return err
	}
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, employeeID); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if _, err := s.revisions.WithTx(tx).Record(ctx, revision.EntityEmployee, id, revision.KindDelete, empl); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return s.publish(ctx, events.EventDeleted, *empl)
}

func (s *service) GetRevisions(
	ctx context.Context,
	id string,
	page pagination.Request,
) (pagination.Page[revision.RevisionResponse], error) {
	employeeID, err := parseID(id)
	if err != nil {
		return pagination.Page[revision.RevisionResponse]{}, err
	}

	revs, err := s.revisions.FindRevisions(ctx, revision.EntityEmployee, employeeID.String(), page)
	if err != nil {
		return pagination.Page[revision.RevisionResponse]{}, err
	}
	return pagination.Map(revs, revision.MapToResponse), nil
}

func (s *service) GetLatestRevision(ctx context.Context, id string) (revision.RevisionResponse, error) {
	employeeID, err := parseID(id)
	if err != nil {
		return revision.RevisionResponse{}, err
	}

	rev, err := s.revisions.FindLatestRevision(ctx, revision.EntityEmployee, employeeID.String())
	if err != nil {
		return revision.RevisionResponse{}, err
	}
	return revision.MapToResponse(rev), nil
}

func (s *service) ensureEmailAvailable(ctx context.Context, repo Repository, email string, excludeID uuid.UUID) error {
	taken, err := repo.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return mapRepositoryError(err)
	}
	if taken {
		s.logger.Warn("employee email already in use", zap.String("email", email))
		return employeeerrors.ErrEmployeeAlreadyExists
	}
	return nil
}

// publish runs after commit. A failure here leaves the committed change in
// place and is reported to the caller.
func (s *service) publish(ctx context.Context, eventType events.EventType, empl Employee) error {
	if err := s.publisher.Publish(ctx, eventType, empl); err != nil {
		s.logger.Error("employee event lost after commit",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.String("employee_id", empl.ID.String()),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return parsed, nil
}

func parseBirthday(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(events.DateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidBirthday.WithCause(err)
	}
	return &d, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        empl.ID.String(),
		Email:     empl.Email,
		Birthday:  events.FormatDate(empl.Birthday),
		CreatedAt: empl.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: empl.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if empl.Name != nil {
		resp.FirstName = empl.Name.FirstName
		resp.LastName = empl.Name.LastName
	}
	if empl.Department != nil {
		resp.Department = &EmployeeDepartmentResponse{
			ID:   empl.Department.ID,
			Name: empl.Department.Name,
		}
	}
	return resp
}
