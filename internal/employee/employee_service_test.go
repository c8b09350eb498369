package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hris-audit/internal/department"
	"go-hris-audit/internal/employee"
	employeeerrors "go-hris-audit/internal/employee/errors"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/revision"
	"go-hris-audit/internal/shared/apperror"
	"go-hris-audit/internal/shared/pagination"

	departmentMock "go-hris-audit/internal/department/mock"
	employeeMock "go-hris-audit/internal/employee/mock"
	revisionMock "go-hris-audit/internal/revision/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     employee.Service
	repo        *employeeMock.MockRepository
	departments *departmentMock.MockRepository
	revisions   *revisionMock.MockRecorder
	publisher   *employeeMock.MockEventPublisher
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, _ := sqlmock.New()
	repo := employeeMock.NewMockRepository(ctrl)
	departments := departmentMock.NewMockRepository(ctrl)
	revisions := revisionMock.NewMockRecorder(ctrl)
	publisher := employeeMock.NewMockEventPublisher(ctrl)

	svc := employee.NewService(db, repo, departments, revisions, publisher)

	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		departments: departments,
		revisions:   revisions,
		publisher:   publisher,
	}
}

func (d *serviceDeps) expectTxScope() {
	d.repo.EXPECT().WithTx(gomock.Any()).Return(d.repo)
	d.departments.EXPECT().WithTx(gomock.Any()).Return(d.departments)
}

func (d *serviceDeps) expectRevision(kind revision.Kind, entityID any) {
	d.revisions.EXPECT().WithTx(gomock.Any()).Return(d.revisions)
	d.revisions.EXPECT().
		Record(gomock.Any(), revision.EntityEmployee, entityID, kind, gomock.Any()).
		Return(revision.Revision{Rev: 1, Kind: kind}, nil).
		Times(1)
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	req := employee.CreateEmployeeRequest{
		Email:          "a@b.com",
		FirstName:      "Ann",
		LastName:       "Lee",
		Birthday:       "1990-03-14",
		DepartmentName: "Engineering",
	}

	t.Run("success resolves department", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()

		deps.departments.EXPECT().FindByName(ctx, "Engineering").Return(engineering(), nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "a@b.com", uuid.Nil).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.NotEqual(t, uuid.Nil, e.ID)
				assert.Equal(t, uint(1), e.DepartmentID)
				return nil
			})
		deps.expectRevision(revision.KindInsert, gomock.Any())
		deps.sqlMock.ExpectCommit()
		deps.publisher.EXPECT().Publish(ctx, events.EventCreated, gomock.Any()).Return(nil).Times(1)

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "a@b.com", resp.Email)
		assert.Equal(t, "1990-03-14", resp.Birthday)
		require.NotNil(t, resp.Department)
		assert.Equal(t, "Engineering", resp.Department.Name)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()

		deps.departments.EXPECT().FindByName(ctx, "Engineering").Return(engineering(), nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "a@b.com", uuid.Nil).Return(true, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})

	t.Run("unique violation raced past the check", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()

		deps.departments.EXPECT().FindByName(ctx, "Engineering").Return(engineering(), nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "a@b.com", uuid.Nil).Return(false, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("unknown department", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()

		deps.departments.EXPECT().FindByName(ctx, "Engineering").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(ctx, req)

		assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	})

	t.Run("invalid birthday", func(t *testing.T) {
		deps := setupServiceTest(t)
		bad := req
		bad.Birthday = "14/03/1990"

		_, err := deps.service.Create(ctx, bad)

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidBirthday)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestEmployeeService_Patch(t *testing.T) {
	ctx := context.Background()

	t.Run("name only yields one revision and one event", func(t *testing.T) {
		deps := setupServiceTest(t)
		before := existingEmployee()
		id := before.ID

		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.repo.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.departments.EXPECT().FindByName(gomock.Any(), gomock.Any()).Times(0)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(1)
		deps.expectRevision(revision.KindUpdate, id.String())
		deps.sqlMock.ExpectCommit()

		var published employee.Employee
		deps.publisher.EXPECT().
			Publish(ctx, events.EventUpdated, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ events.EventType, e employee.Employee) error {
				published = e
				return nil
			}).
			Times(1)

		resp, err := deps.service.Patch(ctx, id.String(), employee.PatchEmployeeRequest{
			FirstName: strPtr("Anna"),
			LastName:  strPtr("Smith"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Anna", resp.FirstName)
		assert.Equal(t, "Smith", resp.LastName)
		assert.Equal(t, before.Email, published.Email)
		assert.Equal(t, before.Birthday, published.Birthday)
		assert.Equal(t, "Engineering", published.DepartmentName())
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("no change writes nothing", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := existingEmployee().ID

		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
		deps.revisions.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		resp, err := deps.service.Patch(ctx, id.String(), employee.PatchEmployeeRequest{
			FirstName:      strPtr("Ann"),
			DepartmentName: strPtr("Engineering"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Ann", resp.FirstName)
	})

	t.Run("email taken by another employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := existingEmployee().ID

		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.repo.EXPECT().ExistsByEmail(ctx, "c@d.com", id).Return(true, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Patch(ctx, id.String(), employee.PatchEmployeeRequest{
			Email: strPtr("c@d.com"),
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		deps.departments.EXPECT().WithTx(gomock.Any()).Times(0)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Patch(ctx, id.String(), employee.PatchEmployeeRequest{
			FirstName: strPtr("Anna"),
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Patch(ctx, "not-a-uuid", employee.PatchEmployeeRequest{})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	id := existingEmployee().ID

	t.Run("department move", func(t *testing.T) {
		deps := setupServiceTest(t)
		sales := &department.Department{ID: 2, Name: "Sales"}

		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.departments.EXPECT().FindByName(ctx, "Sales").Return(sales, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, uint(2), e.DepartmentID)
				return nil
			})
		deps.expectRevision(revision.KindUpdate, id.String())
		deps.sqlMock.ExpectCommit()
		deps.publisher.EXPECT().Publish(ctx, events.EventUpdated, gomock.Any()).Return(nil)

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Email:          "a@b.com",
			FirstName:      "Ann",
			LastName:       "Lee",
			DepartmentName: "Sales",
		})

		require.NoError(t, err)
		assert.Equal(t, "Sales", resp.Department.Name)
		assert.Equal(t, "1990-03-14", resp.Birthday)
	})

	t.Run("publish failure after commit", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.expectTxScope()
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)
		deps.expectRevision(revision.KindUpdate, id.String())
		deps.sqlMock.ExpectCommit()
		deps.publisher.EXPECT().
			Publish(ctx, events.EventUpdated, gomock.Any()).
			Return(apperror.ErrServiceUnavailable)

		resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
			Email:          "a@b.com",
			FirstName:      "Ann",
			LastName:       "Smith",
			DepartmentName: "Engineering",
		})

		assert.Equal(t, apperror.KindTransientInfra, apperror.KindOf(err))
		assert.Equal(t, "Smith", resp.LastName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	id := existingEmployee().ID

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(existingEmployee(), nil)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.expectRevision(revision.KindDelete, id.String())
		deps.sqlMock.ExpectCommit()
		deps.publisher.EXPECT().Publish(ctx, events.EventDeleted, gomock.Any()).Return(nil)

		err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.sqlMock.ExpectBegin()
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)
		deps.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
		deps.sqlMock.ExpectRollback()

		err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	ctx := context.Background()
	page := pagination.NewRequest(1, 10)

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, page).Return([]employee.Employee{*existingEmployee()}, int64(1), nil)

		resp, err := deps.service.GetAll(ctx, page)

		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.Total)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Engineering", resp.Items[0].Department.Name)
	})

	t.Run("empty", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, page).Return(nil, int64(0), nil)

		resp, err := deps.service.GetAll(ctx, page)

		require.NoError(t, err)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
	})

	t.Run("repository error", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAll(ctx, page).Return(nil, int64(0), errors.New("db down"))

		_, err := deps.service.GetAll(ctx, page)

		assert.Error(t, err)
	})
}

func TestEmployeeService_GetRevisions(t *testing.T) {
	ctx := context.Background()
	id := existingEmployee().ID
	page := pagination.NewRequest(1, 10)

	deps := setupServiceTest(t)
	revisedAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	deps.revisions.EXPECT().
		FindRevisions(ctx, revision.EntityEmployee, id.String(), page).
		Return(pagination.NewPage([]revision.Revision{
			{Rev: 7, EntityType: revision.EntityEmployee, EntityID: id.String(), Kind: revision.KindUpdate, RevisedAt: revisedAt, Snapshot: []byte(`{}`)},
		}, 1, page), nil)

	resp, err := deps.service.GetRevisions(ctx, id.String(), page)

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(7), resp.Items[0].Rev)
	assert.Equal(t, "UPDATE", resp.Items[0].Kind)
}
