package eventlog_test

import (
	"context"
	"testing"
	"time"

	"go-hris-audit/internal/eventlog"
	"go-hris-audit/internal/events"
	"go-hris-audit/internal/shared/pagination"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) (eventlog.Repository, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return eventlog.NewRepository(gdb), sqlMock
}

func storedEvent() *eventlog.EmployeeEvent {
	messageID := "m-1"
	return &eventlog.EmployeeEvent{
		ID:         uuid.New(),
		MessageID:  &messageID,
		EventType:  events.EventCreated,
		EmployeeID: "e1",
		CreatedAt:  time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestEventlogRepository_Append(t *testing.T) {
	ctx := context.Background()
	insert := `INSERT INTO "employee_events" \("id","message_id",.+\) VALUES .+ ON CONFLICT \("message_id"\) DO NOTHING`

	t.Run("new message id is inserted", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		inserted, err := repo.Append(ctx, storedEvent())

		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("known message id inserts nothing", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		inserted, err := repo.Append(ctx, storedEvent())

		require.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("store error", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(insert).WillReturnError(assert.AnError)
		sqlMock.ExpectRollback()

		inserted, err := repo.Append(ctx, storedEvent())

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, inserted)
	})
}

func TestEventlogRepository_FindByEmployeeID(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("oldest first with offset and limit", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)
		first, second := uuid.New(), uuid.New()

		sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "employee_events" WHERE employee_id = \$1`).
			WithArgs("e1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
		sqlMock.ExpectQuery(`SELECT \* FROM "employee_events" WHERE employee_id = \$1 ORDER BY created_at ASC, id ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("e1", 10, 10).
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_type", "employee_id", "created_at"}).
				AddRow(first.String(), "CREATED", "e1", t0).
				AddRow(second.String(), "UPDATED", "e1", t0.Add(time.Second)))

		evts, total, err := repo.FindByEmployeeID(ctx, "e1", pagination.NewRequest(2, 10))

		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, evts, 2)
		assert.Equal(t, first, evts[0].ID)
		assert.Equal(t, events.EventUpdated, evts[1].EventType)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("count failure", func(t *testing.T) {
		repo, sqlMock := setupRepoTest(t)
		sqlMock.ExpectQuery(`SELECT count\(\*\) FROM "employee_events"`).WillReturnError(assert.AnError)

		_, _, err := repo.FindByEmployeeID(ctx, "e1", pagination.NewRequest(1, 10))

		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
