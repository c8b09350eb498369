package eventlog

import (
	"context"

	"go-hris-audit/internal/shared/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=eventlog_repo.go -destination=mock/eventlog_repo_mock.go -package=mock
type Repository interface {
	// Append reports false when an event with the same message id is stored.
	Append(ctx context.Context, evt *EmployeeEvent) (bool, error)
	FindByEmployeeID(ctx context.Context, employeeID string, page pagination.Request) ([]EmployeeEvent, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Append(ctx context.Context, evt *EmployeeEvent) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).
		Create(evt)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByEmployeeID(
	ctx context.Context,
	employeeID string,
	page pagination.Request,
) ([]EmployeeEvent, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&EmployeeEvent{}).
		Where("employee_id = ?", employeeID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var evts []EmployeeEvent
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at ASC, id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&evts).Error
	return evts, total, err
}
