package employee

import (
	"context"
	"database/sql"

	"go-hris-audit/internal/shared/dbtx"
	"go-hris-audit/internal/shared/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, page pagination.Request) ([]Employee, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// Create and Update never write the department row; only the foreign key.
func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return dbtx.Bind(ctx, r.db, r.tx).
		Omit(clause.Associations).
		Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, page pagination.Request) ([]Employee, int64, error) {
	var total int64
	if err := dbtx.Bind(ctx, r.db, r.tx).Model(&Employee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	err := dbtx.Bind(ctx, r.db, r.tx).
		Preload("Department").
		Order("created_at ASC, id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&empls).Error
	return empls, total, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var empl Employee
	err := dbtx.Bind(ctx, r.db, r.tx).
		Preload("Department").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) ExistsByEmail(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := dbtx.Bind(ctx, r.db, r.tx).
		Model(&Employee{}).
		Where("email = ?", email)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return dbtx.Bind(ctx, r.db, r.tx).
		Omit(clause.Associations).
		Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbtx.Bind(ctx, r.db, r.tx).
		Delete(&Employee{}, "id = ?", id).Error
}
