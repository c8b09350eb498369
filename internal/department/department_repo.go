package department

import (
	"context"
	"database/sql"

	"go-hris-audit/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAll(ctx context.Context) ([]Department, error)
	FindByID(ctx context.Context, id uint) (*Department, error)
	FindByName(ctx context.Context, name string) (*Department, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	CountEmployees(ctx context.Context, id uint) (int64, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, id uint) error
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

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return dbtx.Bind(ctx, r.db, r.tx).Create(dept).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Department, error) {
	var depts []Department
	err := dbtx.Bind(ctx, r.db, r.tx).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Department, error) {
	var dept Department
	err := dbtx.Bind(ctx, r.db, r.tx).
		First(&dept, "id = ?", id).Error
	return &dept, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Department, error) {
	var dept Department
	err := dbtx.Bind(ctx, r.db, r.tx).
		First(&dept, "name = ?", name).Error
	return &dept, err
}

func (r *repository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	var count int64
	query := dbtx.Bind(ctx, r.db, r.tx).
		Model(&Department{}).
		Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountEmployees reads the employees table directly; the employee package
// depends on this one, not the other way round.
func (r *repository) CountEmployees(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := dbtx.Bind(ctx, r.db, r.tx).
		Table("employees").
		Where("department_id = ?", id).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return dbtx.Bind(ctx, r.db, r.tx).Save(dept).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	return dbtx.Bind(ctx, r.db, r.tx).
		Delete(&Department{}, "id = ?", id).Error
}
