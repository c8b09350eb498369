package revision

import (
	"context"
	"database/sql"

	"go-hris-audit/internal/shared/dbtx"
	"go-hris-audit/internal/shared/pagination"

	"gorm.io/gorm"
)

//go:generate mockgen -source=revision_repo.go -destination=mock/revision_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rev *Revision) error
	FindByEntity(ctx context.Context, entityType EntityType, entityID string, page pagination.Request) ([]Revision, int64, error)
	FindLatestByEntity(ctx context.Context, entityType EntityType, entityID string) (*Revision, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, rev *Revision) error {
	return dbtx.Bind(ctx, r.db, r.tx).Create(rev).Error
}

func (r *repository) FindByEntity(
	ctx context.Context,
	entityType EntityType,
	entityID string,
	page pagination.Request,
) ([]Revision, int64, error) {
	var total int64
	if err := dbtx.Bind(ctx, r.db, r.tx).
		Model(&Revision{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var revs []Revision
	err := dbtx.Bind(ctx, r.db, r.tx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("rev ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&revs).Error
	return revs, total, err
}

func (r *repository) FindLatestByEntity(ctx context.Context, entityType EntityType, entityID string) (*Revision, error) {
	var rev Revision
	err := dbtx.Bind(ctx, r.db, r.tx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("rev DESC").
		First(&rev).Error
	return &rev, err
}
