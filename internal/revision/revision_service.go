package revision

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	revisionerrors "go-hris-audit/internal/revision/errors"
	"go-hris-audit/internal/shared/counter"
	"go-hris-audit/internal/shared/pagination"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder writes revisions inside the caller's transaction, so a revision
// exists exactly when the mutation it describes commits.
//
//go:generate mockgen -source=revision_service.go -destination=mock/revision_service_mock.go -package=mock
type Recorder interface {
	WithTx(tx *sql.Tx) Recorder
	Record(ctx context.Context, entityType EntityType, entityID string, kind Kind, snapshot any) (Revision, error)
	FindRevisions(ctx context.Context, entityType EntityType, entityID string, page pagination.Request) (pagination.Page[Revision], error)
	FindLatestRevision(ctx context.Context, entityType EntityType, entityID string) (Revision, error)
}

type recorder struct {
	repo    Repository
	counter counter.Repository
	tx      *sql.Tx
	logger  *zap.Logger
	now     func() time.Time
}

func NewRecorder(repo Repository, counter counter.Repository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("revision.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("revision.recorder")
	}
	return &recorder{
		repo:    repo,
		counter: counter,
		logger:  l,
		now:     time.Now,
	}
}

func (r *recorder) WithTx(tx *sql.Tx) Recorder {
	cp := *r
	cp.tx = tx
	return &cp
}

func (r *recorder) Record(
	ctx context.Context,
	entityType EntityType,
	entityID string,
	kind Kind,
	snapshot any,
) (Revision, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		r.logger.Error("encode revision snapshot failed",
			zap.String("entity_type", string(entityType)),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
		return Revision{}, revisionerrors.ErrSnapshotEncoding.WithCause(err)
	}

	next, err := r.counter.WithTx(r.tx).GetNextValue(ctx, SequenceName)
	if err != nil {
		r.logger.Error("next revision number failed", zap.Error(err))
		return Revision{}, err
	}

	rev := Revision{
		Rev:        next,
		EntityType: entityType,
		EntityID:   entityID,
		Kind:       kind,
		RevisedAt:  r.now().UTC(),
		Snapshot:   data,
	}
	if err := r.repo.WithTx(r.tx).Create(ctx, &rev); err != nil {
		r.logger.Error("persist revision failed", zap.Int64("rev", next), zap.Error(err))
		return Revision{}, err
	}

	r.logger.Debug("revision recorded",
		zap.Int64("rev", rev.Rev),
		zap.String("entity_type", string(entityType)),
		zap.String("entity_id", entityID),
		zap.String("kind", string(kind)),
	)
	return rev, nil
}

func (r *recorder) FindRevisions(
	ctx context.Context,
	entityType EntityType,
	entityID string,
	page pagination.Request,
) (pagination.Page[Revision], error) {
	revs, total, err := r.repo.FindByEntity(ctx, entityType, entityID, page)
	if err != nil {
		r.logger.Error("find revisions failed", zap.String("entity_id", entityID), zap.Error(err))
		return pagination.Page[Revision]{}, err
	}
	return pagination.NewPage(revs, total, page), nil
}

func (r *recorder) FindLatestRevision(ctx context.Context, entityType EntityType, entityID string) (Revision, error) {
	rev, err := r.repo.FindLatestByEntity(ctx, entityType, entityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Revision{}, revisionerrors.ErrRevisionNotFound
		}
		r.logger.Error("find latest revision failed", zap.String("entity_id", entityID), zap.Error(err))
		return Revision{}, err
	}
	return *rev, nil
}
