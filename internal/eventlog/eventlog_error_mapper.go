package eventlog

import (
	"errors"

	eventlogerrors "go-hris-audit/internal/eventlog/errors"
	"go-hris-audit/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

// mapRepositoryError splits store failures in two. Data exceptions (class 22)
// and integrity violations (class 23) will fail the same way on every retry;
// anything else is treated as the store being unavailable.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && len(pgErr.Code) == 5 {
		switch pgErr.Code[:2] {
		case "22", "23":
			return eventlogerrors.ErrRejectedEvent.WithCause(err)
		}
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return eventlogerrors.ErrStoreUnavailable.WithCause(err)
}
