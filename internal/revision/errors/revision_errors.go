package revisionerrors

import "go-hris-audit/internal/shared/apperror"

var (
	ErrRevisionNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"No revision recorded for this entity",
	)
	ErrSnapshotEncoding = apperror.New(
		apperror.KindInternal,
		apperror.CodeInternalError,
		"Revision snapshot could not be encoded",
	)
)
