package eventlogerrors

import "go-hris-audit/internal/shared/apperror"

var (
	ErrMalformedMessage = apperror.New(
		apperror.KindPermanentConsumer,
		apperror.CodeMalformedMessage,
		"Message body is not a valid employee event",
	)
	ErrRejectedEvent = apperror.New(
		apperror.KindPermanentConsumer,
		apperror.CodeMalformedMessage,
		"Event was rejected by the store",
	)
	ErrStoreUnavailable = apperror.New(
		apperror.KindTransientInfra,
		apperror.CodeServiceUnavailable,
		"Event store is unavailable",
	)
	ErrDuplicateEvent = apperror.New(
		apperror.KindConflict,
		apperror.CodeConflict,
		"Event with the same message ID is already stored",
	)
	ErrMissingEmployeeID = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Employee ID is required",
	)
)
