package apperror

var (
	ErrNotFound = New(
		KindNotFound,
		CodeNotFound,
		"Resource not found",
	)

	ErrInternal = New(
		KindInternal,
		CodeInternalError,
		"An unexpected error occurred",
	)

	ErrInvalidInput = New(
		KindValidation,
		CodeInvalidInput,
		"The provided input is invalid",
	)

	ErrServiceUnavailable = New(
		KindTransientInfra,
		CodeServiceUnavailable,
		"A downstream dependency is unavailable, please retry",
	)
)

func RequiredField(field string) *AppError {
	return New(KindValidation, CodeInvalidInput, field+" is required")
}

func InvalidField(field string) *AppError {
	return New(KindValidation, CodeInvalidInput, field+" is invalid")
}
