package apperror

import "errors"

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into the client-facing shape. Errors that are not
// AppErrors are reported as internal without leaking their message.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return HTTPError{
			Status:  KindInternal.Status(),
			Code:    ErrInternal.Code,
			Message: ErrInternal.Message,
		}
	}

	return HTTPError{
		Status:  appErr.Kind.Status(),
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
}
