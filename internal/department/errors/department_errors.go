package departmenterrors

import "go-hris-audit/internal/shared/apperror"

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Department not found",
	)
	ErrDepartmentAlreadyExists = apperror.New(
		apperror.KindConflict,
		apperror.CodeConflict,
		"Department with the same name already exists",
	)
	ErrDepartmentInUse = apperror.New(
		apperror.KindConflict,
		apperror.CodeConflict,
		"Department still has employees assigned",
	)
	ErrMissingDepartmentName = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Department name is required",
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Invalid department ID",
	)
)
