package employeeerrors

import "go-hris-audit/internal/shared/apperror"

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Employee not found",
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.KindConflict,
		apperror.CodeConflict,
		"Employee with the same email already exists",
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.KindNotFound,
		apperror.CodeNotFound,
		"Department with the given name does not exist",
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Invalid employee ID",
	)
	ErrInvalidBirthday = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Invalid birthday format, expected YYYY-MM-DD",
	)
	ErrMissingEmail = apperror.New(
		apperror.KindValidation,
		apperror.CodeInvalidInput,
		"Email is required",
	)
)
