package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// first_name -> First Name
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// FieldViolation names one field that failed binding and the rule it broke.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// MapValidationError turns a gin binding error into a validation AppError
// naming the first offending field. Every offending field is listed in Details.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		violations := make([]FieldViolation, 0, len(errs))
		for _, fe := range errs {
			// Field() carries the json name once Init has registered the tag func.
			violations = append(violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
		}

		e := errs[0]
		humanReadableField := formatFieldName(e.Field())
		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField).WithDetails(violations)
		default:
			return InvalidField(humanReadableField).WithDetails(violations)
		}
	}
	return ErrInvalidInput.WithCause(err)
}
