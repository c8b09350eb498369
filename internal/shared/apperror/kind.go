package apperror

import "net/http"

// Kind is the closed set of error classes the services distinguish.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindTransientInfra
	KindPermanentConsumer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindTransientInfra:
		return "transient_infra"
	case KindPermanentConsumer:
		return "permanent_consumer"
	default:
		return "internal"
	}
}

// kindStatus is the only place an error kind is turned into an HTTP status.
var kindStatus = map[Kind]int{
	KindInternal:          http.StatusInternalServerError,
	KindValidation:        http.StatusBadRequest,
	KindConflict:          http.StatusConflict,
	KindNotFound:          http.StatusNotFound,
	KindTransientInfra:    http.StatusServiceUnavailable,
	KindPermanentConsumer: http.StatusUnprocessableEntity,
}

// Status returns the HTTP status for k.
func (k Kind) Status() int {
	if s, ok := kindStatus[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}
