package domain

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("authentication required")
	ErrConflict        = errors.New("conflict")
	ErrTransientStore  = errors.New("store unavailable")
)

// ErrorKind maps an error to a stable label for logs and metrics.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrTransientStore):
		return "transient_store"
	default:
		return "unexpected"
	}
}
