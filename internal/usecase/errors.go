package usecase

import "errors"

// Sentinel errors returned by services. Handlers map them to status codes
// with errors.Is; anything else is reported as 500.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotOwner        = errors.New("not authorized")
	ErrForbidden       = errors.New("access denied")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)
