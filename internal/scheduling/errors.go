package scheduling

import "errors"

// Error kinds returned by the core. The API layer maps them to HTTP statuses;
// nothing here is fatal and the store is left consistent on every failure.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrSlotUnavailable    = errors.New("timeslot unavailable")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
