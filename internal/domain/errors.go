package domain

import "errors"

// Sentinel errors shared by services and repositories. The HTTP layer maps them to status codes.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrSlotUnavailable   = errors.New("slot is not available")
	ErrSeatsFull         = errors.New("no seats left in this slot")
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrCredentialRejected is returned by calendar providers when the remote
	// side refuses the stored credential (HTTP 401/403).
	ErrCredentialRejected = errors.New("calendar credential rejected")
)
