package usecase

import "errors"

// Handlers map these to HTTP statuses. Services wrap them with context,
// e.g. fmt.Errorf("bus configuration %s: %w", id, ErrNotFound).
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is deactivated")
)
