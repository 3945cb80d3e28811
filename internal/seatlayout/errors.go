package seatlayout

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidDimensions    = errors.New("invalid layout dimensions")
	ErrInvalidPattern       = errors.New("invalid arrangement pattern")
	ErrInvalidSeatType      = errors.New("invalid seat type")
	ErrSeatNotFound         = errors.New("seat not found")
	ErrSeatPosition         = errors.New("seat position does not match the layout")
	ErrWalkwayLocked        = errors.New("walkway seats can only be edited in a custom arrangement")
	ErrConfirmationRequired = errors.New("changing the arrangement discards custom labels")

	ErrNameRequired        = errors.New("configuration name is required")
	ErrTotalSeatsRequired  = errors.New("total seats must be greater than zero")
	ErrLayoutNotConfigured = errors.New("seat layout has not been configured")
	ErrNoAvailableSeat     = errors.New("at least one seat must be available")
	ErrDuplicateLabel      = errors.New("duplicate seat label")

	ErrImport = errors.New("import failed")
)

// DuplicateLabelError names the label shared by two or more available seats.
type DuplicateLabelError struct {
	Label     string
	Positions []Position
}

func (e *DuplicateLabelError) Error() string {
	parts := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		parts[i] = fmt.Sprintf("(%d,%d)", p.Row, p.Column)
	}
	return fmt.Sprintf("duplicate seat label %q at %s", e.Label, strings.Join(parts, ", "))
}

func (e *DuplicateLabelError) Unwrap() error { return ErrDuplicateLabel }

// IsValidation reports whether err is a user-correctable layout error.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidDimensions, ErrInvalidPattern, ErrInvalidSeatType, ErrSeatNotFound,
		ErrSeatPosition, ErrWalkwayLocked, ErrNameRequired, ErrTotalSeatsRequired, ErrLayoutNotConfigured,
		ErrNoAvailableSeat, ErrDuplicateLabel, ErrImport,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
