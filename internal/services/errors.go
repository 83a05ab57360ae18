package services

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrNotFound           = errors.New("not_found")
	ErrNegativeStock      = errors.New("negative_stock")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfDeactivation   = errors.New("self_deactivation")
)

// ConflictError reports a unique-field collision with an existing record, so
// callers can point the user at the conflicting id.
type ConflictError struct {
	Field string // "name", "sku" or "email"
	ID    uint   // conflicting record
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("duplicate %s (conflicts with #%d)", e.Field, e.ID)
}

// AsConflict unwraps err into a ConflictError, nil when it is not one.
func AsConflict(err error) *ConflictError {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce
	}
	return nil
}
