package errors

import (
	"errors"
	"fmt"
)

// Common error types for the portal
var (
	// Session errors
	ErrNetwork        = errors.New("network error")
	ErrInvalidSession = errors.New("invalid session")
	ErrInvalidClaims  = errors.New("invalid token claims")
	ErrNoSession      = errors.New("no session")

	// Backend errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrBackend      = errors.New("backend error")

	// Listing drafts
	ErrDraftNotFound   = errors.New("draft not found")
	ErrDraftIncomplete = errors.New("draft incomplete")
	ErrUnknownStep     = errors.New("unknown step")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
