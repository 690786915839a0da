// Package errors defines the sentinel errors shared by every ZedID module.
// Use cases return these (or domain errors wrapping them) and the HTTP layer
// maps them to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Generic error kinds. Domain packages wrap one of these so handlers can map
// any domain error without knowing about it.
var (
	// ErrNotFound indicates the identity, policy or event does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the request clashes with current state (duplicate id,
	// illegal status transition).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates malformed or incomplete request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the subject is known but may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInternal indicates a failure of a collaborator (signer, model router, encoder).
	ErrInternal = errors.New("internal error")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap annotates err with message, keeping err in the chain. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
