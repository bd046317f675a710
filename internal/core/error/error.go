// Package errx carries an HTTP status and a user-safe message alongside the
// underlying cause, so transport layers never leak internals.
package errx

import (
	"errors"
	"fmt"
)

const (
	// SystemErrorMessage is the user-facing fallback for internal errors.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "not found"
	// DBErrorMessage describes relational store failures.
	DBErrorMessage = "database operation failed"
)

// Error wraps an underlying error with an HTTP status and safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the provided status and safe message.
func New(err error, status int, message string) *Error {
	return &Error{Err: err, Status: status, Message: message}
}

// Is reports whether the target matches the underlying error.
func (e *Error) Is(target error) bool { return errors.Is(e.Err, target) }
