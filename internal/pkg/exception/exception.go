package exception

import (
	"errors"
	"fmt"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	// a bare target with no cause matches any carried cause, so
	// sentinels still match errors built with WithCause
	return e.Message == targetErr.Message &&
		(targetErr.Cause == nil || e.Cause == targetErr.Cause)
}

// ErrorCode returns error code for an application error.
func (e ApplicationError) ErrorCode() int {
	return e.StatusCode
}

// WithCause returns a copy of the error carrying cause, keeping the
// message and status for errors.Is matching against the sentinel.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause

	return e
}
