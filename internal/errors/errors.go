// Package errors contains helper functions for wrapping errors with stack traces,
// aggregating multiple errors, and recovering from panics.
package errors

import (
	"context"
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates a new error with the given message and attaches the stack trace.
func New(message string) error {
	return goerrors.Wrap(errors.New(message), 1)
}

// Errorf creates a new error and wraps it in an Error type that contains the stack trace.
// The format string supports %w for wrapping an underlying error.
func Errorf(message string, args ...interface{}) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace.
// If the given error is nil, returns nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTracePrefix wraps the given error in an Error type that contains the stack
// trace and prepends the given message to the error message. If the given error is nil,
// returns nil.
func WithStackTracePrefix(err error, message string, args ...interface{}) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// ErrorWithExitCode is a custom error that is used to specify the app exit code.
type ErrorWithExitCode struct {
	Err      error
	ExitCode int
}

func (err ErrorWithExitCode) Error() string {
	return err.Err.Error()
}

func (err ErrorWithExitCode) Unwrap() error {
	return err.Err
}

// GetExitCode returns the exit code embedded in the given error chain, or the
// given fallback code if the chain does not carry one.
func GetExitCode(err error, fallback int) int {
	var exitCodeErr ErrorWithExitCode
	if errors.As(err, &exitCodeErr) {
		return exitCodeErr.ExitCode
	}

	return fallback
}

// ErrorStack returns the stack traces found in the given error chain, if any.
func ErrorStack(err error) string {
	for {
		if err == nil {
			return ""
		}

		if err, ok := err.(interface{ ErrorStack() string }); ok {
			return err.ErrorStack()
		}

		err = errors.Unwrap(err)
	}
}

// ContainsStackTrace returns true if the given error chain already carries a
// stack trace. Useful to avoid creating a nested stack trace.
func ContainsStackTrace(err error) bool {
	for {
		if err == nil {
			return false
		}

		if _, ok := err.(interface{ ErrorStack() string }); ok {
			return true
		}

		err = errors.Unwrap(err)
	}
}

// IsContextCanceled returns true if the given error was caused by `context.Canceled`,
// which is not really an error.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}

// Recover tries to recover from panics, and if it succeeds, calls the given onPanic
// function with an error that explains the cause of the panic. This function should
// only be called from a defer statement.
func Recover(onPanic func(cause error)) {
	if rec := recover(); rec != nil {
		err, isError := rec.(error)
		if !isError {
			err = fmt.Errorf("%v", rec)
		}

		onPanic(WithStackTrace(err))
	}
}

// As finds the first error in err's tree that matches target, and if one is found,
// sets target to that error value and returns true. Otherwise, it returns false.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's type
// contains an Unwrap method returning error. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}
