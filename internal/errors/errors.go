// Package errors wraps github.com/go-errors/errors so that errors returned by
// the I/O and configuration layers carry the stack trace of where they were first seen.
package errors

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// New creates an error with the given message and a stack trace
func New(message string) error {
	return goerrors.Wrap(message, 1)
}

// Errorf creates an error from the format and args, with a stack trace
func Errorf(format string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already
// has a stack trace, it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error like WithStackTrace and prepends message to it.
// If the given error is nil, return nil.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// Is reports whether any error in err's chain matches target, looking through stack trace wrappers.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return goerrors.As(err, target)
}

// PrintErrorWithStackTrace converts the given error to a string, including the stack trace if available
func PrintErrorWithStackTrace(err error) string {
	if err == nil {
		return ""
	}

	if goError, ok := err.(*goerrors.Error); ok {
		return goError.ErrorStack()
	}
	return err.Error()
}
