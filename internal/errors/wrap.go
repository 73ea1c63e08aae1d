package errors

import (
	"errors"
	"fmt"
)

// ErrorWrapper attaches module and operation context to errors.
type ErrorWrapper struct {
	module    string
	operation string
}

// NewWrapper creates a wrapper for one operation of one module,
// e.g. NewWrapper("report", "build_workbook").
func NewWrapper(module, operation string) *ErrorWrapper {
	return &ErrorWrapper{
		module:    module,
		operation: operation,
	}
}

// Wrap wraps err with the wrapper's context. Returns nil if err is nil.
func (w *ErrorWrapper) Wrap(err error, userMessage string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Module:      w.module,
		Operation:   w.operation,
		Cause:       err,
		UserMessage: userMessage,
	}
}

// Wrapf is Wrap with a formatted user message.
func (w *ErrorWrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return w.Wrap(err, fmt.Sprintf(format, args...))
}

// WrappedError carries an internal cause alongside a message safe to show callers.
type WrappedError struct {
	Module      string // records, report, dataset
	Operation   string // lookup, build_workbook, parse_csv
	Cause       error
	UserMessage string
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.UserMessage, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}

// GetUserMessage returns the user-facing message of the outermost WrappedError
// in err's chain, or err.Error() when there is none.
func GetUserMessage(err error) string {
	if err == nil {
		return ""
	}
	var wrapped *WrappedError
	if errors.As(err, &wrapped) {
		return wrapped.UserMessage
	}
	return err.Error()
}
