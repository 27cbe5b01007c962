package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error built from a recovered panic.
type PanicError struct {
	// PanicValue is the value passed to panic()
	PanicValue interface{}

	// StackTrace is the stack at the time of the panic
	StackTrace string

	// Operation names where the panic was recovered
	Operation string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s",
		e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError capturing the current stack.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error. Use it with defer and a named
// error result:
//
//	func (r *FastTreeRegressor) Fit(X, y mat.Matrix) (err error) {
//	    defer errors.Recover(&err, "FastTreeRegressor.Fit")
//	    ...
//	}
//
// If err is already set the panic is folded into it.
func Recover(err *error, operation string) {
	if r := recover(); r != nil {
		if *err != nil {
			*err = fmt.Errorf("panic in %s: %v (original error: %w)", operation, r, *err)
			return
		}
		*err = NewPanicError(operation, r)
	}
}

// SafeExecute runs fn and converts any panic into a PanicError.
func SafeExecute(operation string, fn func() error) (err error) {
	defer Recover(&err, operation)
	return fn()
}
