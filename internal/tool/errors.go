package tool

import (
	"errors"
	"fmt"
)

// ErrToolNotFound is reported for a dispatch to an unregistered name.
var ErrToolNotFound = errors.New("tool not found")

// ExecutionError wraps a failure raised by a tool function.
type ExecutionError struct {
	Tool  string
	Cause error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("tool %s failed: %v", e.Tool, e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// PanicError is the cause recorded when a tool function panics.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
