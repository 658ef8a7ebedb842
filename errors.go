package effectrt

import (
	"errors"
	"fmt"
)

// Standard errors.
//
// Apart from duplicate scheduling (which is elided, not an error), every
// condition below is a bug in the generated program. They are raised inside
// a drain as a [*FatalError], and returned by [Runtime.Run].
var (
	// ErrCapacityExceeded is returned when the closure queue, or a bounded
	// timer list, is full.
	ErrCapacityExceeded = errors.New("effectrt: capacity exceeded")

	// ErrTokenMismatch indicates a builtin was presented the wrong capability token.
	ErrTokenMismatch = errors.New("effectrt: capability token mismatch")

	// ErrExitPending indicates exit was called while timers were outstanding,
	// or while other continuations were still queued in the same drain.
	ErrExitPending = errors.New("effectrt: exit called with pending work")

	// ErrExitRepeated indicates exit was called more than once.
	ErrExitRepeated = errors.New("effectrt: exit called more than once")

	// ErrExitNotObserved is returned when the loop went idle without exit being called.
	ErrExitNotObserved = errors.New("effectrt: terminated without exit")

	// ErrFutureResolved indicates an attempt to resolve a future twice.
	ErrFutureResolved = errors.New("effectrt: future already resolved")

	// ErrAlreadyRun is returned when Run is called on a runtime that has already run.
	ErrAlreadyRun = errors.New("effectrt: runtime has already run")

	// ErrNilContinuation is returned when scheduling a nil continuation.
	ErrNilContinuation = errors.New("effectrt: nil continuation")

	// ErrInvalidContinuation is returned when scheduling a continuation that
	// is not a pointer.
	ErrInvalidContinuation = errors.New("effectrt: continuation must be a pointer")
)

// FatalError is a non-recoverable usage error, observed while resuming a
// continuation. The continuation is unwound, and the runtime stops.
type FatalError struct {
	// Err is the cause, typically one of the sentinel errors of this package.
	Err error
	// Time is the logical time at which the error was observed.
	Time float64
}

// Error implements the error interface.
func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("effectrt: fatal error at %0.1fs", e.Time)
	}
	return fmt.Sprintf("%v (at %0.1fs)", e.Err, e.Time)
}

// Unwrap returns the cause, for use with [errors.Is] and [errors.As].
func (e *FatalError) Unwrap() error {
	return e.Err
}

// PanicError wraps a value recovered from a continuation that panicked for
// reasons other than a [FatalError].
type PanicError struct {
	Value any
}

// Error implements the error interface.
func (e PanicError) Error() string {
	return fmt.Sprintf("effectrt: continuation panicked: %v", e.Value)
}

// Unwrap returns the underlying error if the panic value is an error type.
func (e PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
