package effectrt

import (
	"context"
)

type (
	// TimeDriver is the time-advancement backend of a [Runtime]. Exactly one
	// driver is active per runtime, selected with [WithTimeDriver].
	//
	// Implementations own each accepted [SleepRequest] until it fires, at
	// which point they must hand it back via [Runtime.Wake], and drain via
	// [Runtime.Drain].
	TimeDriver interface {
		// Sleep accepts req, and must return immediately. A non-nil error
		// (e.g. [ErrCapacityExceeded]) is fatal to the calling continuation.
		Sleep(rt *Runtime, req *SleepRequest) error

		// Pending returns the number of accepted requests that have not fired.
		Pending() int

		// Run performs the initial drain, then advances time and drains again
		// for as long as requests are pending, returning once the runtime is
		// idle, failed, or ctx is done.
		Run(ctx context.Context, rt *Runtime) error
	}

	// SleepRequest is a deferred wake-up of Caller, signalled through Result.
	SleepRequest struct {
		// Caller is scheduled once the request fires.
		Caller Continuation

		// Result is resolved with [Clock] once the request fires.
		Result *Future[Token]

		// TriggerTime is the logical time at which the request is due.
		TriggerTime float64
	}
)
