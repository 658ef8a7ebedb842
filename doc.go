// Package effectrt is the execution runtime for programs compiled to
// continuation-passing closures by an effect-oriented language compiler.
//
// # Architecture
//
// A [Runtime] owns a single-threaded, cooperative closure queue
// ([Scheduler]). Generated code supplies [Continuation] values (typically
// [*Frame] instances), which the runtime resumes in the order they were
// scheduled. A continuation suspends only at an effect boundary: it schedules
// whatever should run next, and returns.
//
// Deferred effects complete through a [Future]: a single-assignment cell that
// the waiting continuation checks when it is resumed. The only deferred
// builtin is [Runtime.Sleep], which hands a [SleepRequest] to the active
// [TimeDriver]:
//   - [TickDriver] simulates coarse discrete time. All pending sleeps fire
//     together on the next tick, and each tick advances logical time by
//     exactly one unit.
//   - [ReactorDriver] binds each sleep to a one-shot timer on an external
//     [Reactor], such as a go-eventloop loop ([EventLoop]). Drains run inside
//     the reactor's callbacks.
//
// # Execution Model
//
// A drain resumes every queued continuation, including those scheduled
// during the drain itself (breadth-first). Scheduling a continuation that is
// already pending is elided. Between drains, the driver advances time. When
// nothing is left, the loop is terminal, and [Runtime.Run] succeeds only if
// the program called [Runtime.Exit], as the last action of its final drain,
// with no timers outstanding.
//
// # Usage
//
//	rt, err := effectrt.New(effectrt.WithTimeDriver(effectrt.NewTickDriver(0)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.Start(program); err != nil {
//	    log.Fatal(err)
//	}
//	if err := rt.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Types
//
// Usage errors in generated code are fatal: the offending continuation is
// unwound, and Run returns a [*FatalError] wrapping one of the sentinel
// errors ([ErrCapacityExceeded], [ErrTokenMismatch], [ErrExitPending],
// [ErrExitRepeated], [ErrFutureResolved]), or a [PanicError]. Terminating
// without exit yields [ErrExitNotObserved].
package effectrt
