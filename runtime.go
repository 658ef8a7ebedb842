package effectrt

import (
	"context"
	"fmt"
	"io"
	"os"
)

// TimeUnit is the logical time, in seconds, that a sleep takes.
const TimeUnit = 1.0

// Runtime is the execution context threaded through every continuation and
// builtin. It holds the closure queue, the active time driver, the current
// logical time, and whether exit has been observed.
//
// A Runtime runs once, and is not safe for concurrent use: everything happens
// on the single logical thread driving [Runtime.Run] (the reactor goroutine,
// for a [ReactorDriver]).
type Runtime struct {
	scheduler    *Scheduler
	driver       TimeDriver
	out          io.Writer
	log          *runtimeLogger
	metrics      *Metrics
	err          *FatalError
	resumed      uint64
	now          float64
	state        State
	exitObserved bool
}

// New creates a Runtime. Without options, it uses a [TickDriver], writing to
// os.Stdout.
func New(opts ...Option) (*Runtime, error) {
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	x := &Runtime{
		scheduler: NewScheduler(cfg.queueCapacity),
		driver:    cfg.driver,
		out:       cfg.output,
		log:       newRuntimeLogger(cfg.logger, cfg.duplicateLogs),
		metrics:   cfg.metrics,
	}
	if x.driver == nil {
		x.driver = NewTickDriver(DefaultTimerCapacity)
	}
	if x.out == nil {
		x.out = os.Stdout
	}
	x.scheduler.log = x.log
	x.scheduler.metrics = x.metrics

	return x, nil
}

// Start queues the program's entry continuation. It must be called before
// [Runtime.Run], and may be called more than once.
func (x *Runtime) Start(c Continuation) error {
	if x.state != StateInitialized {
		return ErrAlreadyRun
	}
	return x.scheduler.Schedule(c)
}

// Run drains the closure queue, advancing time through the configured
// driver, until there is nothing left to do. It returns nil only if exit was
// observed, exactly once, as the last action of its drain.
//
// On success, or if the loop went idle without exit, a summary line reporting
// the total logical time is written to the output.
func (x *Runtime) Run(ctx context.Context) error {
	if x.state != StateInitialized {
		return ErrAlreadyRun
	}
	x.state = StateDraining

	x.log.debug().
		Str(`driver`, fmt.Sprintf(`%T`, x.driver)).
		Int(`queued`, x.scheduler.Pending()).
		Log(`effectrt: run`)

	err := x.driver.Run(ctx, x)
	if x.err != nil {
		x.state = StateFailed
		return x.err
	}
	if err != nil {
		x.state = StateFailed
		return err
	}

	x.state = StateTerminal
	if _, err := fmt.Fprintf(x.out, "finished after %0.1fs\n", x.now); err != nil {
		x.state = StateFailed
		return err
	}
	if !x.exitObserved {
		return x.fail(ErrExitNotObserved)
	}
	x.log.finished(x.now, x.resumed)
	return nil
}

// Drain resumes every queued continuation, including any scheduled along the
// way. Fatal errors raised by continuations are recovered here, recorded,
// and returned. Once an error has been recorded, Drain does nothing and
// returns it.
//
// Drain is intended for [TimeDriver] implementations.
func (x *Runtime) Drain() (err error) {
	if x.err != nil {
		return x.err
	}
	x.state = StateDraining
	defer func() {
		if r := recover(); r != nil {
			err = x.recovered(r)
		}
	}()
	x.scheduler.Drain(x.resume)
	return nil
}

// Wake completes a sleep request: it resolves the future, and schedules the
// caller. Errors are recorded as fatal.
//
// Wake is intended for [TimeDriver] implementations.
func (x *Runtime) Wake(req *SleepRequest) error {
	if x.err != nil {
		return x.err
	}
	if req.Result != nil {
		if err := req.Result.Resolve(Clock); err != nil {
			return x.fail(err)
		}
	}
	if err := x.scheduler.Schedule(req.Caller); err != nil {
		return x.fail(err)
	}
	x.metrics.timerFired()
	return nil
}

// AdvanceTo moves logical time forward to t. Time never moves backwards.
//
// AdvanceTo is intended for [TimeDriver] implementations.
func (x *Runtime) AdvanceTo(t float64) {
	if t > x.now {
		x.now = t
	}
	if x.state == StateDraining && x.err == nil {
		x.state = StateTickPending
	}
	x.metrics.logicalTime(x.now)
}

// Now returns the current logical time, in seconds.
func (x *Runtime) Now() float64 {
	return x.now
}

// State returns the lifecycle state.
func (x *Runtime) State() State {
	return x.state
}

// Exited reports whether exit has been observed.
func (x *Runtime) Exited() bool {
	return x.exitObserved
}

// Err returns the fatal error recorded by the runtime, if any.
func (x *Runtime) Err() error {
	if x.err == nil {
		return nil
	}
	return x.err
}

// Pending returns the number of queued continuations.
func (x *Runtime) Pending() int {
	return x.scheduler.Pending()
}

// PendingTimers returns the number of outstanding sleep requests.
func (x *Runtime) PendingTimers() int {
	return x.driver.Pending()
}

// Schedule queues c, for generated code resuming a caller or child. Running
// out of capacity is fatal. Scheduling a continuation that is already
// pending is a no-op.
func (x *Runtime) Schedule(c Continuation) {
	if x.exitObserved {
		x.abort(fmt.Errorf("%w: schedule after exit", ErrExitPending))
	}
	if err := x.scheduler.Schedule(c); err != nil {
		x.abort(err)
	}
}

func (x *Runtime) resume(c Continuation) {
	x.resumed++
	c.Resume(x)
}

// fail records err as the fatal error (the first one wins), and returns the
// recorded error.
func (x *Runtime) fail(err error) error {
	if x.err == nil {
		x.err = &FatalError{Err: err, Time: x.now}
		x.state = StateFailed
		x.log.fatal(err, x.now)
	}
	return x.err
}

// abort records err, and unwinds the current continuation. The panic is
// recovered by Drain.
func (x *Runtime) abort(err error) {
	panic(x.fail(err))
}

func (x *Runtime) recovered(r any) error {
	if err, ok := r.(*FatalError); ok && err == x.err {
		return err
	}
	return x.fail(PanicError{Value: r})
}
