package effectrt

import (
	"context"
	"time"
)

// DefaultReactorDelay is the real time a sleep takes under a [ReactorDriver],
// when no delay is given.
const DefaultReactorDelay = 100 * time.Millisecond

type (
	// Reactor is the external event loop primitive required by
	// [ReactorDriver]. All callbacks must run on a single goroutine: the one
	// that calls Run. See [EventLoop] for an implementation backed by
	// go-eventloop.
	Reactor interface {
		// Submit runs fn on the reactor goroutine, as soon as possible.
		Submit(fn func()) error

		// ScheduleTimer runs fn on the reactor goroutine, once, after delay.
		ScheduleTimer(delay time.Duration, fn func()) error

		// Run blocks, processing callbacks, until stopped or ctx is done.
		Run(ctx context.Context) error

		// Stop requests that Run return. It must not block, and may be
		// called from a callback.
		Stop()
	}

	// ReactorDriver is the time backend driven by an external [Reactor].
	// Each sleep request is bound to its own one-shot timer. When the timer
	// fires, logical time moves to the request's trigger time, the caller is
	// woken, and the runtime is drained before control returns to the
	// reactor. The reactor is stopped once a drain leaves no timers
	// outstanding. At most a fixed number of timers may be outstanding at
	// once.
	ReactorDriver struct {
		reactor     Reactor
		delay       time.Duration
		capacity    int
		outstanding int
		stopped     bool
	}

	// sleepAdapter binds one request to one reactor timer.
	sleepAdapter struct {
		driver *ReactorDriver
		rt     *Runtime
		req    *SleepRequest
	}
)

var _ TimeDriver = (*ReactorDriver)(nil)

// NewReactorDriver returns a ReactorDriver that fires every sleep after
// delay, with at most capacity timers outstanding. A delay <= 0 selects
// [DefaultReactorDelay], and a capacity <= 0 selects [DefaultTimerCapacity].
func NewReactorDriver(reactor Reactor, delay time.Duration, capacity int) *ReactorDriver {
	if reactor == nil {
		panic(`effectrt: nil reactor`)
	}
	if delay <= 0 {
		delay = DefaultReactorDelay
	}
	if capacity <= 0 {
		capacity = DefaultTimerCapacity
	}
	return &ReactorDriver{
		reactor:  reactor,
		delay:    delay,
		capacity: capacity,
	}
}

// Sleep implements TimeDriver.
func (x *ReactorDriver) Sleep(rt *Runtime, req *SleepRequest) error {
	if x.outstanding == x.capacity {
		return ErrCapacityExceeded
	}
	adapter := &sleepAdapter{driver: x, rt: rt, req: req}
	if err := x.reactor.ScheduleTimer(x.delay, adapter.fire); err != nil {
		return err
	}
	x.outstanding++
	return nil
}

// Pending implements TimeDriver.
func (x *ReactorDriver) Pending() int {
	return x.outstanding
}

// Capacity returns the maximum number of outstanding timers.
func (x *ReactorDriver) Capacity() int {
	return x.capacity
}

// Delay returns the real time each sleep takes.
func (x *ReactorDriver) Delay() time.Duration {
	return x.delay
}

// Run implements TimeDriver.
func (x *ReactorDriver) Run(ctx context.Context, rt *Runtime) error {
	if err := x.reactor.Submit(func() {
		x.settle(rt.Drain())
	}); err != nil {
		return err
	}
	rt.log.debug().Dur(`delay`, x.delay).Log(`effectrt: reactor started`)
	err := x.reactor.Run(ctx)
	rt.log.debug().Int(`outstanding`, x.outstanding).Log(`effectrt: reactor stopped`)
	return err
}

// settle stops the reactor once there is nothing left to wait for.
func (x *ReactorDriver) settle(err error) {
	if x.stopped || (err == nil && x.outstanding != 0) {
		return
	}
	x.stopped = true
	x.reactor.Stop()
}

func (x *sleepAdapter) fire() {
	d, rt, req := x.driver, x.rt, x.req
	x.req = nil
	d.outstanding--
	rt.metrics.pendingTimers(d.outstanding)

	if d.stopped {
		return
	}

	rt.AdvanceTo(req.TriggerTime)
	err := rt.Wake(req)
	if err == nil {
		err = rt.Drain()
	}
	d.settle(err)
}
