package effectrt

import (
	"context"
	"time"

	eventloop "github.com/joeycumines/go-eventloop"
)

// EventLoop adapts a go-eventloop [eventloop.Loop] to [Reactor].
type EventLoop struct {
	loop *eventloop.Loop
}

var _ Reactor = (*EventLoop)(nil)

// NewEventLoop creates a new go-eventloop loop, wrapped as a Reactor.
func NewEventLoop() (*EventLoop, error) {
	loop, err := eventloop.New()
	if err != nil {
		return nil, err
	}
	return &EventLoop{loop: loop}, nil
}

// WrapEventLoop adapts an existing loop, which must not be running yet.
func WrapEventLoop(loop *eventloop.Loop) *EventLoop {
	return &EventLoop{loop: loop}
}

// Loop returns the underlying loop.
func (x *EventLoop) Loop() *eventloop.Loop {
	return x.loop
}

// Submit implements Reactor.
func (x *EventLoop) Submit(fn func()) error {
	return x.loop.Submit(fn)
}

// ScheduleTimer implements Reactor.
func (x *EventLoop) ScheduleTimer(delay time.Duration, fn func()) error {
	_, err := x.loop.ScheduleTimer(delay, fn)
	return err
}

// Run implements Reactor.
func (x *EventLoop) Run(ctx context.Context) error {
	return x.loop.Run(ctx)
}

// Stop implements Reactor. Shutdown waits for the loop goroutine to exit, so
// it cannot be called from a callback directly.
func (x *EventLoop) Stop() {
	go func() {
		_ = x.loop.Shutdown(context.Background())
	}()
}
