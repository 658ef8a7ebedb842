package effectrt

import (
	"context"
)

// DefaultTimerCapacity is the pending request capacity used by
// [NewTickDriver] and [NewReactorDriver], when none is given.
const DefaultTimerCapacity = 20

// TickDriver is the self-contained, discrete time backend. Time is coarse:
// every sleep, regardless of what was requested, fires on the next tick, and
// all pending requests fire together. Each tick advances logical time by
// exactly [TimeUnit].
type TickDriver struct {
	pending  []*SleepRequest
	capacity int
}

var _ TimeDriver = (*TickDriver)(nil)

// NewTickDriver returns a TickDriver that holds at most capacity pending
// requests. A capacity <= 0 selects [DefaultTimerCapacity].
func NewTickDriver(capacity int) *TickDriver {
	if capacity <= 0 {
		capacity = DefaultTimerCapacity
	}
	return &TickDriver{
		pending:  make([]*SleepRequest, 0, capacity),
		capacity: capacity,
	}
}

// Sleep implements TimeDriver.
func (x *TickDriver) Sleep(rt *Runtime, req *SleepRequest) error {
	if len(x.pending) == x.capacity {
		return ErrCapacityExceeded
	}
	x.pending = append(x.pending, req)
	return nil
}

// Pending implements TimeDriver.
func (x *TickDriver) Pending() int {
	return len(x.pending)
}

// Capacity returns the maximum number of pending requests.
func (x *TickDriver) Capacity() int {
	return x.capacity
}

// Run implements TimeDriver.
func (x *TickDriver) Run(ctx context.Context, rt *Runtime) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := rt.Drain(); err != nil {
			return err
		}
		if len(x.pending) == 0 {
			return nil
		}
		if err := x.Tick(rt); err != nil {
			return err
		}
	}
}

// Tick fires every pending request, clears the list, and advances logical
// time by one unit. All callers woken by the tick are queued before any of
// them run.
func (x *TickDriver) Tick(rt *Runtime) error {
	for _, req := range x.pending {
		if err := rt.Wake(req); err != nil {
			return err
		}
	}
	clear(x.pending)
	x.pending = x.pending[:0]
	rt.AdvanceTo(rt.Now() + TimeUnit)
	rt.metrics.tick()
	rt.metrics.pendingTimers(0)
	return nil
}
