package effectrt

import (
	"reflect"
)

// DefaultQueueCapacity is the closure queue capacity used when none is configured.
const DefaultQueueCapacity = 100

// Scheduler is the closure queue: an ordered, capacity-bounded list of
// pending continuations.
//
// Entries queue[cursor:] are pending. While a drain is in progress,
// queue[cursor] is the continuation currently being resumed, and it still
// counts as pending (a continuation cannot re-queue itself from inside its own
// resumption).
//
// A Scheduler is not safe for concurrent use. All calls must be made from the
// single logical thread driving the runtime.
type Scheduler struct {
	log      *runtimeLogger
	metrics  *Metrics
	queue    []Continuation
	cursor   int
	capacity int
	draining bool
}

// NewScheduler returns a Scheduler that holds at most capacity pending
// continuations. A capacity <= 0 selects [DefaultQueueCapacity].
func NewScheduler(capacity int) *Scheduler {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Scheduler{
		queue:    make([]Continuation, 0, capacity),
		capacity: capacity,
	}
}

// Schedule appends c to the tail of the queue.
//
// If a continuation with the same identity is already pending, the call is a
// no-op: the duplicate is logged and nil is returned. If the queue is full,
// [ErrCapacityExceeded] is returned. Identity is the pointer, so c must be a
// pointer, or [ErrInvalidContinuation] is returned.
func (x *Scheduler) Schedule(c Continuation) error {
	if c == nil {
		return ErrNilContinuation
	}
	if reflect.TypeOf(c).Kind() != reflect.Pointer {
		return ErrInvalidContinuation
	}

	for _, p := range x.queue[x.cursor:] {
		if p == c {
			x.metrics.elided()
			x.log.duplicate(c, len(x.queue)-x.cursor)
			return nil
		}
	}

	if len(x.queue) == x.capacity {
		if x.cursor == 0 {
			return ErrCapacityExceeded
		}
		x.compact()
	}

	x.queue = append(x.queue, c)
	x.metrics.scheduled()
	return nil
}

// Drain resumes continuations in the order they were appended, until the
// queue is empty. Continuations scheduled by resume are appended to the same
// queue, and run later in the same pass. It returns the number resumed.
//
// If resume panics, the queue is left as-is, with the cursor on the entry
// that panicked. Calling Drain from within resume is a no-op.
func (x *Scheduler) Drain(resume func(Continuation)) (n int) {
	if x.draining {
		return 0
	}
	x.draining = true
	defer func() { x.draining = false }()

	for x.cursor < len(x.queue) {
		resume(x.queue[x.cursor])
		x.queue[x.cursor] = nil
		x.cursor++
		n++
		x.metrics.resumed()
	}

	x.queue = x.queue[:0]
	x.cursor = 0

	return n
}

// Pending returns the number of continuations not yet resumed, including the
// one currently being resumed, if any.
func (x *Scheduler) Pending() int {
	return len(x.queue) - x.cursor
}

// Capacity returns the maximum number of pending continuations.
func (x *Scheduler) Capacity() int {
	return x.capacity
}

// Draining reports whether a drain is in progress.
func (x *Scheduler) Draining() bool {
	return x.draining
}

// IsLast reports whether the continuation currently being resumed is the
// final entry in the queue, i.e. nothing else has been scheduled behind it.
func (x *Scheduler) IsLast() bool {
	return x.draining && x.cursor == len(x.queue)-1
}

// compact drops the resumed prefix of the queue.
func (x *Scheduler) compact() {
	n := copy(x.queue, x.queue[x.cursor:])
	clear(x.queue[n:])
	x.queue = x.queue[:n]
	x.cursor = 0
}
