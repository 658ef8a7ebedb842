package effectrt

import (
	"bytes"
	"fmt"
	"strconv"
)

// ReadLinePlaceholder is the line returned by [Runtime.ReadLine].
const ReadLinePlaceholder = `World`

// The builtins below are the effect operations exposed to generated code.
// None of them block. Usage errors (e.g. the wrong capability token) are
// fatal: the calling continuation is unwound, and [Runtime.Run] returns a
// [*FatalError]. Called outside a drain, they panic with the same error.

// Print writes "<time>s <msg>" to the output, and returns the console token.
func (x *Runtime) Print(console Token, msg []byte) Token {
	x.expect(Console, console)
	if _, err := fmt.Fprintf(x.out, "%0.1fs %s\n", x.now, msg); err != nil {
		x.abort(err)
	}
	return console
}

// ReadLine returns the console token, and a freshly allocated line
// ([ReadLinePlaceholder]).
func (x *Runtime) ReadLine(console Token) (Token, []byte) {
	x.expect(Console, console)
	return console, []byte(ReadLinePlaceholder)
}

// Sleep hands a sleep request to the time driver, and returns immediately.
// Once time has advanced, result is resolved with the clock token, and
// caller is scheduled.
func (x *Runtime) Sleep(clock Token, caller Continuation, result *Future[Token]) {
	x.expect(Clock, clock)
	if caller == nil {
		x.abort(ErrNilContinuation)
	}
	if x.exitObserved {
		x.abort(fmt.Errorf("%w: sleep after exit", ErrExitPending))
	}
	req := &SleepRequest{
		Caller:      caller,
		Result:      result,
		TriggerTime: x.now + TimeUnit,
	}
	if err := x.driver.Sleep(x, req); err != nil {
		x.abort(err)
	}
	x.metrics.pendingTimers(x.driver.Pending())
}

// Itoa formats v as decimal text.
func (x *Runtime) Itoa(v int64) []byte {
	return strconv.AppendInt(make([]byte, 0, 20), v, 10)
}

// Concat returns a new buffer holding a followed by b.
func (x *Runtime) Concat(a, b []byte) []byte {
	buf := make([]byte, len(a)+len(b))
	copy(buf, a)
	copy(buf[len(a):], b)
	return buf
}

// Copy returns a duplicate of a, that shares no memory with it.
func (x *Runtime) Copy(a []byte) []byte {
	if a == nil {
		return []byte{}
	}
	return bytes.Clone(a)
}

// Len returns the length of a, in bytes.
func (x *Runtime) Len(a []byte) int {
	return len(a)
}

// Fork splits the clock capability into two, one per branch of a structured
// concurrency scope. No parallelism is created.
func (x *Runtime) Fork(clock Token) (Token, Token) {
	x.expect(Clock, clock)
	return clock, clock
}

// Join merges the two clock capabilities produced by [Runtime.Fork].
func (x *Runtime) Join(a, b Token) Token {
	x.expect(Clock, a)
	x.expect(Clock, b)
	return a
}

// Exit marks the program as complete. It must be the final action: no
// timers may be outstanding, nothing may be queued behind the calling
// continuation, and it may only be called once.
func (x *Runtime) Exit() {
	switch {
	case x.exitObserved:
		x.abort(ErrExitRepeated)
	case x.driver.Pending() != 0:
		x.abort(fmt.Errorf("%w: %d timers outstanding", ErrExitPending, x.driver.Pending()))
	case !x.scheduler.IsLast():
		x.abort(fmt.Errorf("%w: %d continuations queued", ErrExitPending, max(x.scheduler.Pending()-1, 0)))
	}
	x.exitObserved = true
}

func (x *Runtime) expect(want, got Token) {
	if got != want {
		x.abort(fmt.Errorf("%w: expected %v, got %v", ErrTokenMismatch, want, got))
	}
}
