package effectrt

type (
	// Continuation is a suspended point of a generated program. The runtime
	// never inspects it, beyond comparing identity (interface equality) to
	// avoid queueing the same resumption twice. Implementations must be
	// pointer types, see [ErrInvalidContinuation].
	Continuation interface {
		Resume(rt *Runtime)
	}

	// Frame is the closure shape emitted by the code generator: a typed
	// state payload, plus the function that resumes it. Identity is the
	// frame pointer.
	Frame[S any] struct {
		// State is owned by the generated code.
		State S

		// Step is called each time the frame is resumed.
		Step func(rt *Runtime, f *Frame[S])
	}

	// ContinuationFunc adapts a function to a Continuation. Each call to
	// [Func] yields a distinct identity.
	ContinuationFunc struct {
		fn func(rt *Runtime)
	}
)

// NewFrame allocates a frame with the given initial state.
func NewFrame[S any](state S, step func(rt *Runtime, f *Frame[S])) *Frame[S] {
	return &Frame[S]{State: state, Step: step}
}

// Resume implements Continuation.
func (x *Frame[S]) Resume(rt *Runtime) {
	if x.Step != nil {
		x.Step(rt, x)
	}
}

// Func wraps fn as a Continuation.
func Func(fn func(rt *Runtime)) *ContinuationFunc {
	return &ContinuationFunc{fn: fn}
}

// Resume implements Continuation.
func (x *ContinuationFunc) Resume(rt *Runtime) {
	if x.fn != nil {
		x.fn(rt)
	}
}
