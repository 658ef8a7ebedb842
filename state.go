package effectrt

// State is the lifecycle state of a [Runtime].
//
//	StateInitialized → StateDraining          [Run]
//	StateDraining    → StateTickPending       [time advanced, more work]
//	StateTickPending → StateDraining          [next drain]
//	StateDraining    → StateTerminal          [idle, no timers]
//	any              → StateFailed            [fatal error, ctx cancelled]
type State uint8

const (
	// StateInitialized indicates the runtime has been created but not run.
	StateInitialized State = iota
	// StateDraining indicates the closure queue is being drained.
	StateDraining
	// StateTickPending indicates logical time was advanced, and woken
	// continuations are waiting for the next drain.
	StateTickPending
	// StateTerminal indicates the loop went idle. Run succeeded only if exit
	// was observed.
	StateTerminal
	// StateFailed indicates Run stopped on an error.
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInitialized:
		return "Initialized"
	case StateDraining:
		return "Draining"
	case StateTickPending:
		return "TickPending"
	case StateTerminal:
		return "Terminal"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}
