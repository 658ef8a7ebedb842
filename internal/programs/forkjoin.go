package programs

import (
	"github.com/joeycumines/go-effectrt"
)

type (
	forkJoinState struct {
		left    effectrt.Future[effectrt.Token]
		right   effectrt.Future[effectrt.Token]
		console effectrt.Token
		clock   effectrt.Token
		forked  bool
		exited  bool
	}

	// branchState is a called function: it owns a pointer to the caller's
	// result register, and schedules the caller once it is resolved.
	branchState struct {
		caller  effectrt.Continuation
		result  *effectrt.Future[effectrt.Token]
		label   string
		clock   effectrt.Token
		slept   effectrt.Future[effectrt.Token]
		started bool
	}
)

// ForkJoin forks the clock into two branches that each sleep once, then
// print, and joins them before exiting. Both branches wake on the same tick
// (under a TickDriver) and both reschedule the parent, exercising duplicate
// elision.
func ForkJoin() effectrt.Continuation {
	return effectrt.NewFrame(forkJoinState{console: effectrt.Console, clock: effectrt.Clock}, forkJoinStep)
}

func forkJoinStep(rt *effectrt.Runtime, f *effectrt.Frame[forkJoinState]) {
	s := &f.State

	if !s.forked {
		s.forked = true
		s.console = rt.Print(s.console, []byte(`fork`))
		a, b := rt.Fork(s.clock)
		rt.Schedule(newBranch(f, &s.left, `left`, a))
		rt.Schedule(newBranch(f, &s.right, `right`, b))
	}

	a, okA := s.left.Value()
	b, okB := s.right.Value()
	if okA && okB && !s.exited {
		s.exited = true
		s.clock = rt.Join(a, b)
		s.console = rt.Print(s.console, []byte(`joined`))
		rt.Exit()
	}
}

func newBranch(caller effectrt.Continuation, result *effectrt.Future[effectrt.Token], label string, clock effectrt.Token) *effectrt.Frame[branchState] {
	return effectrt.NewFrame(branchState{
		caller: caller,
		result: result,
		label:  label,
		clock:  clock,
	}, branchStep)
}

func branchStep(rt *effectrt.Runtime, f *effectrt.Frame[branchState]) {
	s := &f.State

	if !s.started {
		s.started = true
		rt.Sleep(s.clock, f, &s.slept)
		return
	}

	clock, ok := s.slept.Value()
	if !ok || s.result.Ready() {
		return
	}
	rt.Print(effectrt.Console, []byte(s.label))
	_ = s.result.Resolve(clock)
	rt.Schedule(s.caller)
}
