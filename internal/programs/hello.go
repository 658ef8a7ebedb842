package programs

import (
	"github.com/joeycumines/go-effectrt"
)

type helloState struct {
	console effectrt.Future[effectrt.Token]
	clock   effectrt.Future[effectrt.Token]
	slept   effectrt.Future[effectrt.Token]
	printed effectrt.Future[effectrt.Token]
	sleep   bool
	exited  bool
}

// Hello prints "Hello", sleeps, prints "World", and exits.
func Hello() effectrt.Continuation {
	var s helloState
	_ = s.clock.Resolve(effectrt.Clock)
	return effectrt.NewFrame(s, helloStep)
}

func helloStep(rt *effectrt.Runtime, f *effectrt.Frame[helloState]) {
	s := &f.State

	if !s.console.Ready() {
		_ = s.console.Resolve(rt.Print(effectrt.Console, []byte(`Hello`)))
	}

	if clock, ok := s.clock.Value(); ok && !s.sleep {
		s.sleep = true
		rt.Sleep(clock, f, &s.slept)
	}

	if console, ok := s.console.Value(); ok && s.slept.Ready() && !s.printed.Ready() {
		_ = s.printed.Resolve(rt.Print(console, []byte(`World`)))
	}

	if s.printed.Ready() && !s.exited {
		s.exited = true
		rt.Exit()
	}
}
