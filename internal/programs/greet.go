package programs

import (
	"github.com/joeycumines/go-effectrt"
)

type greetState struct {
	console effectrt.Token
	name    []byte
	message []byte
	done    bool
}

// Greet reads a name, prints a greeting built with concat, then prints the
// length of a copy of the greeting.
func Greet() effectrt.Continuation {
	return effectrt.NewFrame(greetState{console: effectrt.Console}, greetStep)
}

func greetStep(rt *effectrt.Runtime, f *effectrt.Frame[greetState]) {
	s := &f.State
	if s.done {
		return
	}
	s.done = true

	s.console, s.name = rt.ReadLine(s.console)
	s.message = rt.Concat([]byte(`Hello, `), s.name)
	s.console = rt.Print(s.console, s.message)

	dup := rt.Copy(s.message)
	s.console = rt.Print(s.console, rt.Concat([]byte(`length `), rt.Itoa(int64(rt.Len(dup)))))

	rt.Exit()
}
