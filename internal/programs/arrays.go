package programs

import (
	"github.com/joeycumines/go-effectrt"
)

type arraysState struct {
	ary     *effectrt.Array[int64]
	console effectrt.Token
	clock   effectrt.Token
	slept   effectrt.Future[effectrt.Token]
	next    int64
}

// arraysRounds is the number of append-then-sleep rounds.
const arraysRounds = 3

// Arrays appends two values per tick to an initially empty array, printing
// its rendering each time, then prints the final length and exits.
func Arrays() effectrt.Continuation {
	return effectrt.NewFrame(arraysState{
		ary:     effectrt.NewArray[int64](0),
		console: effectrt.Console,
		clock:   effectrt.Clock,
	}, arraysStep)
}

func arraysStep(rt *effectrt.Runtime, f *effectrt.Frame[arraysState]) {
	s := &f.State

	if s.next != 0 {
		clock, ok := s.slept.Value()
		if !ok {
			return
		}
		s.clock = clock
		s.slept = effectrt.Future[effectrt.Token]{}
	}

	for range 2 {
		s.ary = s.ary.Append(s.next * s.next)
		s.next++
	}
	s.console = rt.Print(s.console, s.ary.Render())

	if s.next < 2*arraysRounds {
		rt.Sleep(s.clock, f, &s.slept)
		return
	}

	s.console = rt.Print(s.console, rt.Concat([]byte(`length `), rt.Itoa(int64(s.ary.Len()))))
	rt.Exit()
}
