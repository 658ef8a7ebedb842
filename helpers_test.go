package effectrt

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// sleeper sleeps once, then records the logical time it woke at.
type sleeper struct {
	name      string
	trace     *[]string
	slept     Future[Token]
	requested bool
}

func (x *sleeper) Resume(rt *Runtime) {
	if !x.requested {
		x.requested = true
		rt.Sleep(Clock, x, &x.slept)
		return
	}
	if _, ok := x.slept.Value(); !ok {
		return
	}
	*x.trace = append(*x.trace, fmt.Sprintf(`%s@%0.1f`, x.name, rt.Now()))
}

// helloCont prints Hello, sleeps, prints World, then exits.
type helloCont struct {
	slept Future[Token]
	step  int
}

func (x *helloCont) Resume(rt *Runtime) {
	switch x.step {
	case 0:
		x.step++
		rt.Print(Console, []byte(`Hello`))
		rt.Sleep(Clock, x, &x.slept)
	case 1:
		if !x.slept.Ready() {
			return
		}
		x.step++
		rt.Print(Console, []byte(`World`))
		rt.Exit()
	}
}

// newTestRuntime builds a runtime writing to the returned buffer.
func newTestRuntime(t *testing.T, opts ...Option) (*Runtime, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	rt, err := New(append([]Option{WithOutput(&out)}, opts...)...)
	require.NoError(t, err)
	return rt, &out
}
