package programs

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/go-effectrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, program Program, opts ...effectrt.Option) string {
	t.Helper()
	var out bytes.Buffer
	rt, err := effectrt.New(append([]effectrt.Option{effectrt.WithOutput(&out)}, opts...)...)
	require.NoError(t, err)
	require.NoError(t, rt.Start(program.New()))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, rt.Run(ctx))
	return out.String()
}

func TestPrograms_tick(t *testing.T) {
	for _, tc := range [...]struct {
		Name string
		Out  string
	}{
		{`hello`, "0.0s Hello\n1.0s World\nfinished after 1.0s\n"},
		{`greet`, "0.0s Hello, World\n0.0s length 12\nfinished after 0.0s\n"},
		{`forkjoin`, "0.0s fork\n1.0s left\n1.0s right\n1.0s joined\nfinished after 1.0s\n"},
		{`arrays`, "0.0s [0, 1]\n1.0s [0, 1, 4, 9]\n2.0s [0, 1, 4, 9, 16, 25]\n2.0s length 6\nfinished after 2.0s\n"},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			program, ok := Lookup(tc.Name)
			require.True(t, ok)
			assert.Equal(t, tc.Out, run(t, program))
		})
	}
}

func TestPrograms_tickSmallQueue(t *testing.T) {
	for _, program := range All() {
		t.Run(program.Name, func(t *testing.T) {
			run(t, program, effectrt.WithQueueCapacity(3), effectrt.WithTimeDriver(effectrt.NewTickDriver(2)))
		})
	}
}

func TestPrograms_reactor(t *testing.T) {
	for _, program := range All() {
		t.Run(program.Name, func(t *testing.T) {
			loop, err := effectrt.NewEventLoop()
			require.NoError(t, err)
			out := run(t, program, effectrt.WithTimeDriver(effectrt.NewReactorDriver(loop, time.Millisecond, 0)))
			assert.True(t, strings.HasSuffix(out, "s\n"))
			assert.Contains(t, out, `finished after `)
		})
	}
}

func TestPrograms_reactorForkJoin(t *testing.T) {
	program, ok := Lookup(`forkjoin`)
	require.True(t, ok)
	loop, err := effectrt.NewEventLoop()
	require.NoError(t, err)
	out := run(t, program, effectrt.WithTimeDriver(effectrt.NewReactorDriver(loop, time.Millisecond, 0)))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, `0.0s fork`, lines[0])
	assert.ElementsMatch(t, []string{`1.0s left`, `1.0s right`}, lines[1:3])
	assert.Equal(t, `1.0s joined`, lines[3])
	assert.Equal(t, `finished after 1.0s`, lines[4])
}

func TestLookup(t *testing.T) {
	_, ok := Lookup(`nope`)
	assert.False(t, ok)

	var names []string
	for _, program := range All() {
		names = append(names, program.Name)
		assert.NotEmpty(t, program.Description)
		assert.NotNil(t, program.New)
	}
	assert.Equal(t, []string{`arrays`, `forkjoin`, `greet`, `hello`}, names)
}

func TestPrograms_freshInstances(t *testing.T) {
	program, ok := Lookup(`hello`)
	require.True(t, ok)
	assert.NotSame(t, program.New(), program.New())
	for range 2 {
		assert.Equal(t, "0.0s Hello\n1.0s World\nfinished after 1.0s\n", run(t, program))
	}
}

func TestForkJoin_rejoinsClock(t *testing.T) {
	var out bytes.Buffer
	driver := effectrt.NewTickDriver(0)
	rt, err := effectrt.New(effectrt.WithOutput(&out), effectrt.WithTimeDriver(driver))
	require.NoError(t, err)
	f := ForkJoin().(*effectrt.Frame[forkJoinState])
	require.NoError(t, rt.Start(f))

	require.NoError(t, rt.Drain())
	assert.True(t, f.State.forked)
	assert.Equal(t, 2, driver.Pending())
	f.State.clock = effectrt.Token{}

	require.NoError(t, driver.Tick(rt))
	require.NoError(t, rt.Drain())
	assert.True(t, rt.Exited())
	assert.True(t, f.State.exited)
	assert.Equal(t, effectrt.Clock, f.State.clock)
	assert.Equal(t, "0.0s fork\n1.0s left\n1.0s right\n1.0s joined\n", out.String())
}
