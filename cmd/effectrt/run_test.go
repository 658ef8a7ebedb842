package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/joeycumines/go-effectrt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRun(t *testing.T) {
	for _, tc := range [...]struct {
		Name string
		Args []string
		Out  string
	}{
		{
			Name: `hello tick`,
			Args: []string{`run`, `hello`},
			Out:  "0.0s Hello\n1.0s World\nfinished after 1.0s\n",
		},
		{
			Name: `hello reactor`,
			Args: []string{`run`, `hello`, `--backend`, `reactor`, `--reactor-delay`, `1ms`},
			Out:  "0.0s Hello\n1.0s World\nfinished after 1.0s\n",
		},
		{
			Name: `greet`,
			Args: []string{`run`, `greet`, `--queue-capacity`, `1`},
			Out:  "0.0s Hello, World\n0.0s length 12\nfinished after 0.0s\n",
		},
		{
			Name: `arrays`,
			Args: []string{`run`, `arrays`, `--timer-capacity`, `1`},
			Out:  "0.0s [0, 1]\n1.0s [0, 1, 4, 9]\n2.0s [0, 1, 4, 9, 16, 25]\n2.0s length 6\nfinished after 2.0s\n",
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			out, _, err := execute(t, tc.Args...)
			require.NoError(t, err)
			assert.Equal(t, tc.Out, out)
		})
	}
}

func TestRun_fatal(t *testing.T) {
	// forkjoin needs two timers
	for _, backend := range [...]string{`tick`, `reactor`} {
		t.Run(backend, func(t *testing.T) {
			out, stderr, err := execute(t, `run`, `forkjoin`, `--timer-capacity`, `1`, `--backend`, backend, `--reactor-delay`, `1ms`)
			require.ErrorIs(t, err, effectrt.ErrCapacityExceeded)
			assert.Equal(t, "0.0s fork\n", out)
			assert.Contains(t, stderr, `effectrt: fatal`)
		})
	}
}

func TestRun_logLevel(t *testing.T) {
	_, stderr, err := execute(t, `run`, `hello`, `--log-level`, `info`)
	require.NoError(t, err)
	assert.Contains(t, stderr, `effectrt: starting`)
	assert.Contains(t, stderr, `effectrt: finished`)

	_, stderr, err = execute(t, `run`, `hello`)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRun_config(t *testing.T) {
	path := filepath.Join(t.TempDir(), `effectrt.yaml`)
	require.NoError(t, os.WriteFile(path, []byte("backend: reactor\nreactor_delay: 1ms\nlog_level: debug\n"), 0o600))

	out, stderr, err := execute(t, `run`, `hello`, `--config`, path)
	require.NoError(t, err)
	assert.Equal(t, "0.0s Hello\n1.0s World\nfinished after 1.0s\n", out)
	assert.Contains(t, stderr, `effectrt: reactor started`)

	// flags override the file
	_, stderr, err = execute(t, `run`, `hello`, `--config`, path, `--backend`, `tick`, `--log-level`, `err`)
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestRun_metrics(t *testing.T) {
	_, stderr, err := execute(t, `run`, `hello`, `--metrics-addr`, `127.0.0.1:0`, `--log-level`, `info`)
	require.NoError(t, err)
	assert.Contains(t, stderr, `effectrt: serving metrics`)
}

func TestRun_errors(t *testing.T) {
	for _, tc := range [...]struct {
		Name string
		Args []string
		Err  string
	}{
		{`unknown program`, []string{`run`, `nope`}, `effectrt: unknown program "nope" (see: effectrt programs)`},
		{`no program`, []string{`run`}, `accepts 1 arg(s), received 0`},
		{`bad backend`, []string{`run`, `hello`, `--backend`, `wall`}, `config: unknown backend "wall"`},
		{`bad level`, []string{`run`, `hello`, `--log-level`, `loud`}, `config: unknown log level "loud"`},
		{`missing config`, []string{`run`, `hello`, `--config`, filepath.Join(t.TempDir(), `missing.yaml`)}, `no such file or directory`},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			_, _, err := execute(t, tc.Args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.Err)
		})
	}
}

func TestPrograms(t *testing.T) {
	out, _, err := execute(t, `programs`)
	require.NoError(t, err)
	assert.Equal(t, ""+
		"arrays    append to a growing array, render it\n"+
		"forkjoin  fork the clock, sleep in two branches, join\n"+
		"greet     read-line, concat, copy, length\n"+
		"hello     print, sleep, print, exit\n", out)
}
