package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecode(t *testing.T) {
	for _, tc := range [...]struct {
		Name   string
		Input  string
		Config Config
		Err    string
	}{
		{
			Name:   `empty`,
			Input:  ``,
			Config: Default(),
		},
		{
			Name: `full`,
			Input: `
backend: reactor
queue_capacity: 10
timer_capacity: 4
reactor_delay: 250ms
log_level: debug
metrics_addr: localhost:9090
`,
			Config: Config{
				Backend:       BackendReactor,
				QueueCapacity: 10,
				TimerCapacity: 4,
				ReactorDelay:  Duration(250 * time.Millisecond),
				LogLevel:      `debug`,
				MetricsAddr:   `localhost:9090`,
			},
		},
		{
			Name:  `partial`,
			Input: `timer_capacity: 2`,
			Config: Config{
				Backend:       BackendTick,
				TimerCapacity: 2,
				LogLevel:      `warning`,
			},
		},
		{
			Name:  `unknown backend`,
			Input: `backend: wall`,
			Err:   `config: unknown backend "wall"`,
		},
		{
			Name:  `unknown field`,
			Input: `backends: tick`,
			Err:   `field backends not found`,
		},
		{
			Name:  `negative queue capacity`,
			Input: `queue_capacity: -1`,
			Err:   `config: queue_capacity must not be negative`,
		},
		{
			Name:  `negative timer capacity`,
			Input: `timer_capacity: -1`,
			Err:   `config: timer_capacity must not be negative`,
		},
		{
			Name:  `negative delay`,
			Input: `reactor_delay: -1s`,
			Err:   `config: reactor_delay must not be negative`,
		},
		{
			Name:  `invalid delay`,
			Input: `reactor_delay: soon`,
			Err:   `config: invalid duration "soon"`,
		},
		{
			Name:  `invalid level`,
			Input: `log_level: loud`,
			Err:   `config: unknown log level "loud"`,
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			c, err := Decode(strings.NewReader(tc.Input))
			if tc.Err != `` {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.Err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Config, c)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), `effectrt.yaml`)
	require.NoError(t, os.WriteFile(path, []byte("backend: reactor\nreactor_delay: 5ms\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendReactor, c.Backend)
	assert.Equal(t, Duration(5*time.Millisecond), c.ReactorDelay)

	_, err = Load(filepath.Join(t.TempDir(), `missing.yaml`))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLevel(t *testing.T) {
	for _, level := range [...]logiface.Level{
		logiface.LevelDisabled,
		logiface.LevelError,
		logiface.LevelWarning,
		logiface.LevelInformational,
		logiface.LevelDebug,
		logiface.LevelTrace,
	} {
		v, err := ParseLevel(level.String())
		require.NoError(t, err)
		assert.Equal(t, level, v)
	}

	v, err := ParseLevel(``)
	require.NoError(t, err)
	assert.Equal(t, logiface.LevelWarning, v)

	assert.Equal(t, logiface.LevelInformational, Config{LogLevel: `info`}.Level())
}

func TestDuration_MarshalYAML(t *testing.T) {
	b, err := yaml.Marshal(Config{Backend: BackendTick, ReactorDelay: Duration(1500 * time.Millisecond)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `reactor_delay: 1.5s`)

	c, err := Decode(strings.NewReader(string(b)))
	require.NoError(t, err)
	assert.Equal(t, Duration(1500*time.Millisecond), c.ReactorDelay)
}
