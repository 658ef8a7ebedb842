// Package config loads host configuration for the effectrt command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joeycumines/logiface"
	"gopkg.in/yaml.v3"
)

// Backend names.
const (
	BackendTick    = `tick`
	BackendReactor = `reactor`
)

type (
	// Config models the YAML configuration file. Zero values select defaults.
	Config struct {
		// Backend is either "tick" (default) or "reactor".
		Backend string `yaml:"backend"`

		// QueueCapacity is the maximum number of pending continuations.
		// **Defaults to effectrt.DefaultQueueCapacity, if 0.**
		QueueCapacity int `yaml:"queue_capacity"`

		// TimerCapacity is the maximum number of pending sleeps.
		// **Defaults to effectrt.DefaultTimerCapacity, if 0.**
		TimerCapacity int `yaml:"timer_capacity"`

		// ReactorDelay is the real time each sleep takes (reactor backend).
		// **Defaults to effectrt.DefaultReactorDelay, if 0.**
		ReactorDelay Duration `yaml:"reactor_delay"`

		// LogLevel is a logiface level name, e.g. "info", "debug".
		// **Defaults to "warning".**
		LogLevel string `yaml:"log_level"`

		// MetricsAddr, if set, serves prometheus metrics on this address.
		MetricsAddr string `yaml:"metrics_addr"`
	}

	// Duration is a time.Duration that unmarshals from strings like "100ms".
	Duration time.Duration
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Backend:  BackendTick,
		LogLevel: logiface.LevelWarning.String(),
	}
}

// Load reads a YAML config file, layered over [Default].
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads YAML from r, layered over [Default]. An empty document yields
// the defaults.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendTick, BackendReactor:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.QueueCapacity < 0 {
		return errors.New("config: queue_capacity must not be negative")
	}
	if c.TimerCapacity < 0 {
		return errors.New("config: timer_capacity must not be negative")
	}
	if c.ReactorDelay < 0 {
		return errors.New("config: reactor_delay must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() logiface.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps a level keyword (as returned by logiface.Level.String) to
// its level. The empty string maps to warning.
func ParseLevel(s string) (logiface.Level, error) {
	if s == `` {
		return logiface.LevelWarning, nil
	}
	for _, level := range [...]logiface.Level{
		logiface.LevelDisabled,
		logiface.LevelEmergency,
		logiface.LevelAlert,
		logiface.LevelCritical,
		logiface.LevelError,
		logiface.LevelWarning,
		logiface.LevelNotice,
		logiface.LevelInformational,
		logiface.LevelDebug,
		logiface.LevelTrace,
	} {
		if level.String() == s {
			return level, nil
		}
	}
	return logiface.LevelDisabled, fmt.Errorf("config: unknown log level %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}
