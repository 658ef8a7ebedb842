package effectrt

import (
	"errors"
	"io"
	"time"

	"github.com/joeycumines/logiface"
)

// runtimeOptions holds configuration options for Runtime creation.
type runtimeOptions struct {
	driver        TimeDriver
	output        io.Writer
	logger        *logiface.Logger[logiface.Event]
	metrics       *Metrics
	duplicateLogs map[time.Duration]int
	queueCapacity int
}

// Option configures a Runtime instance.
type Option interface {
	applyRuntime(*runtimeOptions) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyRuntimeFunc func(*runtimeOptions) error
}

func (o *optionImpl) applyRuntime(opts *runtimeOptions) error {
	return o.applyRuntimeFunc(opts)
}

// WithTimeDriver selects the time-advancement backend, e.g. a [*TickDriver]
// or a [*ReactorDriver]. Each driver must only be used by a single Runtime.
// Defaults to a new TickDriver, with [DefaultTimerCapacity].
func WithTimeDriver(driver TimeDriver) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if driver == nil {
			return errors.New("effectrt: nil time driver")
		}
		opts.driver = driver
		return nil
	}}
}

// WithQueueCapacity sets the maximum number of pending continuations.
// Defaults to [DefaultQueueCapacity].
func WithQueueCapacity(capacity int) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if capacity <= 0 {
			return errors.New("effectrt: queue capacity must be positive")
		}
		opts.queueCapacity = capacity
		return nil
	}}
}

// WithOutput sets the writer receiving print output, and the final summary
// line. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		if w == nil {
			return errors.New("effectrt: nil output writer")
		}
		opts.output = w
		return nil
	}}
}

// WithLogger attaches a structured logger. Logging is disabled by default.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.logger = logger
		return nil
	}}
}

// WithMetrics attaches prometheus collectors, see [NewMetrics].
func WithMetrics(metrics *Metrics) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.metrics = metrics
		return nil
	}}
}

// WithDuplicateLogRates sets the rate limits applied to duplicate-schedule
// diagnostics, per continuation type, in the format accepted by
// catrate.NewLimiter. An empty map disables rate limiting.
// Defaults to [DefaultDuplicateLogRates].
func WithDuplicateLogRates(rates map[time.Duration]int) Option {
	return &optionImpl{func(opts *runtimeOptions) error {
		opts.duplicateLogs = rates
		return nil
	}}
}

// resolveOptions applies Option instances to runtimeOptions.
func resolveOptions(opts []Option) (*runtimeOptions, error) {
	cfg := &runtimeOptions{
		queueCapacity: DefaultQueueCapacity,
		duplicateLogs: DefaultDuplicateLogRates,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyRuntime(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
