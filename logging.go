package effectrt

import (
	"fmt"
	"time"

	catrate "github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// DefaultDuplicateLogRates bounds how often duplicate-schedule diagnostics are
// logged, per continuation type.
var DefaultDuplicateLogRates = map[time.Duration]int{
	time.Second: 5,
	time.Minute: 50,
}

// runtimeLogger wraps the configured logiface logger. A nil logger (the
// default) disables logging; logiface builders are nil safe.
type runtimeLogger struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

func newRuntimeLogger(logger *logiface.Logger[logiface.Event], rates map[time.Duration]int) *runtimeLogger {
	x := runtimeLogger{logger: logger}
	if logger != nil && len(rates) != 0 {
		x.limiter = catrate.NewLimiter(rates)
	}
	return &x
}

func (x *runtimeLogger) duplicate(c Continuation, pending int) {
	if x == nil {
		return
	}
	b := x.logger.Notice()
	if !b.Enabled() {
		return
	}
	if x.limiter != nil {
		if _, ok := x.limiter.Allow(fmt.Sprintf(`%T`, c)); !ok {
			b.Release()
			return
		}
	}
	b.Str(`continuation`, fmt.Sprintf(`%T`, c)).
		Str(`id`, fmt.Sprintf(`%p`, c)).
		Int(`pending`, pending).
		Log(`effectrt: eliding duplicated call`)
}

func (x *runtimeLogger) fatal(err error, now float64) {
	if x == nil {
		return
	}
	x.logger.Err().
		Err(err).
		Float64(`time`, now).
		Log(`effectrt: fatal`)
}

func (x *runtimeLogger) finished(now float64, resumed uint64) {
	if x == nil {
		return
	}
	x.logger.Info().
		Float64(`time`, now).
		Uint64(`resumed`, resumed).
		Log(`effectrt: finished`)
}

func (x *runtimeLogger) debug() *logiface.Builder[logiface.Event] {
	if x == nil {
		return nil
	}
	return x.logger.Debug()
}
