package effectrt

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the runtime's prometheus collectors. A nil *Metrics is valid,
// and records nothing.
//
// One Metrics value may be shared by several runtimes (e.g. successive runs in
// a long-lived host), in which case the counters accumulate.
type Metrics struct {
	Scheduled     prometheus.Counter
	Elided        prometheus.Counter
	Resumed       prometheus.Counter
	TimersFired   prometheus.Counter
	Ticks         prometheus.Counter
	PendingTimers prometheus.Gauge
	LogicalTime   prometheus.Gauge
}

// NewMetrics constructs and registers the collectors. If reg is nil, the
// collectors are created but not registered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	const namespace = `effectrt`
	m := &Metrics{
		Scheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      `scheduled_total`,
			Help:      `Continuations appended to the closure queue.`,
		}),
		Elided: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      `elided_total`,
			Help:      `Duplicate schedule calls that were ignored.`,
		}),
		Resumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      `resumed_total`,
			Help:      `Continuations resumed by a drain.`,
		}),
		TimersFired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      `timers_fired_total`,
			Help:      `Sleep requests that completed.`,
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      `ticks_total`,
			Help:      `Discrete time advancements.`,
		}),
		PendingTimers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      `pending_timers`,
			Help:      `Sleep requests not yet fired.`,
		}),
		LogicalTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      `logical_time_seconds`,
			Help:      `Current logical time of the most recently advanced runtime.`,
		}),
	}
	if reg != nil {
		for _, c := range m.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (x *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		x.Scheduled,
		x.Elided,
		x.Resumed,
		x.TimersFired,
		x.Ticks,
		x.PendingTimers,
		x.LogicalTime,
	}
}

func (x *Metrics) scheduled() {
	if x != nil {
		x.Scheduled.Inc()
	}
}

func (x *Metrics) elided() {
	if x != nil {
		x.Elided.Inc()
	}
}

func (x *Metrics) resumed() {
	if x != nil {
		x.Resumed.Inc()
	}
}

func (x *Metrics) timerFired() {
	if x != nil {
		x.TimersFired.Inc()
	}
}

func (x *Metrics) tick() {
	if x != nil {
		x.Ticks.Inc()
	}
}

func (x *Metrics) pendingTimers(n int) {
	if x != nil {
		x.PendingTimers.Set(float64(n))
	}
}

func (x *Metrics) logicalTime(t float64) {
	if x != nil {
		x.LogicalTime.Set(t)
	}
}
