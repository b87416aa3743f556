package observability

import (
	"context"
	"time"

	"github.com/aretw0/lockstep/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of one engine.
type Metrics struct {
	Ticks        prometheus.Counter
	Faults       prometheus.Counter
	Overruns     prometheus.Counter
	Emitted      prometheus.Counter
	Delivered    prometheus.Counter
	Transitions  *prometheus.CounterVec
	Dropped      *prometheus.CounterVec
	TickDuration prometheus.Histogram
	LastTick     prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// It panics if a collector with the same name is already registered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockstep_ticks_total",
			Help: "Total number of committed ticks",
		}),
		Faults: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockstep_tick_faults_total",
			Help: "Total number of ticks aborted by an action fault",
		}),
		Overruns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockstep_tick_overruns_total",
			Help: "Total number of ticks that took longer than the tick interval",
		}),
		Emitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockstep_emitted_events_total",
			Help: "Total number of events emitted by components",
		}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lockstep_delivered_events_total",
			Help: "Total number of events handed to outbound adapters",
		}),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockstep_transitions_total",
				Help: "Total number of fired rules",
			},
			[]string{"component", "from", "to"},
		),
		Dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lockstep_dropped_events_total",
				Help: "Total number of events or messages discarded without error",
			},
			[]string{"component", "reason"},
		),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lockstep_tick_duration_seconds",
			Help:    "Wall time spent computing a tick",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		LastTick: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lockstep_last_tick",
			Help: "Number of the last committed tick",
		}),
	}

	reg.MustRegister(
		m.Ticks, m.Faults, m.Overruns, m.Emitted, m.Delivered,
		m.Transitions, m.Dropped, m.TickDuration, m.LastTick,
	)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(_ context.Context, e *domain.TickEvent) {
			m.Ticks.Inc()
			m.Emitted.Add(float64(e.Emitted))
			m.Delivered.Add(float64(e.Delivered))
			m.TickDuration.Observe(e.Duration.Seconds())
			m.LastTick.Set(float64(e.Tick))
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.Component, string(e.From), string(e.To)).Inc()
		},
		OnDrop: m.Drop,
		OnFault: func(context.Context, *domain.FaultEvent) {
			m.Faults.Inc()
		},
	}
}

// Drop counts one discarded event. It is also used as the bridge drop hook.
func (m *Metrics) Drop(_ context.Context, e *domain.DropEvent) {
	m.Dropped.WithLabelValues(e.Component, e.Reason).Inc()
}

// Overrun counts a tick that exceeded the interval.
func (m *Metrics) Overrun(uint64, time.Duration) {
	m.Overruns.Inc()
}
