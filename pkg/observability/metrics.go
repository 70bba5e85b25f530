package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/quarryworks/lode/pkg/domain"
)

// Metrics exposes excavation progress as Prometheus collectors.
type Metrics struct {
	ticks      *prometheus.CounterVec
	expansions *prometheus.CounterVec
	frames     *prometheus.CounterVec
	stackDepth prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lode_ticks_total",
				Help: "Total driver ticks by result",
			},
			[]string{"result"},
		),
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lode_expansions_total",
				Help: "Cells sensed during expansion, by outcome",
			},
			[]string{"outcome"},
		),
		frames: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lode_frames_total",
				Help: "Work frames consumed, by kind",
			},
			[]string{"kind"},
		),
		stackDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lode_stack_depth",
				Help: "Pending work frames on the excavation stack",
			},
		),
	}

	reg.MustRegister(m.ticks, m.expansions, m.frames, m.stackDepth)
	return m
}

// TickCounter returns the counter tracking ticks with the given result.
func (m *Metrics) TickCounter(result domain.Result) prometheus.Counter {
	return m.ticks.WithLabelValues(string(result))
}

// ExpansionCounter returns the counter for sensed cells, split by whether
// the cell triggered an expansion.
func (m *Metrics) ExpansionCounter(expanded bool) prometheus.Counter {
	outcome := "skipped"
	if expanded {
		outcome = "expanded"
	}
	return m.expansions.WithLabelValues(outcome)
}

// FrameCounter returns the counter for consumed frames of the given kind.
func (m *Metrics) FrameCounter(kind domain.FrameKind) prometheus.Counter {
	return m.frames.WithLabelValues(string(kind))
}

// StackDepthGauge returns the gauge tracking pending frames.
func (m *Metrics) StackDepthGauge() prometheus.Gauge {
	return m.stackDepth
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTick: func(ctx context.Context, e *domain.TickEvent) {
			m.ticks.WithLabelValues(string(e.Result)).Inc()
			m.stackDepth.Set(float64(e.Depth))
		},
		OnExpand: func(ctx context.Context, e *domain.ExpandEvent) {
			outcome := "skipped"
			if e.Expanded {
				outcome = "expanded"
			}
			m.expansions.WithLabelValues(outcome).Inc()
		},
		OnFrameDone: func(ctx context.Context, e *domain.FrameEvent) {
			m.frames.WithLabelValues(string(e.Kind)).Inc()
		},
	}
}
