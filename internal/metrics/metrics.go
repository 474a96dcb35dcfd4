// Package metrics records optimizer runs as prometheus metrics.
package metrics

import (
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/born-ml/minimize/internal/optim"
)

// MetricPrefix is prepended to every metric name.
const MetricPrefix = "minimize_"

// Metrics holds the run metrics on a private registry, so that several
// benchmark or tuning sessions in one process do not share counters.
type Metrics struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	fcalls     *prometheus.CounterVec
	gcalls     *prometheus.CounterVec
	iterations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	gradNorm   *prometheus.HistogramVec
}

// New creates the metrics and registers them on a new registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "runs_total",
				Help: "Number of optimizer runs by termination status",
			},
			[]string{"optimizer", "status"},
		),
		fcalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "function_calls_total",
				Help: "Number of function value evaluations",
			},
			[]string{"optimizer"},
		),
		gcalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "gradient_calls_total",
				Help: "Number of function value and gradient evaluations",
			},
			[]string{"optimizer"},
		),
		iterations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricPrefix + "iterations_total",
				Help: "Number of optimizer iterations",
			},
			[]string{"optimizer"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricPrefix + "run_duration_seconds",
				Help:    "Wall time of an optimizer run",
				Buckets: prometheus.ExponentialBuckets(1e-5, 4, 12),
			},
			[]string{"optimizer"},
		),
		gradNorm: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricPrefix + "final_gradient_norm",
				Help:    "Gradient norm at the point returned by an optimizer run",
				Buckets: []float64{1e-10, 1e-8, 1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1},
			},
			[]string{"optimizer"},
		),
	}
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRun records the outcome of one optimizer run.
func (m *Metrics) RecordRun(optimizer string, state *optim.State, elapsed time.Duration) {
	m.runs.WithLabelValues(optimizer, state.Status.String()).Inc()
	m.fcalls.WithLabelValues(optimizer).Add(float64(state.FCalls))
	m.gcalls.WithLabelValues(optimizer).Add(float64(state.GCalls))
	m.iterations.WithLabelValues(optimizer).Add(float64(state.Iterations))
	m.duration.WithLabelValues(optimizer).Observe(elapsed.Seconds())
	m.gradNorm.WithLabelValues(optimizer).Observe(state.GradNorm())
}

// WriteText writes all metrics in the prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return errors.Wrap(err, "gathering metrics")
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return errors.Wrapf(err, "writing metric %s", mf.GetName())
		}
	}
	return nil
}
