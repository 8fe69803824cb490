// Package metrics records capability calls and workflow transitions in a
// Prometheus registry owned by the caller.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jobmatch"

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder collects client-side metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	CapabilityCalls    *prometheus.CounterVec
	CapabilityDuration *prometheus.HistogramVec
	Transitions        *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		CapabilityCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "capability_calls_total",
				Help:      "Total number of remote capability calls",
			},
			[]string{"capability", "outcome"},
		),
		CapabilityDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "capability_call_duration_seconds",
				Help:      "Duration of remote capability calls in seconds",
				Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"capability"},
		),
		Transitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "workflow_transitions_total",
				Help:      "Total number of workflow state transitions",
			},
			[]string{"workflow", "state"},
		),
	}
}

// ObserveCall records one capability call.
func (r *Recorder) ObserveCall(capability string, started time.Time, err error) {
	if r == nil {
		return
	}

	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}

	r.CapabilityCalls.WithLabelValues(capability, outcome).Inc()
	r.CapabilityDuration.WithLabelValues(capability).Observe(time.Since(started).Seconds())
}

// Transition records a workflow entering state.
func (r *Recorder) Transition(workflow, state string) {
	if r == nil {
		return
	}
	r.Transitions.WithLabelValues(workflow, state).Inc()
}

// WriteTextfile writes all metrics in the text exposition format, suitable for
// the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
