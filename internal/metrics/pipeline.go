package metrics

import (
	"time"

	"github.com/goodnatureofminers/regtest-walkthrough/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineStepsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "steps_total",
		Help:      "Count of executed walkthrough steps.",
	}, []string{"step", "network", "status"})
	pipelineStepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "step_duration_seconds",
		Help:      "Duration of walkthrough steps.",
		Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"step", "network", "status"})
)

// Pipeline tracks metrics for walkthrough steps.
type Pipeline struct {
	network model.Network
}

// NewPipeline constructs a step metrics collector.
func NewPipeline(network model.Network) *Pipeline {
	if network == "" {
		network = "unknown"
	}
	return &Pipeline{network: network}
}

// ObserveStep records the outcome and duration of one step.
func (m Pipeline) ObserveStep(step string, err error, started time.Time) {
	status := statusOf(err)
	pipelineStepsTotal.WithLabelValues(step, string(m.network), status).Inc()
	pipelineStepDuration.WithLabelValues(step, string(m.network), status).Observe(time.Since(started).Seconds())
}
