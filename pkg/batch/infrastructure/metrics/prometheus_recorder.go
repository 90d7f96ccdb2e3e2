package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.MetricRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	// Load session metrics
	loadSessionsTotal   *prometheus.CounterVec
	loadDurationSeconds *prometheus.HistogramVec

	// Definition metrics
	jobsParsedTotal      *prometheus.CounterVec
	flowStatesTotal      *prometheus.CounterVec
	flowTransitionsTotal *prometheus.CounterVec
	stepsResolvedTotal   *prometheus.CounterVec
	stepTransitionsTotal *prometheus.CounterVec
	loadFailuresTotal    *prometheus.CounterVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		loadSessionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_load_sessions_total",
			Help: "Total number of definition load sessions by outcome.",
		}, []string{"outcome"}), // outcome: started, success, failure
		loadDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "batch_definition_load_duration_seconds",
			Help:    "Duration of definition load sessions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"outcome"}),
		jobsParsedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_jobs_parsed_total",
			Help: "Total number of job definitions assembled.",
		}, []string{"job_name"}),
		flowStatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_flow_states_total",
			Help: "Total flow states registered, terminal states included.",
		}, []string{"job_name"}),
		flowTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_flow_transitions_total",
			Help: "Total transitions in assembled flows.",
		}, []string{"job_name"}),
		stepsResolvedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_steps_resolved_total",
			Help: "Total step declarations resolved, by resolved kind.",
		}, []string{"job_name", "kind"}), // kind: reference, tasklet, chunk
		stepTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_step_transitions_total",
			Help: "Total outgoing transitions built per step state.",
		}, []string{"job_name", "step_name"}),
		loadFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "batch_definition_load_failures_total",
			Help: "Total failed definition loads by failing module.",
		}, []string{"job_name", "reason"}),
	}

	// Register all metrics with the registry.
	registry.MustRegister(r.loadSessionsTotal)
	registry.MustRegister(r.loadDurationSeconds)
	registry.MustRegister(r.jobsParsedTotal)
	registry.MustRegister(r.flowStatesTotal)
	registry.MustRegister(r.flowTransitionsTotal)
	registry.MustRegister(r.stepsResolvedTotal)
	registry.MustRegister(r.stepTransitionsTotal)
	registry.MustRegister(r.loadFailuresTotal)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordLoadStart records the start of a load session.
// The session id is unbounded, so it is logged rather than used as a label.
func (r *PrometheusRecorder) RecordLoadStart(ctx context.Context, sessionID string) {
	r.loadSessionsTotal.WithLabelValues("started").Inc()
	logger.Debugf("Metrics: load session '%s' started.", sessionID)
}

// RecordLoadEnd records the outcome and duration of a load session.
func (r *PrometheusRecorder) RecordLoadEnd(ctx context.Context, sessionID string, jobsLoaded int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	r.loadSessionsTotal.WithLabelValues(outcome).Inc()
	r.loadDurationSeconds.WithLabelValues(outcome).Observe(duration.Seconds())
	logger.Debugf("Metrics: load session '%s' ended with %s. Jobs: %d, Duration: %.3fs",
		sessionID, outcome, jobsLoaded, duration.Seconds())
}

// RecordJobParsed records one successfully assembled job definition.
func (r *PrometheusRecorder) RecordJobParsed(ctx context.Context, jobName string, stepCount, stateCount, transitionCount int) {
	r.jobsParsedTotal.WithLabelValues(jobName).Inc()
	r.flowStatesTotal.WithLabelValues(jobName).Add(float64(stateCount))
	r.flowTransitionsTotal.WithLabelValues(jobName).Add(float64(transitionCount))
	// Steps are already counted one by one in RecordStepResolved, so the
	// aggregate stepCount is not added again here.
	logger.Debugf("Metrics: job '%s' parsed. Steps: %d, States: %d, Transitions: %d",
		jobName, stepCount, stateCount, transitionCount)
}

// RecordStepResolved records one resolved step declaration.
func (r *PrometheusRecorder) RecordStepResolved(ctx context.Context, jobName, stepName string, kind model.StepKind) {
	r.stepsResolvedTotal.WithLabelValues(jobName, kind.String()).Inc()
}

// RecordTransitionsBuilt records the outgoing-edge count of one step state.
func (r *PrometheusRecorder) RecordTransitionsBuilt(ctx context.Context, jobName, stepName string, transitionCount int) {
	r.stepTransitionsTotal.WithLabelValues(jobName, stepName).Add(float64(transitionCount))
}

// RecordLoadFailure records one failed definition load or assembly.
func (r *PrometheusRecorder) RecordLoadFailure(ctx context.Context, jobName string, reason string) {
	r.loadFailuresTotal.WithLabelValues(jobName, reason).Inc()
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
