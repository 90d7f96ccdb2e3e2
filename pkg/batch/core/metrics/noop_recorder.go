package metrics

import (
	"context"
	"time"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// NoOpMetricRecorder is an implementation of MetricRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

// RecordLoadStart does nothing.
func (r *NoOpMetricRecorder) RecordLoadStart(ctx context.Context, sessionID string) {}

// RecordLoadEnd does nothing.
func (r *NoOpMetricRecorder) RecordLoadEnd(ctx context.Context, sessionID string, jobsLoaded int, duration time.Duration, err error) {
}

// RecordJobParsed does nothing.
func (r *NoOpMetricRecorder) RecordJobParsed(ctx context.Context, jobName string, stepCount, stateCount, transitionCount int) {
}

// RecordStepResolved does nothing.
func (r *NoOpMetricRecorder) RecordStepResolved(ctx context.Context, jobName, stepName string, kind model.StepKind) {
}

// RecordTransitionsBuilt does nothing.
func (r *NoOpMetricRecorder) RecordTransitionsBuilt(ctx context.Context, jobName, stepName string, transitionCount int) {
}

// RecordLoadFailure does nothing.
func (r *NoOpMetricRecorder) RecordLoadFailure(ctx context.Context, jobName string, reason string) {}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// --- NoOpTracer ---

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new instance of NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

// StartLoadSpan returns the context unchanged.
func (t *NoOpTracer) StartLoadSpan(ctx context.Context, sessionID string) (context.Context, func()) {
	return ctx, func() {}
}

// StartJobSpan returns the context unchanged.
func (t *NoOpTracer) StartJobSpan(ctx context.Context, jobName string) (context.Context, func()) {
	return ctx, func() {}
}

// RecordError does nothing.
func (t *NoOpTracer) RecordError(ctx context.Context, module string, err error) {}

// RecordEvent does nothing.
func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
