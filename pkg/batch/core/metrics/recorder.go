package metrics

import (
	"context"
	"time"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// MetricRecorder is an abstract interface for recording metrics about job
// definition loading and assembly.
//
// This interface provides a standardized way to record load sessions, parsed
// jobs, resolved steps, and built transitions. It facilitates integration
// with different metrics backends (e.g., Prometheus, OpenTelemetry Metrics).
type MetricRecorder interface {
	// RecordLoadStart records the start of a load session.
	//
	// ctx: The context for the operation.
	// sessionID: The id of the configuration session.
	RecordLoadStart(ctx context.Context, sessionID string)

	// RecordLoadEnd records the end of a load session.
	//
	// ctx: The context for the operation.
	// sessionID: The id of the configuration session.
	// jobsLoaded: The number of jobs the session registered.
	// duration: How long the whole load took.
	// err: The terminal error of the session, or nil on success.
	RecordLoadEnd(ctx context.Context, sessionID string, jobsLoaded int, duration time.Duration, err error)

	// RecordJobParsed records one successfully assembled job.
	//
	// ctx: The context for the operation.
	// jobName: The name of the assembled job.
	// stepCount: The number of resolved steps.
	// stateCount: The number of registered states, terminal states included.
	// transitionCount: The number of transitions in the assembled graph.
	RecordJobParsed(ctx context.Context, jobName string, stepCount, stateCount, transitionCount int)

	// RecordStepResolved records one step resolved to its concrete form.
	//
	// ctx: The context for the operation.
	// jobName: The name of the owning job.
	// stepName: The name of the resolved step.
	// kind: The concrete form the step resolved to.
	RecordStepResolved(ctx context.Context, jobName, stepName string, kind model.StepKind)

	// RecordTransitionsBuilt records the outgoing-edge count of one step state.
	//
	// ctx: The context for the operation.
	// jobName: The name of the owning job.
	// stepName: The name of the step state.
	// transitionCount: The number of outgoing transitions built for the step.
	RecordTransitionsBuilt(ctx context.Context, jobName, stepName string, transitionCount int)

	// RecordLoadFailure records one failed definition load or assembly.
	//
	// ctx: The context for the operation.
	// jobName: The name of the failing job, or the file path when no job id was decoded.
	// reason: A low-cardinality failure label, typically the BatchError module tag.
	RecordLoadFailure(ctx context.Context, jobName string, reason string)
}
