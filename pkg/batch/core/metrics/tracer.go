package metrics

import (
	"context"
)

// Tracer is an abstract interface for distributed tracing of configuration
// loading. This interface provides functionality to integrate with tracing
// systems like OpenTelemetry, enabling visualization of load sessions and the
// jobs assembled within them.
type Tracer interface {
	// StartLoadSpan starts a Span covering one whole load session.
	//
	// ctx: The parent context.
	// sessionID: The id of the configuration session being traced.
	//
	// Returns: A context with the new Span set, and a function to end the Span.
	//          It is recommended to call the returned function in a defer statement.
	StartLoadSpan(ctx context.Context, sessionID string) (context.Context, func())

	// StartJobSpan starts a Span for the assembly of one job.
	//
	// ctx: The parent context (typically a context with a load Span).
	// jobName: The name of the job being assembled.
	//
	// Returns: A context with the new Span set, and a function to end the Span.
	//          It is recommended to call the returned function in a defer statement.
	StartJobSpan(ctx context.Context, jobName string) (context.Context, func())

	// RecordError records an error in the current Span and marks the Span as failed.
	//
	// ctx: The context with the current Span.
	// module: The name of the module where the error occurred (e.g., "jobxml", "assembler").
	// err: The error to record.
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records an event in the current Span.
	//
	// ctx: The context with the current Span.
	// name: The name of the event (e.g., "definition_loaded", "job_registered").
	// attributes: Additional attributes to associate with the event.
	//             Example: `map[string]interface{}{"job_name": "payroll", "steps": 4}`
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
