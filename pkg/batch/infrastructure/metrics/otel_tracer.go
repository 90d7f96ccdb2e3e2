package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// instrumentationName identifies the tracer and meter of this library.
const instrumentationName = "github.com/hamaguri/riptide/pkg/batch"

// serviceName is attached to exported telemetry as the service.name resource attribute.
const serviceName = "riptide"

// OpenTelemetryTracer is an implementation of metrics.Tracer exporting spans
// through an OTLP trace exporter.
type OpenTelemetryTracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewOpenTelemetryTracer builds a tracer from the tracing configuration and
// registers provider shutdown with the application lifecycle.
func NewOpenTelemetryTracer(lc fx.Lifecycle, cfg *config.Config) (*OpenTelemetryTracer, error) {
	tc := cfg.Riptide.Telemetry.Tracing

	exporter, err := newTraceExporter(tc)
	if err != nil {
		return nil, exception.NewBatchError(telemetryModule, "failed to create OTLP trace exporter", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(telemetryResource()),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(tc.SamplerRatio))),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Shutting down OTLP trace provider.")
			return provider.Shutdown(ctx)
		},
	})

	logger.Infof("OTLP trace export enabled (%s to %s).", tc.Protocol, tc.Endpoint)
	return &OpenTelemetryTracer{
		tracer:   provider.Tracer(instrumentationName),
		provider: provider,
	}, nil
}

// newTraceExporter builds the span exporter for the configured OTLP transport.
func newTraceExporter(tc config.TracingConfig) (sdktrace.SpanExporter, error) {
	ctx := context.Background()
	switch tc.Protocol {
	case config.OTLPProtocolHTTP:
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(tc.Endpoint)}
		if tc.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, opts...)
	case config.OTLPProtocolGRPC, "":
		opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(tc.Endpoint)}
		if tc.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		return otlptracegrpc.New(ctx, opts...)
	default:
		return nil, exception.NewBatchErrorf(telemetryModule, "unsupported OTLP protocol '%s'", tc.Protocol)
	}
}

// telemetryResource describes this process to the telemetry backend.
func telemetryResource() *resource.Resource {
	return resource.NewSchemaless(
		attribute.String("service.name", serviceName),
	)
}

// StartLoadSpan starts a span covering one whole load session.
func (t *OpenTelemetryTracer) StartLoadSpan(ctx context.Context, sessionID string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "riptide.definition_load",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	return ctx, func() { span.End() }
}

// StartJobSpan starts a span for the assembly of one job.
func (t *OpenTelemetryTracer) StartJobSpan(ctx context.Context, jobName string) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "riptide.job_assembly",
		trace.WithAttributes(attribute.String("job.name", jobName)))
	return ctx, func() { span.End() }
}

// RecordError records an error in the current span and marks the span as failed.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err, trace.WithAttributes(attribute.String("module", module)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent records an event in the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, anyAttribute(k, v))
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// anyAttribute converts a loosely typed event attribute to an OTel KeyValue.
func anyAttribute(key string, value interface{}) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
