package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// OTelMetricRecorder is an implementation of metrics.MetricRecorder pushing
// instruments through an OTLP metric exporter on a periodic reader.
type OTelMetricRecorder struct {
	provider *sdkmetric.MeterProvider

	loadSessions    metric.Int64Counter
	loadDuration    metric.Float64Histogram
	jobsParsed      metric.Int64Counter
	flowStates      metric.Int64Counter
	flowTransitions metric.Int64Counter
	stepsResolved   metric.Int64Counter
	stepTransitions metric.Int64Counter
	loadFailures    metric.Int64Counter
}

// NewOTelMetricRecorder builds a recorder from the metrics configuration and
// registers provider shutdown with the application lifecycle. Shutdown flushes
// any metrics the periodic reader has not exported yet.
func NewOTelMetricRecorder(lc fx.Lifecycle, cfg *config.Config) (*OTelMetricRecorder, error) {
	mc := cfg.Riptide.Telemetry.Metrics

	exporter, err := newMetricExporter(mc)
	if err != nil {
		return nil, exception.NewBatchError(telemetryModule, "failed to create OTLP metric exporter", err)
	}

	interval := time.Duration(mc.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
		sdkmetric.WithResource(telemetryResource()),
	)

	r := &OTelMetricRecorder{provider: provider}
	if err := r.initInstruments(provider.Meter(instrumentationName)); err != nil {
		return nil, exception.NewBatchError(telemetryModule, "failed to create metric instruments", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Debugf("Shutting down OTLP meter provider.")
			return provider.Shutdown(ctx)
		},
	})

	logger.Infof("OTLP metric export enabled (%s to %s, every %s).", mc.Protocol, mc.Endpoint, interval)
	return r, nil
}

// newMetricExporter builds the metric exporter for the configured OTLP transport.
func newMetricExporter(mc config.MetricsConfig) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch mc.Protocol {
	case config.OTLPProtocolHTTP:
		opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(mc.Endpoint)}
		if mc.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		return otlpmetrichttp.New(ctx, opts...)
	case config.OTLPProtocolGRPC, "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(mc.Endpoint)}
		if mc.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		return otlpmetricgrpc.New(ctx, opts...)
	default:
		return nil, exception.NewBatchErrorf(telemetryModule, "unsupported OTLP protocol '%s'", mc.Protocol)
	}
}

func (r *OTelMetricRecorder) initInstruments(meter metric.Meter) error {
	var err error
	counter := func(name, description string) metric.Int64Counter {
		c, cerr := meter.Int64Counter(name, metric.WithDescription(description))
		if cerr != nil && err == nil {
			err = cerr
		}
		return c
	}

	r.loadSessions = counter("riptide.definition.load.sessions", "Definition load sessions by outcome.")
	r.jobsParsed = counter("riptide.definition.jobs.parsed", "Job definitions assembled.")
	r.flowStates = counter("riptide.definition.flow.states", "Flow states registered, terminal states included.")
	r.flowTransitions = counter("riptide.definition.flow.transitions", "Transitions in assembled flows.")
	r.stepsResolved = counter("riptide.definition.steps.resolved", "Step declarations resolved, by resolved kind.")
	r.stepTransitions = counter("riptide.definition.step.transitions", "Outgoing transitions built per step state.")
	r.loadFailures = counter("riptide.definition.load.failures", "Failed definition loads by failing module.")

	h, herr := meter.Float64Histogram("riptide.definition.load.duration",
		metric.WithDescription("Duration of definition load sessions."),
		metric.WithUnit("s"))
	if herr != nil && err == nil {
		err = herr
	}
	r.loadDuration = h

	return err
}

// RecordLoadStart records the start of a load session.
func (r *OTelMetricRecorder) RecordLoadStart(ctx context.Context, sessionID string) {
	r.loadSessions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "started")))
}

// RecordLoadEnd records the outcome and duration of a load session.
func (r *OTelMetricRecorder) RecordLoadEnd(ctx context.Context, sessionID string, jobsLoaded int, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	r.loadSessions.Add(ctx, 1, attrs)
	r.loadDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordJobParsed records one successfully assembled job definition.
func (r *OTelMetricRecorder) RecordJobParsed(ctx context.Context, jobName string, stepCount, stateCount, transitionCount int) {
	attrs := metric.WithAttributes(attribute.String("job_name", jobName))
	r.jobsParsed.Add(ctx, 1, attrs)
	r.flowStates.Add(ctx, int64(stateCount), attrs)
	r.flowTransitions.Add(ctx, int64(transitionCount), attrs)
}

// RecordStepResolved records one resolved step declaration.
func (r *OTelMetricRecorder) RecordStepResolved(ctx context.Context, jobName, stepName string, kind model.StepKind) {
	r.stepsResolved.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job_name", jobName),
		attribute.String("kind", kind.String()),
	))
}

// RecordTransitionsBuilt records the outgoing-edge count of one step state.
func (r *OTelMetricRecorder) RecordTransitionsBuilt(ctx context.Context, jobName, stepName string, transitionCount int) {
	r.stepTransitions.Add(ctx, int64(transitionCount), metric.WithAttributes(
		attribute.String("job_name", jobName),
		attribute.String("step_name", stepName),
	))
}

// RecordLoadFailure records one failed definition load or assembly.
func (r *OTelMetricRecorder) RecordLoadFailure(ctx context.Context, jobName string, reason string) {
	r.loadFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("job_name", jobName),
		attribute.String("reason", reason),
	))
}

var _ metrics.MetricRecorder = (*OTelMetricRecorder)(nil)
