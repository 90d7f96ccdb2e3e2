package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

const telemetryModule = "telemetry"

// NewMetricRecorder selects the metrics backend named by the configuration.
// The "none" backend falls back to the core NoOp recorder, so the loading
// path never has to check whether telemetry is configured.
func NewMetricRecorder(lc fx.Lifecycle, cfg *config.Config) (metrics.MetricRecorder, error) {
	switch cfg.Riptide.Telemetry.Metrics.Backend {
	case config.MetricsBackendPrometheus:
		return NewPrometheusRecorder(), nil
	case config.MetricsBackendOTLP:
		return NewOTelMetricRecorder(lc, cfg)
	case config.MetricsBackendNone, "":
		return metrics.NewNoOpMetricRecorder(), nil
	default:
		return nil, exception.NewBatchErrorf(telemetryModule, "unknown metrics backend '%s'", cfg.Riptide.Telemetry.Metrics.Backend)
	}
}

// NewTracer returns the OTLP tracer when tracing is enabled, and the core
// NoOp tracer otherwise.
func NewTracer(lc fx.Lifecycle, cfg *config.Config) (metrics.Tracer, error) {
	if !cfg.Riptide.Telemetry.Tracing.Enabled {
		return metrics.NewNoOpTracer(), nil
	}
	return NewOpenTelemetryTracer(lc, cfg)
}

// StartMetricsEndpoint serves the Prometheus registry over HTTP when the
// prometheus backend is selected. The other backends either push their own
// metrics or record nothing, so no endpoint is started for them.
func StartMetricsEndpoint(lc fx.Lifecycle, cfg *config.Config, recorder metrics.MetricRecorder) {
	pr, ok := recorder.(*PrometheusRecorder)
	if !ok {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(pr.GetRegistry(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Riptide.Telemetry.Metrics.Listen, Handler: mux}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return exception.NewBatchError(telemetryModule, "failed to bind metrics endpoint", err)
			}
			logger.Infof("Serving Prometheus metrics on %s/metrics", ln.Addr())
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Errorf("Metrics endpoint failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module is an Fx module that provides the telemetry backends selected by the
// configuration. Applications include this module instead of the core metrics
// module; the NoOp implementations stay reachable through the "none" backend
// and the tracing enabled flag.
var Module = fx.Options(
	fx.Provide(NewMetricRecorder),
	fx.Provide(NewTracer),
	fx.Invoke(StartMetricsEndpoint),
)
