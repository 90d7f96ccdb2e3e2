package config

// Package config provides structures and utilities for managing application configuration.

// EmbeddedConfig holds the content of the configuration file, typically passed from main.go.
// This is used when loading configuration from an embedded source (e.g., a compiled binary).
type EmbeddedConfig []byte

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	// Logging is the logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// DefinitionsConfig names the job definition sources loaded at startup, in
// addition to any definitions embedded in the binary.
type DefinitionsConfig struct {
	// Dir is a directory whose *.xml files are loaded. Empty disables the directory source.
	Dir string `yaml:"dir"`
	// Files lists individual definition files to load.
	Files []string `yaml:"files"`
}

// TracingConfig holds the distributed tracing settings.
type TracingConfig struct {
	// Enabled turns span export on.
	Enabled bool `yaml:"enabled"`
	// Protocol selects the OTLP transport: "grpc" or "http".
	Protocol string `yaml:"protocol"`
	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string `yaml:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`
	// SamplerRatio is the trace sampling ratio in [0, 1].
	SamplerRatio float64 `yaml:"sampler_ratio"`
}

// MetricsConfig holds the metrics backend settings.
type MetricsConfig struct {
	// Backend selects the recorder implementation: "prometheus", "otlp", or "none".
	Backend string `yaml:"backend"`
	// Listen is the address the Prometheus scrape endpoint binds to.
	Listen string `yaml:"listen"`
	// Protocol selects the OTLP transport: "grpc" or "http".
	Protocol string `yaml:"protocol"`
	// Endpoint is the OTLP collector endpoint (host:port).
	Endpoint string `yaml:"endpoint"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`
	// IntervalSeconds is the OTLP export interval.
	IntervalSeconds int `yaml:"interval_seconds"`
}

// TelemetryConfig groups the tracing and metrics settings.
type TelemetryConfig struct {
	// Tracing is the distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`
	// Metrics is the metrics backend configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// BatchConfig holds settings consumed by the example applications.
type BatchConfig struct {
	// JobName is the job an application runner selects by default.
	JobName string `yaml:"job_name"`
}

// RiptideConfig holds all configuration under the "riptide" top-level key.
type RiptideConfig struct {
	// System contains system-wide configurations.
	System SystemConfig `yaml:"system"`
	// Definitions names the job definition sources.
	Definitions DefinitionsConfig `yaml:"definitions"`
	// Telemetry contains the tracing and metrics configurations.
	Telemetry TelemetryConfig `yaml:"telemetry"`
	// Batch contains application-level batch settings.
	Batch BatchConfig `yaml:"batch"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	// Riptide contains the top-level configuration of the toolkit.
	Riptide RiptideConfig `yaml:"riptide"`
}

// Metrics backend names accepted by TelemetryConfig.
const (
	MetricsBackendPrometheus = "prometheus"
	MetricsBackendOTLP       = "otlp"
	MetricsBackendNone       = "none"
)

// OTLP transport names accepted by TracingConfig and MetricsConfig.
const (
	OTLPProtocolGRPC = "grpc"
	OTLPProtocolHTTP = "http"
)

// NewConfig returns a Config populated with the defaults applied before the
// embedded YAML and environment overrides.
func NewConfig() *Config {
	return &Config{
		Riptide: RiptideConfig{
			System: SystemConfig{
				Logging: LoggingConfig{Level: "INFO"},
			},
			Telemetry: TelemetryConfig{
				Tracing: TracingConfig{
					Enabled:      false,
					Protocol:     OTLPProtocolGRPC,
					Endpoint:     "localhost:4317",
					Insecure:     true,
					SamplerRatio: 1.0,
				},
				Metrics: MetricsConfig{
					Backend:         MetricsBackendNone,
					Listen:          ":9464",
					Protocol:        OTLPProtocolGRPC,
					Endpoint:        "localhost:4317",
					Insecure:        true,
					IntervalSeconds: 30,
				},
			},
		},
	}
}
