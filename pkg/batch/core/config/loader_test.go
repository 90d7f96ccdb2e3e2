package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := config.NewConfig()

	assert.Equal(t, "INFO", cfg.Riptide.System.Logging.Level)
	assert.False(t, cfg.Riptide.Telemetry.Tracing.Enabled)
	assert.Equal(t, config.OTLPProtocolGRPC, cfg.Riptide.Telemetry.Tracing.Protocol)
	assert.Equal(t, "localhost:4317", cfg.Riptide.Telemetry.Tracing.Endpoint)
	assert.Equal(t, 1.0, cfg.Riptide.Telemetry.Tracing.SamplerRatio)
	assert.Equal(t, config.MetricsBackendNone, cfg.Riptide.Telemetry.Metrics.Backend)
	assert.Equal(t, ":9464", cfg.Riptide.Telemetry.Metrics.Listen)
	assert.Equal(t, 30, cfg.Riptide.Telemetry.Metrics.IntervalSeconds)
	assert.Empty(t, cfg.Riptide.Batch.JobName)
	assert.Empty(t, cfg.Riptide.Definitions.Dir)
}

func TestLoadConfigEmbeddedYAMLOverridesDefaults(t *testing.T) {
	embedded := []byte(`
riptide:
  system:
    logging:
      level: DEBUG
  definitions:
    dir: /etc/riptide/jobs
    files:
      - a.xml
      - b.xml
  telemetry:
    metrics:
      backend: prometheus
      listen: ":9999"
  batch:
    job_name: payroll
`)

	cfg, err := config.LoadConfig("", embedded)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Riptide.System.Logging.Level)
	assert.Equal(t, "/etc/riptide/jobs", cfg.Riptide.Definitions.Dir)
	assert.Equal(t, []string{"a.xml", "b.xml"}, cfg.Riptide.Definitions.Files)
	assert.Equal(t, config.MetricsBackendPrometheus, cfg.Riptide.Telemetry.Metrics.Backend)
	assert.Equal(t, ":9999", cfg.Riptide.Telemetry.Metrics.Listen)
	assert.Equal(t, "payroll", cfg.Riptide.Batch.JobName)

	// Values the YAML does not mention keep their defaults.
	assert.Equal(t, "localhost:4317", cfg.Riptide.Telemetry.Metrics.Endpoint)
	assert.Equal(t, 30, cfg.Riptide.Telemetry.Metrics.IntervalSeconds)
}

func TestLoadConfigEnvOverridesEverything(t *testing.T) {
	t.Setenv("RIPTIDE_SYSTEM_LOGGING_LEVEL", "ERROR")
	t.Setenv("RIPTIDE_TELEMETRY_TRACING_ENABLED", "true")
	t.Setenv("RIPTIDE_TELEMETRY_TRACING_SAMPLER_RATIO", "0.25")
	t.Setenv("RIPTIDE_TELEMETRY_METRICS_BACKEND", "otlp")
	t.Setenv("RIPTIDE_TELEMETRY_METRICS_INTERVAL_SECONDS", "5")
	t.Setenv("RIPTIDE_DEFINITIONS_FILES", "a.xml, b.xml")
	t.Setenv("RIPTIDE_BATCH_JOB_NAME", "nightly")

	embedded := []byte(`
riptide:
  system:
    logging:
      level: DEBUG
`)

	cfg, err := config.LoadConfig("", embedded)
	require.NoError(t, err)

	// The environment wins over the embedded YAML.
	assert.Equal(t, "ERROR", cfg.Riptide.System.Logging.Level)
	assert.True(t, cfg.Riptide.Telemetry.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Riptide.Telemetry.Tracing.SamplerRatio)
	assert.Equal(t, config.MetricsBackendOTLP, cfg.Riptide.Telemetry.Metrics.Backend)
	assert.Equal(t, 5, cfg.Riptide.Telemetry.Metrics.IntervalSeconds)
	// List values split on commas with surrounding spaces trimmed.
	assert.Equal(t, []string{"a.xml", "b.xml"}, cfg.Riptide.Definitions.Files)
	assert.Equal(t, "nightly", cfg.Riptide.Batch.JobName)
}

func TestLoadConfigDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("RIPTIDE_SYSTEM_LOGGING_LEVEL=WARN\n"), 0o644))
	// godotenv writes into the process environment without cleanup of its own.
	t.Cleanup(func() { os.Unsetenv("RIPTIDE_SYSTEM_LOGGING_LEVEL") })

	cfg, err := config.LoadConfig(envPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "WARN", cfg.Riptide.System.Logging.Level)
}

func TestLoadConfigMissingEnvFile(t *testing.T) {
	// A missing .env file is logged, not fatal.
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.env"), nil)
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Riptide.System.Logging.Level)
}

func TestLoadConfigInvalidEmbeddedYAML(t *testing.T) {
	_, err := config.LoadConfig("", []byte("\triptide: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal embedded config")
}

func TestLoadConfigInvalidEnvValue(t *testing.T) {
	t.Setenv("RIPTIDE_TELEMETRY_METRICS_INTERVAL_SECONDS", "often")

	_, err := config.LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from environment variables")
	assert.Contains(t, err.Error(), "RIPTIDE_TELEMETRY_METRICS_INTERVAL_SECONDS")
}
