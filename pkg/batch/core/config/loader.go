package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// Package config provides utilities for loading and managing application configuration
// from various sources, including YAML files and environment variables.

const moduleName = "config"

// loadConfig loads configuration from a file and environment variables.
// Precedence, lowest to highest: NewConfig defaults, embedded YAML,
// environment variables.
func loadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			logger.Warnf(".env file (%s) not found or could not be loaded: %v", envFilePath, err)
		}
	} else {
		if err := godotenv.Load(); err != nil {
			logger.Debugf(".env file not found or could not be loaded: %v", err)
		}
	}

	cfg := NewConfig()

	// Parse the embedded YAML into its own Config so typed values land
	// correctly, then merge the non-zero values over the defaults.
	var yamlConfig Config
	if err := yaml.Unmarshal(embeddedConfig, &yamlConfig); err != nil {
		return nil, exception.NewBatchError(moduleName, "failed to unmarshal embedded config", err)
	}
	mergeConfig(cfg, &yamlConfig)

	// Environment variables override everything below them.
	if err := loadStructFromEnv(reflect.ValueOf(cfg).Elem(), ""); err != nil {
		return nil, exception.NewBatchError(moduleName, "failed to load config from environment variables", err)
	}
	return cfg, nil
}

// LoadConfig loads configuration from configuration files and environment variables.
// This function is expected to be called only once during application startup.
func LoadConfig(envFilePath string, embeddedConfig EmbeddedConfig) (*Config, error) {
	return loadConfig(envFilePath, embeddedConfig)
}

// mergeConfig performs a deep merge from sourceConfig into destConfig.
// Values in sourceConfig overwrite corresponding values in destConfig when
// they are not zero values for their type.
func mergeConfig(destConfig, sourceConfig *Config) {
	mergeRiptideConfig(&destConfig.Riptide, &sourceConfig.Riptide)
}

// mergeRiptideConfig merges source into dest.
func mergeRiptideConfig(dest, source *RiptideConfig) {
	mergeSystemConfig(&dest.System, &source.System)
	mergeDefinitionsConfig(&dest.Definitions, &source.Definitions)
	mergeTelemetryConfig(&dest.Telemetry, &source.Telemetry)

	if source.Batch.JobName != "" {
		dest.Batch.JobName = source.Batch.JobName
	}
}

// mergeSystemConfig merges source into dest.
func mergeSystemConfig(dest, source *SystemConfig) {
	if source.Logging.Level != "" {
		dest.Logging.Level = source.Logging.Level
	}
}

// mergeDefinitionsConfig merges source into dest.
func mergeDefinitionsConfig(dest, source *DefinitionsConfig) {
	if source.Dir != "" {
		dest.Dir = source.Dir
	}
	if source.Files != nil {
		dest.Files = source.Files
	}
}

// mergeTelemetryConfig merges source into dest.
func mergeTelemetryConfig(dest, source *TelemetryConfig) {
	if source.Tracing.Enabled {
		dest.Tracing.Enabled = true
	}
	if source.Tracing.Protocol != "" {
		dest.Tracing.Protocol = source.Tracing.Protocol
	}
	if source.Tracing.Endpoint != "" {
		dest.Tracing.Endpoint = source.Tracing.Endpoint
	}
	if source.Tracing.Insecure {
		dest.Tracing.Insecure = true
	}
	if source.Tracing.SamplerRatio != 0 {
		dest.Tracing.SamplerRatio = source.Tracing.SamplerRatio
	}

	if source.Metrics.Backend != "" {
		dest.Metrics.Backend = source.Metrics.Backend
	}
	if source.Metrics.Listen != "" {
		dest.Metrics.Listen = source.Metrics.Listen
	}
	if source.Metrics.Protocol != "" {
		dest.Metrics.Protocol = source.Metrics.Protocol
	}
	if source.Metrics.Endpoint != "" {
		dest.Metrics.Endpoint = source.Metrics.Endpoint
	}
	if source.Metrics.Insecure {
		dest.Metrics.Insecure = true
	}
	if source.Metrics.IntervalSeconds != 0 {
		dest.Metrics.IntervalSeconds = source.Metrics.IntervalSeconds
	}
}

// loadStructFromEnv recursively loads configuration values into a struct from
// environment variables. It uses the "yaml" tag to determine the environment
// variable name, e.g. RIPTIDE_SYSTEM_LOGGING_LEVEL.
func loadStructFromEnv(val reflect.Value, prefix string) error {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)
		yamlTag := fieldType.Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		envVarName := strings.ToUpper(prefix + yamlTag)

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field, envVarName+"_"); err != nil {
				return err
			}
			continue
		}

		envValue, exists := os.LookupEnv(envVarName)
		if !exists {
			continue
		}

		if err := setField(field, envValue); err != nil {
			return fmt.Errorf("failed to set field '%s' from env var '%s': %w", fieldType.Name, envVarName, err)
		}
	}
	return nil
}

// setField sets the value of a reflect.Value field based on its kind.
// It handles string, slice-of-string, int, float, and bool types.
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		field.Set(reflect.ValueOf(parts))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(intValue)
	case reflect.Float64, reflect.Float32:
		floatValue, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolValue)
	}
	return nil
}
