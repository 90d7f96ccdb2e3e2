package configbinder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamaguri/riptide/pkg/batch/support/util/configbinder"
)

type readerSettings struct {
	InputFile      string  `yaml:"inputFile"`
	CommitInterval int     `yaml:"commitInterval"`
	HourlyRate     float64 `yaml:"hourlyRate"`
	Verbose        bool    `yaml:"verbose"`
}

func TestBindProperties(t *testing.T) {
	props := map[string]string{
		"inputFile":      "/data/timesheets.csv",
		"commitInterval": "25",
		"hourlyRate":     "24.50",
		"verbose":        "true",
	}

	var settings readerSettings
	require.NoError(t, configbinder.BindProperties(props, &settings))

	// Attribute strings bind weakly into the typed fields.
	assert.Equal(t, "/data/timesheets.csv", settings.InputFile)
	assert.Equal(t, 25, settings.CommitInterval)
	assert.Equal(t, 24.50, settings.HourlyRate)
	assert.True(t, settings.Verbose)
}

func TestBindPropertiesIgnoresUnknownKeys(t *testing.T) {
	// A step-level property bag is shared between components; keys a
	// component does not declare are ignored.
	var settings readerSettings
	require.NoError(t, configbinder.BindProperties(map[string]string{
		"inputFile":  "/data/in.csv",
		"outputFile": "/data/out.csv",
	}, &settings))

	assert.Equal(t, "/data/in.csv", settings.InputFile)
}

func TestBindPropertiesEmptyBag(t *testing.T) {
	settings := readerSettings{InputFile: "preset"}

	require.NoError(t, configbinder.BindProperties(nil, &settings))
	require.NoError(t, configbinder.BindProperties(map[string]string{}, &settings))

	// An empty bag leaves the target untouched.
	assert.Equal(t, "preset", settings.InputFile)
}

func TestBindPropertiesConversionFailure(t *testing.T) {
	var settings readerSettings
	err := configbinder.BindProperties(map[string]string{"commitInterval": "many"}, &settings)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind properties to struct readerSettings")
}
