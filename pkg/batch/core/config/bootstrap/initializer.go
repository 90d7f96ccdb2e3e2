package bootstrap

import (
	"context"

	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// BatchInitializer is responsible for initializing batch components, such as
// loading the embedded job definitions.
type BatchInitializer struct {
	jobBytes jobxml.JobDefinitionBytes
}

// NewBatchInitializer creates a new instance of BatchInitializer.
func NewBatchInitializer(jobBytes jobxml.JobDefinitionBytes) *BatchInitializer {
	return &BatchInitializer{
		jobBytes: jobBytes,
	}
}

// GetJobDefinitionBytes returns the embedded job definition byte slice.
func (i *BatchInitializer) GetJobDefinitionBytes() jobxml.JobDefinitionBytes {
	return i.jobBytes
}

// ApplyLoggingConfigHook applies the logging level based on the configuration.
func ApplyLoggingConfigHook(cfg *config.Config) {
	if cfg.Riptide.System.Logging.Level != "" {
		logger.SetLogLevel(cfg.Riptide.System.Logging.Level)
		logger.Infof("Log level set to: %s", cfg.Riptide.System.Logging.Level)
	}
}

// LoadJobDefinitionsHook registers an Fx lifecycle hook that loads job
// definitions from the embedded XML and from any configured definition paths.
// Defined as a named function for use with fx.Invoke.
func LoadJobDefinitionsHook(lc fx.Lifecycle, initializer *BatchInitializer, factory *support.JobFactory) {
	lc.Append(fx.Hook{
		OnStart: onStartLoadJobDefinitions(initializer, factory),
	})
}

// onStartLoadJobDefinitions is a helper function for the OnStart hook that
// loads every configured source of job definitions in a fixed order: the
// embedded bytes first, then the definitions directory, then the listed files.
func onStartLoadJobDefinitions(initializer *BatchInitializer, factory *support.JobFactory) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Infof("Loading job definitions.")

		if data := initializer.GetJobDefinitionBytes(); len(data) > 0 {
			if err := factory.LoadFromBytes(ctx, data); err != nil {
				return err
			}
		}

		defs := factory.GetConfig().Riptide.Definitions
		if defs.Dir != "" {
			if err := factory.LoadFromDir(ctx, defs.Dir); err != nil {
				return err
			}
		}
		if len(defs.Files) > 0 {
			if err := factory.LoadFromFiles(ctx, defs.Files); err != nil {
				return err
			}
		}

		count := factory.Definitions().Count()
		if count == 0 {
			logger.Warnf("No job definitions were loaded.")
			return nil
		}
		logger.Infof("Loaded %d job definition(s): %v", count, factory.Definitions().Jobs())
		return nil
	}
}
