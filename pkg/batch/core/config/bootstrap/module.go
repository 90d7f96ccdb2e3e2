package bootstrap

import (
	"go.uber.org/fx"

	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
)

// Module provides bootstrap-related components to Fx.
var Module = fx.Options(
	fx.Provide(NewBatchInitializer),   // Provides the BatchInitializer.
	fx.Invoke(ApplyLoggingConfigHook), // Applies the configured log level.
	fx.Invoke(LoadJobDefinitionsHook), // Registers a lifecycle hook to load job definitions.

	// Registries and the JobFactory the load hook drives.
	support.Module,
)
