package logger

import "go.uber.org/fx"

// Module routes Fx's own events through the toolkit logger so application
// logs and dependency-injection logs share one output.
var Module = fx.Options(
	fx.WithLogger(NewFxLoggerAdapter),
)
