package main

import (
	"context"

	item "github.com/hamaguri/riptide/pkg/batch/component/item"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	bootstrap "github.com/hamaguri/riptide/pkg/batch/core/config/bootstrap"
	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	inframetrics "github.com/hamaguri/riptide/pkg/batch/infrastructure/metrics"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	app "github.com/hamaguri/riptide/example/payroll/internal/app"
	payprocessor "github.com/hamaguri/riptide/example/payroll/internal/step/processor"
	payreader "github.com/hamaguri/riptide/example/payroll/internal/step/reader"
	paytasklet "github.com/hamaguri/riptide/example/payroll/internal/step/tasklet"
	paywriter "github.com/hamaguri/riptide/example/payroll/internal/step/writer"

	"go.uber.org/fx"
)

// GetApplicationOptions builds the uber-fx options of the payroll application
// and returns them as a slice. It must be defined before the fx.New call.
func GetApplicationOptions(appCtx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig, embeddedJob jobxml.JobDefinitionBytes) []fx.Option {
	cfg, err := config.LoadConfig(envFilePath, embeddedConfig)
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetLogLevel(cfg.Riptide.System.Logging.Level)
	logger.Infof("Log level set to: %s", cfg.Riptide.System.Logging.Level)

	var options []fx.Option

	options = append(options, fx.Supply(
		embeddedConfig,
		embeddedJob,
		fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
		cfg,
		fx.Annotate(appCtx, fx.As(new(context.Context)), fx.ResultTags(`name:"appCtx"`)),
	))
	options = append(options, logger.Module)
	options = append(options, config.Module)
	options = append(options, inframetrics.Module)
	options = append(options, bootstrap.Module)
	options = append(options, item.Module)
	options = append(options, payreader.Module)
	options = append(options, payprocessor.Module)
	options = append(options, paywriter.Module)
	options = append(options, paytasklet.Module)
	options = append(options, fx.Invoke(fx.Annotate(app.StartPayrollRun, fx.ParamTags("", "", "", "", `name:"appCtx"`))))

	return options
}
