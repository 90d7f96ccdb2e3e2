// Package app drives the payroll example: once the definitions are loaded it
// walks the assembled flow graph of the configured job, executes each step
// state with the components built from the registry, and follows the first
// transition whose pattern matches the step's outcome.
package app

import (
	"context"
	"errors"

	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
)

const moduleApp = "payroll_app"

// StartPayrollRun registers the lifecycle hook that runs the configured job
// once the definitions are loaded, then asks the application to shut down.
func StartPayrollRun(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	factory *support.JobFactory,
	cfg *config.Config,
	appCtx context.Context,
) {
	lc.Append(fx.Hook{
		OnStart: onStartPayrollRun(shutdowner, factory, cfg, appCtx),
		OnStop:  onStopPayrollRun(),
	})
}

// onStartPayrollRun is the Fx hook helper that launches the payroll run in the
// background so startup is not blocked.
func onStartPayrollRun(
	shutdowner fx.Shutdowner,
	factory *support.JobFactory,
	cfg *config.Config,
	appCtx context.Context,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic recovered in payroll run: %v", r)
				}
				logger.Infof("Requesting application shutdown after the payroll run.")

				if err := shutdowner.Shutdown(); err != nil {
					logger.Errorf("Failed to shutdown application: %v", err)
				}
			}()

			jobName := cfg.Riptide.Batch.JobName
			def, err := factory.BuildJob(jobName)
			if err != nil {
				logger.Errorf("Job '%s' is not registered: %v", jobName, err)
				return
			}

			logGraph(def.Flow)

			if err := runFlow(appCtx, factory, def); err != nil {
				logger.Errorf("Payroll run failed: %v", err)
			}
		}()
		return nil
	}
}

// onStopPayrollRun is the Fx hook helper that logs the application shutdown.
func onStopPayrollRun() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logger.Infof("Payroll application is shutting down.")
		return nil
	}
}

// logGraph prints the assembled flow: every state with its kind, followed by
// its outgoing transitions in declaration order.
func logGraph(flow *model.FlowDefinition) {
	logger.Infof("Job '%s' starts at state '%s'.", flow.JobName, flow.StartState)
	for _, name := range flow.StateNames() {
		info, _ := flow.State(name)
		if info.Kind == model.StateKindTerminal {
			logger.Infof("State '%s' (%s, status %s)", name, info.Kind, info.TerminalStatus)
		} else {
			logger.Infof("State '%s' (%s)", name, info.Kind)
		}
		for _, t := range flow.TransitionsFrom(name) {
			logger.Infof("  %s", t)
		}
	}
}

// runFlow walks the graph from the start state until it reaches a terminal
// state or a transition that ends the flow.
func runFlow(ctx context.Context, factory *support.JobFactory, def *model.JobDefinition) error {
	current := def.Flow.StartState
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		info, ok := def.Flow.State(current)
		if !ok {
			return exception.NewBatchErrorf(moduleApp, "state '%s' is not part of job '%s'", current, def.Name)
		}

		if info.Kind == model.StateKindTerminal {
			logger.Infof("Job '%s' reached terminal state '%s' with status %s.", def.Name, info.Name, info.TerminalStatus)
			return nil
		}

		stepDef, ok := def.StepByName(current)
		if !ok {
			return exception.NewBatchErrorf(moduleApp, "no step definition backs state '%s'", current)
		}

		status, err := executeStep(ctx, factory, stepDef)
		if err != nil {
			return err
		}
		logger.Infof("Step '%s' finished with status %s.", stepDef.Name, status)

		next, ok := selectNext(def.Flow.TransitionsFrom(current), status)
		if !ok {
			return exception.NewBatchErrorf(moduleApp, "no transition of step '%s' matches status %s", current, status)
		}
		if next == "" {
			logger.Infof("Job '%s' ends after step '%s'.", def.Name, stepDef.Name)
			return nil
		}
		current = next
	}
}

// selectNext picks the first transition whose pattern matches the status.
// An empty pattern and the wildcard match anything; any other pattern must
// equal the status literally.
func selectNext(transitions []model.StateTransition, status model.BatchStatus) (string, bool) {
	for _, t := range transitions {
		if t.Unconditional() || t.Pattern == model.PatternWildcard || t.Pattern == status.String() {
			return t.Next, true
		}
	}
	return "", false
}

// executeStep builds the components of one step state and runs them.
func executeStep(ctx context.Context, factory *support.JobFactory, def model.StepDefinition) (model.BatchStatus, error) {
	components, err := factory.BuildStepComponents(def)
	if err != nil {
		return model.BatchStatusFailed, err
	}

	switch def.Kind {
	case model.StepKindTasklet:
		tasklet := components["tasklet"].(core.Tasklet)
		defer tasklet.Close(ctx)
		return tasklet.Execute(ctx)
	case model.StepKindChunk:
		return runChunk(ctx, def, components)
	default:
		return model.BatchStatusFailed, exception.NewBatchErrorf(moduleApp,
			"step '%s' references an external definition and cannot run here", def.Name)
	}
}

// runChunk drives one chunk-oriented step: it reads items one at a time,
// processes each, and writes the results in commit-interval sized chunks.
func runChunk(ctx context.Context, def model.StepDefinition, components map[string]any) (model.BatchStatus, error) {
	reader := components["reader"].(core.ItemReader[any])
	processor := components["processor"].(core.ItemProcessor[any, any])
	writer := components["writer"].(core.ItemWriter[any])

	if err := reader.Open(ctx); err != nil {
		return model.BatchStatusFailed, err
	}
	defer reader.Close(ctx)

	if err := writer.Open(ctx); err != nil {
		return model.BatchStatusFailed, err
	}
	defer writer.Close(ctx)

	var chunk []any
	read, written := 0, 0
	for {
		item, err := reader.Read(ctx)
		if errors.Is(err, core.ErrNoMoreItems) {
			break
		}
		if err != nil {
			return model.BatchStatusFailed, err
		}
		read++

		processed, err := processor.Process(ctx, item)
		if err != nil {
			return model.BatchStatusFailed, err
		}
		if processed == nil {
			// The processor filtered the item out.
			continue
		}

		chunk = append(chunk, processed)
		if len(chunk) >= def.Chunk.CommitInterval {
			if err := writer.Write(ctx, chunk); err != nil {
				return model.BatchStatusFailed, err
			}
			written += len(chunk)
			chunk = chunk[:0]
		}
	}

	if len(chunk) > 0 {
		if err := writer.Write(ctx, chunk); err != nil {
			return model.BatchStatusFailed, err
		}
		written += len(chunk)
	}

	logger.Infof("Step '%s' read %d item(s) and wrote %d item(s).", def.Name, read, written)
	return model.BatchStatusCompleted, nil
}
