// Package support provides the registration layer of the batch toolkit: the
// component and definition registries plus the central JobFactory that loads
// job definition files, assembles their transition graphs, and registers the
// result for the application to consume.
package support

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/fx"

	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

const factoryModule = "job_factory"

// JobFactory drives the whole configuration path: it loads job definition
// XML, assembles each job within one configuration session, validates every
// component reference against the ComponentRegistry, and registers the
// assembled definitions in the DefinitionRegistry.
type JobFactory struct {
	config      *config.Config
	expander    config.EnvironmentExpander
	components  *ComponentRegistry
	definitions *DefinitionRegistry
	recorder    metrics.MetricRecorder
	tracer      metrics.Tracer
}

// JobFactoryParams defines the parameters that the NewJobFactory function
// receives via dependency injection (Fx).
type JobFactoryParams struct {
	fx.In
	Cfg         *config.Config              // Application configuration.
	Expander    config.EnvironmentExpander  // Expander applied to raw definition bytes before decoding.
	Components  *ComponentRegistry          // Registered component builders.
	Definitions *DefinitionRegistry         // Destination for assembled job definitions.
	Recorder    metrics.MetricRecorder      `optional:"true"` // MetricRecorder for load telemetry.
	Tracer      metrics.Tracer              `optional:"true"` // Tracer for load spans.
}

// NewJobFactory creates a new instance of JobFactory.
func NewJobFactory(p JobFactoryParams) *JobFactory {
	return &JobFactory{
		config:      p.Cfg,
		expander:    p.Expander,
		components:  p.Components,
		definitions: p.Definitions,
		recorder:    p.Recorder,
		tracer:      p.Tracer,
	}
}

// GetConfig returns the configuration the factory was constructed with.
func (f *JobFactory) GetConfig() *config.Config {
	return f.config
}

// Definitions returns the definition registry the factory registers into.
func (f *JobFactory) Definitions() *DefinitionRegistry {
	return f.definitions
}

// LoadFromBytes loads one embedded job definition file, assembles it within a
// fresh configuration session, and registers the result.
func (f *JobFactory) LoadFromBytes(ctx context.Context, data []byte) error {
	session := jobxml.NewConfigurationSession(f.recorder, f.tracer)
	return f.loadSession(ctx, session, func(ctx context.Context) (int, error) {
		job, err := jobxml.LoadJobDefinitionFromBytes(data, f.expander)
		if err != nil {
			return 0, err
		}
		if err := f.registerJob(ctx, session, job); err != nil {
			return 0, err
		}
		return 1, nil
	})
}

// LoadFromDir loads every *.xml file under dir into one configuration
// session. Files that fail leave the session's other registrations in place;
// their failures are aggregated and returned as one error.
func (f *JobFactory) LoadFromDir(ctx context.Context, dir string) error {
	session := jobxml.NewConfigurationSession(f.recorder, f.tracer)
	return f.loadSession(ctx, session, func(ctx context.Context) (int, error) {
		jobs, loadErr := jobxml.LoadJobDefinitionsFromDir(dir, f.expander)
		var errs *multierror.Error
		if loadErr != nil {
			errs = multierror.Append(errs, loadErr)
		}
		registered := 0
		for _, job := range jobs {
			if err := f.registerJob(ctx, session, job); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			registered++
		}
		return registered, errs.ErrorOrNil()
	})
}

// LoadFromFiles loads the named definition files into one configuration
// session, aggregating per-file failures like LoadFromDir.
func (f *JobFactory) LoadFromFiles(ctx context.Context, paths []string) error {
	session := jobxml.NewConfigurationSession(f.recorder, f.tracer)
	return f.loadSession(ctx, session, func(ctx context.Context) (int, error) {
		var errs *multierror.Error
		registered := 0
		for _, path := range paths {
			job, err := jobxml.LoadJobDefinitionFromFile(path, f.expander)
			if err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			if err := f.registerJob(ctx, session, job); err != nil {
				errs = multierror.Append(errs, err)
				continue
			}
			registered++
		}
		return registered, errs.ErrorOrNil()
	})
}

// loadSession wraps one load session with its span and load metrics.
func (f *JobFactory) loadSession(ctx context.Context, session *jobxml.ConfigurationSession, load func(ctx context.Context) (int, error)) error {
	if f.tracer != nil {
		var end func()
		ctx, end = f.tracer.StartLoadSpan(ctx, session.ID)
		defer end()
	}
	if f.recorder != nil {
		f.recorder.RecordLoadStart(ctx, session.ID)
	}

	start := time.Now()
	registered, err := load(ctx)

	if f.recorder != nil {
		f.recorder.RecordLoadEnd(ctx, session.ID, registered, time.Since(start), err)
	}
	if err != nil {
		if f.tracer != nil {
			f.tracer.RecordError(ctx, factoryModule, err)
		}
		logger.Errorf("Session %s failed after registering %d job(s): %v", session.ID, registered, err)
		return err
	}

	logger.Infof("Session %s registered %d job(s) in %s.", session.ID, registered, time.Since(start))
	return nil
}

// registerJob assembles one decoded job, validates its component references,
// and registers the definition.
func (f *JobFactory) registerJob(ctx context.Context, session *jobxml.ConfigurationSession, job *jobxml.JobSpec) error {
	def, err := session.Assemble(ctx, job)
	if err != nil {
		return err
	}

	for _, step := range def.Steps {
		if err := f.components.ValidateStepRefs(step); err != nil {
			return exception.NewBatchErrorf(factoryModule,
				"job '%s' declares unresolvable component references", def.Name, err)
		}
	}

	if err := f.definitions.Register(def); err != nil {
		return err
	}

	if f.tracer != nil {
		f.tracer.RecordEvent(ctx, "job_registered", map[string]interface{}{
			"job_name": def.Name,
			"steps":    len(def.Steps),
			"states":   len(def.Flow.States),
		})
	}
	return nil
}

// BuildJob returns the registered definition set of the named job: its
// assembled flow and resolved steps.
func (f *JobFactory) BuildJob(jobName string) (*model.JobDefinition, error) {
	def, ok := f.definitions.Job(jobName)
	if !ok {
		return nil, exception.NewBatchErrorf(factoryModule, "definition for job '%s' not found", jobName)
	}
	return def, nil
}

// BuildStepComponents instantiates the components a resolved step references.
// For a tasklet step the returned map holds the tasklet under "tasklet"; for
// a chunk step it holds "reader", "processor", and "writer". Reference steps
// yield nothing: their definition lives outside the registry.
func (f *JobFactory) BuildStepComponents(def model.StepDefinition) (map[string]any, error) {
	built := make(map[string]any)
	switch def.Kind {
	case model.StepKindTasklet:
		tasklet, err := f.components.BuildTasklet(def.Tasklet.Ref, f.config, def.Properties)
		if err != nil {
			return nil, exception.NewBatchErrorf(factoryModule,
				"failed to build tasklet '%s' of step '%s'", def.Tasklet.Ref, def.Name, err)
		}
		built["tasklet"] = tasklet
	case model.StepKindChunk:
		reader, err := f.components.BuildReader(def.Chunk.ReaderRef, f.config, def.Properties)
		if err != nil {
			return nil, exception.NewBatchErrorf(factoryModule,
				"failed to build item reader '%s' of step '%s'", def.Chunk.ReaderRef, def.Name, err)
		}
		processor, err := f.components.BuildProcessor(def.Chunk.ProcessorRef, f.config, def.Properties)
		if err != nil {
			return nil, exception.NewBatchErrorf(factoryModule,
				"failed to build item processor '%s' of step '%s'", def.Chunk.ProcessorRef, def.Name, err)
		}
		writer, err := f.components.BuildWriter(def.Chunk.WriterRef, f.config, def.Properties)
		if err != nil {
			return nil, exception.NewBatchErrorf(factoryModule,
				"failed to build item writer '%s' of step '%s'", def.Chunk.WriterRef, def.Name, err)
		}
		built["reader"] = reader
		built["processor"] = processor
		built["writer"] = writer
	}
	return built, nil
}
