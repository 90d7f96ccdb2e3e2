package jobxml

import (
	"context"
	"time"

	"github.com/google/uuid"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	metrics "github.com/hamaguri/riptide/pkg/batch/core/metrics"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

const assemblerModule = "assembler"

// ConfigurationSession scopes one load of job definitions. It owns the
// terminal-state sequence, so every job assembled through the same session
// draws from one name space, and it carries the telemetry handles used while
// assembling. Recorder and Tracer may be nil when telemetry is disabled.
type ConfigurationSession struct {
	// ID tags the session in log lines and telemetry.
	ID string
	// Sequence allocates terminal state names for the whole session.
	Sequence *EndStateSequence
	// Recorder receives load metrics. May be nil.
	Recorder metrics.MetricRecorder
	// Tracer receives load spans. May be nil.
	Tracer metrics.Tracer
}

// NewConfigurationSession creates a session with a fresh terminal-state
// sequence and a unique id.
func NewConfigurationSession(recorder metrics.MetricRecorder, tracer metrics.Tracer) *ConfigurationSession {
	return &ConfigurationSession{
		ID:       uuid.NewString(),
		Sequence: NewEndStateSequence(),
		Recorder: recorder,
		Tracer:   tracer,
	}
}

// Assemble builds the complete definition of one job within this session:
// resolved steps plus the validated transition graph, with telemetry recorded
// around the work.
func (s *ConfigurationSession) Assemble(ctx context.Context, job *JobSpec) (*model.JobDefinition, error) {
	if s.Tracer != nil {
		var end func()
		ctx, end = s.Tracer.StartJobSpan(ctx, job.ID)
		defer end()
	}

	start := time.Now()
	flow, steps, err := AssembleFlow(job, s.Sequence)
	if err != nil {
		if s.Tracer != nil {
			s.Tracer.RecordError(ctx, assemblerModule, err)
		}
		if s.Recorder != nil {
			s.Recorder.RecordLoadFailure(ctx, job.ID, exception.ModuleOf(err))
		}
		return nil, err
	}

	if s.Recorder != nil {
		s.Recorder.RecordJobParsed(ctx, job.ID, len(steps), len(flow.States), len(flow.Transitions))
		for _, def := range steps {
			s.Recorder.RecordStepResolved(ctx, job.ID, def.Name, def.Kind)
			s.Recorder.RecordTransitionsBuilt(ctx, job.ID, def.Name, len(flow.TransitionsFrom(def.Name)))
		}
	}

	logger.Infof("Session %s assembled job '%s': %d step(s), %d state(s), %d transition(s) in %s.",
		s.ID, job.ID, len(steps), len(flow.States), len(flow.Transitions), time.Since(start))
	return &model.JobDefinition{Name: job.ID, Flow: flow, Steps: steps}, nil
}

// AssembleFlow turns one decoded job into its transition graph and resolved
// step definitions. Steps are processed in document order against the shared
// terminal-state sequence: each step is resolved to its concrete form,
// registered as a step state, and expanded into its outgoing edges. The first
// step becomes the start state. After every step is in place the whole graph
// is validated, so a transition may target a step declared later in the file
// but never one that does not exist.
func AssembleFlow(job *JobSpec, seq *EndStateSequence) (*model.FlowDefinition, []model.StepDefinition, error) {
	flow := model.NewFlowDefinition(job.ID)
	builder := NewTransitionGraphBuilder(seq)
	steps := make([]model.StepDefinition, 0, len(job.Steps))

	for i := range job.Steps {
		step := &job.Steps[i]

		def, err := ResolveStep(step, i)
		if err != nil {
			return nil, nil, exception.NewBatchErrorf(assemblerModule,
				"job '%s' failed to resolve step at position %d", job.ID, i, err)
		}

		if err := flow.AddState(model.StateInfo{Name: def.Name, Kind: model.StateKindStep}); err != nil {
			return nil, nil, exception.NewBatchErrorf(assemblerModule,
				"job '%s' failed to register step '%s'", job.ID, def.Name, err)
		}
		if flow.StartState == "" {
			flow.StartState = def.Name
		}

		set, err := builder.BuildTransitions(def.Name, step)
		if err != nil {
			return nil, nil, exception.NewBatchErrorf(assemblerModule,
				"job '%s' failed to build transitions of step '%s'", job.ID, def.Name, err)
		}
		for _, terminal := range set.Terminals {
			if err := flow.AddState(terminal); err != nil {
				return nil, nil, exception.NewBatchErrorf(assemblerModule,
					"job '%s' failed to register terminal state '%s'", job.ID, terminal.Name, err)
			}
		}
		for _, t := range set.Transitions {
			flow.AddTransition(t)
		}

		steps = append(steps, def)
		logger.Debugf("Job '%s': step '%s' resolved as %s with %d outgoing transition(s).",
			job.ID, def.Name, def.Kind, len(set.Transitions))
	}

	if err := flow.Validate(); err != nil {
		return nil, nil, exception.NewBatchError(assemblerModule,
			"job '"+job.ID+"' transition graph is invalid", err)
	}

	return flow, steps, nil
}
