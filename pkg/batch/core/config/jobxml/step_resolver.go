package jobxml

import (
	"strconv"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
)

// ResolveStep resolves one decoded step to exactly one concrete form: an
// external reference, an inline tasklet, or an inline chunk-oriented step.
// Declaring none of the three, or more than one inline form, is a malformed
// step and fails the whole load.
//
// ordinal is the step's zero-based position within its job; it names steps
// that carry an inline definition but no name attribute.
func ResolveStep(step *StepSpec, ordinal int) (model.StepDefinition, error) {
	name := step.Name
	if name == "" {
		name = "step" + strconv.Itoa(ordinal)
	}

	if len(step.Tasks) > 1 || len(step.Chunks) > 1 {
		return model.StepDefinition{}, exception.NewBatchErrorf("step",
			"malformed step '%s': at most one task or chunk-oriented element may be declared", name)
	}
	if len(step.Tasks) == 1 && len(step.Chunks) == 1 {
		return model.StepDefinition{}, exception.NewBatchErrorf("step",
			"malformed step '%s': task and chunk-oriented definitions are mutually exclusive", name)
	}

	switch {
	case len(step.Tasks) == 1:
		return resolveTaskletStep(name, &step.Tasks[0])
	case len(step.Chunks) == 1:
		return resolveChunkStep(name, &step.Chunks[0])
	case step.Name != "":
		return model.StepDefinition{
			Name:                  step.Name,
			Kind:                  model.StepKindReference,
			RepositoryRef:         model.DefaultRepositoryRef,
			TransactionManagerRef: model.DefaultTransactionManagerRef,
		}, nil
	default:
		return model.StepDefinition{}, exception.NewBatchError("step",
			"malformed step: a step requires a name or an inline task or chunk-oriented definition", nil)
	}
}

// resolveTaskletStep builds the definition of an inline single-tasklet step.
func resolveTaskletStep(name string, task *TaskSpec) (model.StepDefinition, error) {
	if task.TaskletRef == "" {
		return model.StepDefinition{}, exception.NewBatchErrorf("step",
			"malformed step '%s': task element requires a tasklet reference", name)
	}

	props, err := propertyBag(name, task.Properties)
	if err != nil {
		return model.StepDefinition{}, err
	}

	return model.StepDefinition{
		Name:                  name,
		Kind:                  model.StepKindTasklet,
		Tasklet:               &model.TaskletSpec{Ref: task.TaskletRef},
		RepositoryRef:         orDefault(task.RepositoryRef, model.DefaultRepositoryRef),
		TransactionManagerRef: orDefault(task.TransactionManagerRef, model.DefaultTransactionManagerRef),
		Properties:            props,
	}, nil
}

// resolveChunkStep builds the definition of an inline chunk-oriented step.
// The reader and writer references are required; a missing processor falls
// back to the registered pass-through processor.
func resolveChunkStep(name string, chunk *ChunkOrientedSpec) (model.StepDefinition, error) {
	if chunk.ReaderRef == "" {
		return model.StepDefinition{}, exception.NewBatchErrorf("step",
			"malformed step '%s': chunk-oriented element requires a reader reference", name)
	}
	if chunk.WriterRef == "" {
		return model.StepDefinition{}, exception.NewBatchErrorf("step",
			"malformed step '%s': chunk-oriented element requires a writer reference", name)
	}

	commitInterval := model.DefaultCommitInterval
	if chunk.CommitInterval != "" {
		parsed, err := strconv.Atoi(chunk.CommitInterval)
		if err != nil {
			return model.StepDefinition{}, exception.NewBatchErrorf("step",
				"malformed step '%s': commit-interval '%s' is not a number", name, chunk.CommitInterval, err)
		}
		if parsed < 1 {
			return model.StepDefinition{}, exception.NewBatchErrorf("step",
				"malformed step '%s': commit-interval must be at least 1, got %d", name, parsed)
		}
		commitInterval = parsed
	}

	props, err := propertyBag(name, chunk.Properties)
	if err != nil {
		return model.StepDefinition{}, err
	}

	return model.StepDefinition{
		Name: name,
		Kind: model.StepKindChunk,
		Chunk: &model.ChunkSpec{
			ReaderRef:      chunk.ReaderRef,
			ProcessorRef:   orDefault(chunk.ProcessorRef, model.DefaultProcessorRef),
			WriterRef:      chunk.WriterRef,
			CommitInterval: commitInterval,
		},
		RepositoryRef:         orDefault(chunk.RepositoryRef, model.DefaultRepositoryRef),
		TransactionManagerRef: orDefault(chunk.TransactionManagerRef, model.DefaultTransactionManagerRef),
		Properties:            props,
	}, nil
}

// propertyBag converts the decoded property entries into a map. A later entry
// overrides an earlier one with the same name.
func propertyBag(stepName string, props []PropertySpec) (map[string]string, error) {
	if len(props) == 0 {
		return nil, nil
	}
	bag := make(map[string]string, len(props))
	for _, p := range props {
		if p.Name == "" {
			return nil, exception.NewBatchErrorf("step",
				"malformed step '%s': property element requires a name", stepName)
		}
		bag[p.Name] = p.Value
	}
	return bag, nil
}

// orDefault returns value, or def when value is empty.
func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
