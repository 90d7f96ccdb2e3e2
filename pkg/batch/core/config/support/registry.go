package support

import (
	"sync"

	port "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
)

const registryModule = "registry"

// TaskletBuilder is a function type for building a Tasklet component.
//
// Parameters:
//
//	cfg: The application configuration.
//	properties: The property bag declared on the step.
//
// Returns:
//
//	The constructed Tasklet instance and an error.
type TaskletBuilder func(cfg *config.Config, properties map[string]string) (port.Tasklet, error)

// ItemReaderBuilder is a function type for building an ItemReader component.
type ItemReaderBuilder func(cfg *config.Config, properties map[string]string) (port.ItemReader[any], error)

// ItemProcessorBuilder is a function type for building an ItemProcessor component.
type ItemProcessorBuilder func(cfg *config.Config, properties map[string]string) (port.ItemProcessor[any, any], error)

// ItemWriterBuilder is a function type for building an ItemWriter component.
type ItemWriterBuilder func(cfg *config.Config, properties map[string]string) (port.ItemWriter[any], error)

// ComponentRegistry holds the registered component builders that job
// definitions may reference by name. Registration is explicit and typed:
// each component kind has its own builder map, so a step referencing a
// tasklet name as a reader fails at validation time, not at execution time.
type ComponentRegistry struct {
	mu                sync.RWMutex
	taskletBuilders   map[string]TaskletBuilder
	readerBuilders    map[string]ItemReaderBuilder
	processorBuilders map[string]ItemProcessorBuilder
	writerBuilders    map[string]ItemWriterBuilder
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		taskletBuilders:   make(map[string]TaskletBuilder),
		readerBuilders:    make(map[string]ItemReaderBuilder),
		processorBuilders: make(map[string]ItemProcessorBuilder),
		writerBuilders:    make(map[string]ItemWriterBuilder),
	}
}

// RegisterTasklet registers a tasklet builder under the given reference name.
func (r *ComponentRegistry) RegisterTasklet(name string, builder TaskletBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taskletBuilders[name] = builder
}

// RegisterReader registers an item reader builder under the given reference name.
func (r *ComponentRegistry) RegisterReader(name string, builder ItemReaderBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readerBuilders[name] = builder
}

// RegisterProcessor registers an item processor builder under the given reference name.
func (r *ComponentRegistry) RegisterProcessor(name string, builder ItemProcessorBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processorBuilders[name] = builder
}

// RegisterWriter registers an item writer builder under the given reference name.
func (r *ComponentRegistry) RegisterWriter(name string, builder ItemWriterBuilder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writerBuilders[name] = builder
}

// BuildTasklet constructs the tasklet registered under name.
func (r *ComponentRegistry) BuildTasklet(name string, cfg *config.Config, properties map[string]string) (port.Tasklet, error) {
	r.mu.RLock()
	builder, found := r.taskletBuilders[name]
	r.mu.RUnlock()
	if !found {
		return nil, exception.NewBatchErrorf(registryModule, "tasklet builder '%s' not registered", name)
	}
	return builder(cfg, properties)
}

// BuildReader constructs the item reader registered under name.
func (r *ComponentRegistry) BuildReader(name string, cfg *config.Config, properties map[string]string) (port.ItemReader[any], error) {
	r.mu.RLock()
	builder, found := r.readerBuilders[name]
	r.mu.RUnlock()
	if !found {
		return nil, exception.NewBatchErrorf(registryModule, "item reader builder '%s' not registered", name)
	}
	return builder(cfg, properties)
}

// BuildProcessor constructs the item processor registered under name.
func (r *ComponentRegistry) BuildProcessor(name string, cfg *config.Config, properties map[string]string) (port.ItemProcessor[any, any], error) {
	r.mu.RLock()
	builder, found := r.processorBuilders[name]
	r.mu.RUnlock()
	if !found {
		return nil, exception.NewBatchErrorf(registryModule, "item processor builder '%s' not registered", name)
	}
	return builder(cfg, properties)
}

// BuildWriter constructs the item writer registered under name.
func (r *ComponentRegistry) BuildWriter(name string, cfg *config.Config, properties map[string]string) (port.ItemWriter[any], error) {
	r.mu.RLock()
	builder, found := r.writerBuilders[name]
	r.mu.RUnlock()
	if !found {
		return nil, exception.NewBatchErrorf(registryModule, "item writer builder '%s' not registered", name)
	}
	return builder(cfg, properties)
}

// ValidateStepRefs checks every component reference a resolved step declares
// against the registered builders. Reference steps pass: their definition
// lives outside the registry. The first unknown reference fails the check.
func (r *ComponentRegistry) ValidateStepRefs(def model.StepDefinition) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch def.Kind {
	case model.StepKindTasklet:
		if _, found := r.taskletBuilders[def.Tasklet.Ref]; !found {
			return exception.NewBatchErrorf(registryModule,
				"step '%s' references unknown tasklet '%s'", def.Name, def.Tasklet.Ref)
		}
	case model.StepKindChunk:
		if _, found := r.readerBuilders[def.Chunk.ReaderRef]; !found {
			return exception.NewBatchErrorf(registryModule,
				"step '%s' references unknown item reader '%s'", def.Name, def.Chunk.ReaderRef)
		}
		if _, found := r.processorBuilders[def.Chunk.ProcessorRef]; !found {
			return exception.NewBatchErrorf(registryModule,
				"step '%s' references unknown item processor '%s'", def.Name, def.Chunk.ProcessorRef)
		}
		if _, found := r.writerBuilders[def.Chunk.WriterRef]; !found {
			return exception.NewBatchErrorf(registryModule,
				"step '%s' references unknown item writer '%s'", def.Name, def.Chunk.WriterRef)
		}
	}
	return nil
}

// DefinitionRegistry holds the assembled job definitions of the application,
// keyed by job name. It replaces ambient package state: every load session
// registers into an injected instance, so independent sessions never share
// definitions.
type DefinitionRegistry struct {
	mu    sync.RWMutex
	jobs  map[string]*model.JobDefinition
	order []string
}

// NewDefinitionRegistry creates an empty definition registry.
func NewDefinitionRegistry() *DefinitionRegistry {
	return &DefinitionRegistry{jobs: make(map[string]*model.JobDefinition)}
}

// Register adds an assembled job definition. Registering a job name twice is
// an error.
func (r *DefinitionRegistry) Register(def *model.JobDefinition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.jobs[def.Name]; exists {
		return exception.NewBatchErrorf(registryModule, "job '%s' is already registered", def.Name)
	}
	r.jobs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// Job looks up a registered job definition by name.
func (r *DefinitionRegistry) Job(name string) (*model.JobDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.jobs[name]
	return def, ok
}

// Flow looks up the assembled flow of a registered job.
func (r *DefinitionRegistry) Flow(name string) (*model.FlowDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.jobs[name]
	if !ok {
		return nil, false
	}
	return def.Flow, true
}

// Jobs returns the registered job names in registration order.
func (r *DefinitionRegistry) Jobs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Count returns the number of registered jobs.
func (r *DefinitionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}
