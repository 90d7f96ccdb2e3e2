package model

import "fmt"

// StepKind identifies the one concrete form a step declaration resolved to.
type StepKind int

const (
	// StepKindReference is a step defined elsewhere and referenced by name.
	StepKindReference StepKind = iota
	// StepKindTasklet is an inline step executing a single registered tasklet.
	StepKindTasklet
	// StepKindChunk is an inline chunk-oriented step (read, process, write).
	StepKindChunk
)

// String returns a short label for the step kind.
func (k StepKind) String() string {
	switch k {
	case StepKindReference:
		return "reference"
	case StepKindTasklet:
		return "tasklet"
	case StepKindChunk:
		return "chunk"
	}
	return fmt.Sprintf("StepKind(%d)", int(k))
}

// Collaborator refs attached to every resolved step when the declaration does
// not name them explicitly.
const (
	DefaultRepositoryRef         = "jobRepository"
	DefaultTransactionManagerRef = "transactionManager"
)

// DefaultProcessorRef names the registered pass-through processor used by
// chunk steps that omit the processor attribute.
const DefaultProcessorRef = "passthrough"

// DefaultCommitInterval is the chunk commit interval when none is declared.
const DefaultCommitInterval = 1

// TaskletSpec carries the component reference of an inline tasklet step.
type TaskletSpec struct {
	// Ref names the registered tasklet builder.
	Ref string
}

// ChunkSpec carries the component references and tuning of an inline
// chunk-oriented step.
type ChunkSpec struct {
	// ReaderRef names the registered item reader builder.
	ReaderRef string
	// ProcessorRef names the registered item processor builder.
	ProcessorRef string
	// WriterRef names the registered item writer builder.
	WriterRef string
	// CommitInterval is the number of items per chunk. Always >= 1.
	CommitInterval int
}

// StepDefinition is the resolved, plainly typed form of one step declaration.
// Exactly one of Tasklet and Chunk is set for the inline kinds; both are nil
// for a reference step.
type StepDefinition struct {
	// Name is the step name, unique within its job.
	Name string
	// Kind is the resolved step form.
	Kind StepKind
	// Tasklet is set when Kind is StepKindTasklet.
	Tasklet *TaskletSpec
	// Chunk is set when Kind is StepKindChunk.
	Chunk *ChunkSpec
	// RepositoryRef names the job repository collaborator the step is wired to.
	RepositoryRef string
	// TransactionManagerRef names the transaction manager collaborator.
	TransactionManagerRef string
	// Properties is the raw property bag declared on the step.
	Properties map[string]string
}

// JobDefinition bundles the assembled flow of a job with its resolved steps.
type JobDefinition struct {
	// Name is the job name.
	Name string
	// Flow is the assembled transition graph.
	Flow *FlowDefinition
	// Steps holds the resolved step definitions in declaration order.
	Steps []StepDefinition
}

// StepByName looks up a resolved step definition by name.
func (j *JobDefinition) StepByName(name string) (StepDefinition, bool) {
	for _, s := range j.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepDefinition{}, false
}
