package model

import "fmt"

// StateKind distinguishes the two kinds of states a flow graph contains.
type StateKind int

const (
	// StateKindStep is a state backed by a step definition.
	StateKindStep StateKind = iota
	// StateKindTerminal is a synthesized terminal state carrying a batch status.
	StateKindTerminal
)

// String returns a short label for the state kind.
func (k StateKind) String() string {
	switch k {
	case StateKindStep:
		return "step"
	case StateKindTerminal:
		return "terminal"
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// StateInfo describes one named state of a flow graph.
type StateInfo struct {
	// Name is the unique state name within the flow.
	Name string
	// Kind tags the state as a step state or a terminal state.
	Kind StateKind
	// TerminalStatus is the batch status a terminal state resolves to.
	// It is meaningful only when Kind is StateKindTerminal.
	TerminalStatus BatchStatus
}

// FlowDefinition is the assembled transition graph of one job: the registered
// states and the ordered outgoing-edge set produced from the job's step
// declarations. The transition order preserves declaration order, which the
// downstream execution engine relies on for first-match-wins evaluation.
type FlowDefinition struct {
	// JobName is the name of the job this flow belongs to.
	JobName string
	// StartState is the state the flow enters first.
	StartState string
	// States maps state names to their descriptions.
	States map[string]StateInfo
	// Transitions is the ordered outgoing-edge set of the whole flow.
	Transitions []StateTransition

	stateOrder []string
}

// NewFlowDefinition creates an empty flow definition for the named job.
func NewFlowDefinition(jobName string) *FlowDefinition {
	return &FlowDefinition{
		JobName: jobName,
		States:  make(map[string]StateInfo),
	}
}

// AddState registers a state. Registering the same name twice is an error;
// terminal state names are session-unique by construction, so a duplicate
// always indicates a duplicated step name.
func (f *FlowDefinition) AddState(info StateInfo) error {
	if info.Name == "" {
		return fmt.Errorf("state name cannot be empty")
	}
	if _, exists := f.States[info.Name]; exists {
		return fmt.Errorf("duplicate state name '%s' in job '%s'", info.Name, f.JobName)
	}
	f.States[info.Name] = info
	f.stateOrder = append(f.stateOrder, info.Name)
	return nil
}

// AddTransition appends an outgoing edge, preserving declaration order.
func (f *FlowDefinition) AddTransition(t StateTransition) {
	f.Transitions = append(f.Transitions, t)
}

// State looks up a registered state by name.
func (f *FlowDefinition) State(name string) (StateInfo, bool) {
	info, ok := f.States[name]
	return info, ok
}

// StateNames returns the registered state names in registration order.
func (f *FlowDefinition) StateNames() []string {
	names := make([]string, len(f.stateOrder))
	copy(names, f.stateOrder)
	return names
}

// TransitionsFrom returns the outgoing edges of the given state in
// declaration order.
func (f *FlowDefinition) TransitionsFrom(state string) []StateTransition {
	var out []StateTransition
	for _, t := range f.Transitions {
		if t.State == state {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks the structural integrity of the assembled graph: the start
// state must be registered and every non-terminating transition must target a
// registered state. It does not evaluate pattern matching.
func (f *FlowDefinition) Validate() error {
	if f.StartState == "" {
		return fmt.Errorf("job '%s' has no start state", f.JobName)
	}
	if _, ok := f.States[f.StartState]; !ok {
		return fmt.Errorf("start state '%s' of job '%s' is not a registered state", f.StartState, f.JobName)
	}
	for _, t := range f.Transitions {
		if _, ok := f.States[t.State]; !ok {
			return fmt.Errorf("transition %s originates from unknown state '%s'", t, t.State)
		}
		if t.Next == "" {
			continue
		}
		if _, ok := f.States[t.Next]; !ok {
			return fmt.Errorf("transition %s targets unknown state '%s'", t, t.Next)
		}
	}
	return nil
}
