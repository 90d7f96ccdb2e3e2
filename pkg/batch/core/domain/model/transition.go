package model

import "fmt"

// TransitionKind identifies the form of a declared transition element.
// The kind is decided once when the job definition is decoded and carried as a
// closed enum from then on.
type TransitionKind int

const (
	// KindNext routes a matching outcome to another named step.
	KindNext TransitionKind = iota
	// KindStop routes a matching outcome to a synthesized terminal state that
	// stops the flow, by default with status STOPPED.
	KindStop
	// KindEnd routes a matching outcome to a synthesized terminal state that
	// ends the flow, by default with status COMPLETED.
	KindEnd
)

// String returns the element name the kind was decoded from.
func (k TransitionKind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindStop:
		return "stop"
	case KindEnd:
		return "end"
	}
	return fmt.Sprintf("TransitionKind(%d)", int(k))
}

// PatternWildcard matches any completion status.
const PatternWildcard = "*"

// StateTransition is one outgoing edge of the assembled flow graph.
// An empty Pattern matches unconditionally; an empty Next means the flow
// terminates once State is reached. Pattern matching itself is owned by the
// execution engine consuming the graph, not by this toolkit.
type StateTransition struct {
	// State is the originating logical state: a step state or a synthesized terminal state.
	State string
	// Pattern is matched against the step's completion status. Empty means unconditional.
	Pattern string
	// Next is the target state name. Empty means the flow ends here.
	Next string
}

// Unconditional reports whether the transition matches any outcome.
func (t StateTransition) Unconditional() bool {
	return t.Pattern == ""
}

// Terminates reports whether the transition ends the flow instead of routing onward.
func (t StateTransition) Terminates() bool {
	return t.Next == ""
}

// String renders the transition in "state [pattern] -> next" form for logs and
// the graph command.
func (t StateTransition) String() string {
	pattern := t.Pattern
	if pattern == "" {
		pattern = "<any>"
	}
	next := t.Next
	if next == "" {
		next = "<end>"
	}
	return fmt.Sprintf("%s [%s] -> %s", t.State, pattern, next)
}
