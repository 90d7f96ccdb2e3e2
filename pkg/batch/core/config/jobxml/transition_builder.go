package jobxml

import (
	"fmt"
	"sync/atomic"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	exception "github.com/hamaguri/riptide/pkg/batch/support/util/exception"
)

// EndStateSequence allocates the names of synthesized terminal states within
// one configuration session. Names are "end" followed by a strictly increasing
// integer starting at zero and are never reused, so terminal states stay
// unique across every job assembled in the session. The counter is atomic, so
// a session whose files are loaded concurrently still allocates unique names.
type EndStateSequence struct {
	counter atomic.Int64
}

// NewEndStateSequence creates a sequence starting at zero.
func NewEndStateSequence() *EndStateSequence {
	return &EndStateSequence{}
}

// NextName returns the next terminal state name and advances the sequence.
func (s *EndStateSequence) NextName() string {
	n := s.counter.Add(1) - 1
	return fmt.Sprintf("end%d", n)
}

// Allocated returns how many terminal state names the sequence has handed out.
func (s *EndStateSequence) Allocated() int {
	return int(s.counter.Load())
}

// TransitionSet is the result of building one step's outgoing edges: the
// ordered transitions plus the terminal states synthesized along the way.
type TransitionSet struct {
	// Transitions is the complete ordered outgoing-edge set for the step state.
	Transitions []model.StateTransition
	// Terminals holds the synthesized terminal states in creation order.
	Terminals []model.StateInfo
}

// TransitionGraphBuilder turns one step's declared transitions into ordered
// StateTransition records. Stop and end declarations are routed through a
// freshly named terminal state so a terminal outcome can itself chain onward.
type TransitionGraphBuilder struct {
	seq *EndStateSequence
}

// NewTransitionGraphBuilder creates a builder drawing terminal state names
// from the given session sequence.
func NewTransitionGraphBuilder(seq *EndStateSequence) *TransitionGraphBuilder {
	return &TransitionGraphBuilder{seq: seq}
}

// BuildTransitions produces the complete outgoing-edge set of stepState from
// the step's declared transitions.
//
// The step-level next attribute contributes an unconditional transition first.
// Child elements are then processed grouped by kind (next, then stop, then
// end, document order within each group). Every stop/end element synthesizes
// one terminal state and retargets its step-level edge at it. A step declaring
// nothing at all yields a single unconditional edge that terminates the flow.
//
// Any failure aborts the build: no partial transition set is returned.
func (b *TransitionGraphBuilder) BuildTransitions(stepState string, step *StepSpec) (*TransitionSet, error) {
	set := &TransitionSet{}

	// 1. The short-form next attribute becomes an unconditional transition,
	// emitted ahead of every declared child element.
	hasShortNext := step.ShortNext != ""
	if hasShortNext {
		set.Transitions = append(set.Transitions, model.StateTransition{
			State: stepState,
			Next:  step.ShortNext,
		})
	}

	// 2. Process the child elements, next elements first, then stop, then end.
	for _, elem := range step.Elements() {
		if hasShortNext && elem.On == model.PatternWildcard {
			return nil, exception.NewBatchErrorf("transition",
				"duplicate wildcard transition for step '%s': declare either the step-level next attribute or a %s element with on=\"*\", not both",
				stepState, elem.Kind)
		}

		effectiveTo := elem.To
		pattern := elem.On

		if elem.Kind == model.KindStop || elem.Kind == model.KindEnd {
			terminal, chainedNext, err := b.synthesizeTerminal(stepState, elem)
			if err != nil {
				return nil, err
			}
			set.Terminals = append(set.Terminals, terminal)

			// The terminal state's own outgoing edge: it chains onward under
			// the declared pattern when a chained next exists, otherwise it
			// terminates the flow unconditionally.
			outgoing := model.StateTransition{State: terminal.Name, Next: chainedNext}
			if chainedNext != "" {
				outgoing.Pattern = pattern
			}
			set.Transitions = append(set.Transitions, outgoing)

			// The step-level edge routes to the terminal state, not to the
			// element's literal target.
			effectiveTo = terminal.Name
		}

		set.Transitions = append(set.Transitions, model.StateTransition{
			State:   stepState,
			Pattern: pattern,
			Next:    effectiveTo,
		})
	}

	// 3. A step with no declared transitions simply ends the flow on any outcome.
	if len(set.Transitions) == 0 && !hasShortNext {
		set.Transitions = append(set.Transitions, model.StateTransition{State: stepState})
	}

	return set, nil
}

// synthesizeTerminal allocates the terminal state for one stop/end element
// and computes the chained next target. An explicit status suppresses
// chaining: the element's to attribute is then ignored for routing.
func (b *TransitionGraphBuilder) synthesizeTerminal(stepState string, elem TransitionElement) (model.StateInfo, string, error) {
	status := defaultTerminalStatus(elem.Kind)
	chainedNext := elem.To

	if elem.Status != "" {
		parsed, err := model.ParseBatchStatus(elem.Status)
		if err != nil {
			return model.StateInfo{}, "", exception.NewBatchErrorf("transition",
				"invalid status literal on %s element of step '%s'", elem.Kind, stepState, err)
		}
		status = parsed
		chainedNext = ""
	}

	return model.StateInfo{
		Name:           b.seq.NextName(),
		Kind:           model.StateKindTerminal,
		TerminalStatus: status,
	}, chainedNext, nil
}

// defaultTerminalStatus is the terminal status applied when a stop/end element
// declares none: stop halts the flow as STOPPED, end completes it.
func defaultTerminalStatus(kind model.TransitionKind) model.BatchStatus {
	if kind == model.KindStop {
		return model.BatchStatusStopped
	}
	return model.BatchStatusCompleted
}
