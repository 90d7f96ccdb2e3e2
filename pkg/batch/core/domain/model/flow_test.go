package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

func TestFlowDefinitionAddState(t *testing.T) {
	flow := model.NewFlowDefinition("demo")

	require.NoError(t, flow.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	require.NoError(t, flow.AddState(model.StateInfo{Name: "end0", Kind: model.StateKindTerminal, TerminalStatus: model.BatchStatusCompleted}))

	// Case 1: States are retrievable with their metadata.
	info, ok := flow.State("end0")
	require.True(t, ok)
	assert.Equal(t, model.StateKindTerminal, info.Kind)
	assert.Equal(t, model.BatchStatusCompleted, info.TerminalStatus)

	// Case 2: Registration order is preserved.
	assert.Equal(t, []string{"stepA", "end0"}, flow.StateNames())

	// Case 3: Duplicate and empty names are rejected.
	err := flow.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate state name 'stepA'")
	assert.Error(t, flow.AddState(model.StateInfo{Name: ""}))
}

func TestFlowDefinitionTransitionsFrom(t *testing.T) {
	flow := model.NewFlowDefinition("demo")
	require.NoError(t, flow.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	require.NoError(t, flow.AddState(model.StateInfo{Name: "stepB", Kind: model.StateKindStep}))

	flow.AddTransition(model.StateTransition{State: "stepA", Pattern: "COMPLETED", Next: "stepB"})
	flow.AddTransition(model.StateTransition{State: "stepB"})
	flow.AddTransition(model.StateTransition{State: "stepA", Pattern: "FAILED", Next: "stepB"})

	// Declaration order per state survives interleaving.
	fromA := flow.TransitionsFrom("stepA")
	require.Len(t, fromA, 2)
	assert.Equal(t, "COMPLETED", fromA[0].Pattern)
	assert.Equal(t, "FAILED", fromA[1].Pattern)

	assert.Empty(t, flow.TransitionsFrom("unknown"))
}

func TestFlowDefinitionValidate(t *testing.T) {
	// Case 1: A consistent graph passes.
	flow := model.NewFlowDefinition("demo")
	require.NoError(t, flow.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	require.NoError(t, flow.AddState(model.StateInfo{Name: "end0", Kind: model.StateKindTerminal, TerminalStatus: model.BatchStatusCompleted}))
	flow.StartState = "stepA"
	flow.AddTransition(model.StateTransition{State: "stepA", Next: "end0"})
	flow.AddTransition(model.StateTransition{State: "end0"})
	assert.NoError(t, flow.Validate())

	// Case 2: A missing start state fails.
	noStart := model.NewFlowDefinition("demo")
	require.NoError(t, noStart.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	err := noStart.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "has no start state")

	// Case 3: A start state that is not registered fails.
	badStart := model.NewFlowDefinition("demo")
	require.NoError(t, badStart.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	badStart.StartState = "missing"
	assert.Error(t, badStart.Validate())

	// Case 4: A transition from or to an unknown state fails.
	badOrigin := model.NewFlowDefinition("demo")
	require.NoError(t, badOrigin.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	badOrigin.StartState = "stepA"
	badOrigin.AddTransition(model.StateTransition{State: "ghost", Next: "stepA"})
	assert.Error(t, badOrigin.Validate())

	badTarget := model.NewFlowDefinition("demo")
	require.NoError(t, badTarget.AddState(model.StateInfo{Name: "stepA", Kind: model.StateKindStep}))
	badTarget.StartState = "stepA"
	badTarget.AddTransition(model.StateTransition{State: "stepA", Next: "ghost"})
	err = badTarget.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown state 'ghost'")
}

func TestStateTransitionHelpers(t *testing.T) {
	unconditional := model.StateTransition{State: "stepA", Next: "stepB"}
	assert.True(t, unconditional.Unconditional())
	assert.False(t, unconditional.Terminates())
	assert.Equal(t, "stepA [<any>] -> stepB", unconditional.String())

	terminating := model.StateTransition{State: "end0"}
	assert.True(t, terminating.Terminates())
	assert.Equal(t, "end0 [<any>] -> <end>", terminating.String())

	patterned := model.StateTransition{State: "stepA", Pattern: "FAILED", Next: "end1"}
	assert.False(t, patterned.Unconditional())
	assert.Equal(t, "stepA [FAILED] -> end1", patterned.String())
}
