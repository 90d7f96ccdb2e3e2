package jobxml_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	testutil "github.com/hamaguri/riptide/pkg/batch/test"
)

const payrollLikeJobXML = `
<job id="nightly">
  <step name="collect" next="load">
    <task tasklet="auditTasklet"/>
  </step>
  <step name="load">
    <chunk-oriented reader="csvReader" writer="dbWriter" commit-interval="3"/>
    <next on="COMPLETED" to="publish"/>
    <stop on="PAUSED" to="review"/>
    <end on="FAILED" status="FAILED"/>
  </step>
  <step name="review" next="load">
    <task tasklet="reviewTasklet"/>
  </step>
  <step name="publish">
    <task tasklet="publishTasklet"/>
    <end on="*"/>
  </step>
</job>`

func TestAssembleFlow(t *testing.T) {
	job, err := jobxml.LoadJobDefinitionFromBytes([]byte(payrollLikeJobXML), nil)
	require.NoError(t, err)

	flow, steps, err := jobxml.AssembleFlow(job, testutil.NewTestSequence())
	require.NoError(t, err)

	// The first declared step is the start state.
	assert.Equal(t, "collect", flow.StartState)

	// Step states in document order, terminal states synthesized right after
	// the step that declared them.
	assert.Equal(t, []string{"collect", "load", "end0", "end1", "review", "publish", "end2"}, flow.StateNames())
	assert.Equal(t, model.BatchStatusStopped, flow.States["end0"].TerminalStatus)
	assert.Equal(t, model.BatchStatusFailed, flow.States["end1"].TerminalStatus)
	assert.Equal(t, model.BatchStatusCompleted, flow.States["end2"].TerminalStatus)
	assert.Equal(t, model.StateKindStep, flow.States["load"].Kind)
	assert.Equal(t, model.StateKindTerminal, flow.States["end0"].Kind)

	assert.Equal(t, []model.StateTransition{
		{State: "collect", Next: "load"},
		{State: "load", Pattern: "COMPLETED", Next: "publish"},
		{State: "end0", Pattern: "PAUSED", Next: "review"},
		{State: "load", Pattern: "PAUSED", Next: "end0"},
		{State: "end1"},
		{State: "load", Pattern: "FAILED", Next: "end1"},
		{State: "review", Next: "load"},
		{State: "end2"},
		{State: "publish", Pattern: "*", Next: "end2"},
	}, flow.Transitions)

	require.Len(t, steps, 4)
	assert.Equal(t, model.StepKindTasklet, steps[0].Kind)
	assert.Equal(t, model.StepKindChunk, steps[1].Kind)
	assert.Equal(t, 3, steps[1].Chunk.CommitInterval)
}

func TestAssembleFlowForwardReference(t *testing.T) {
	// A transition may target a step declared later in the file.
	doc := `
<job id="nightly">
  <step name="first" next="second"/>
  <step name="second"/>
</job>`
	job, err := jobxml.LoadJobDefinitionFromBytes([]byte(doc), nil)
	require.NoError(t, err)

	_, _, err = jobxml.AssembleFlow(job, testutil.NewTestSequence())
	assert.NoError(t, err)
}

func TestAssembleFlowUnknownTarget(t *testing.T) {
	doc := `
<job id="nightly">
  <step name="first" next="ghost"/>
</job>`
	job, err := jobxml.LoadJobDefinitionFromBytes([]byte(doc), nil)
	require.NoError(t, err)

	_, _, err = jobxml.AssembleFlow(job, testutil.NewTestSequence())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 'nightly' transition graph is invalid")
	assert.Contains(t, err.Error(), "unknown state 'ghost'")
}

func TestAssembleFlowResolutionFailurePosition(t *testing.T) {
	spec := testutil.NewTestJobSpec("nightly",
		testutil.NewTestTaskletStepSpec("first", "tasklet"),
		&jobxml.StepSpec{Name: "second", Tasks: []jobxml.TaskSpec{{}}},
	)

	_, _, err := jobxml.AssembleFlow(spec, testutil.NewTestSequence())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve step at position 1")
}

func TestAssembleFlowSynthesizedNameCollision(t *testing.T) {
	// A declared step name may collide with a name the assembler synthesizes.
	spec := testutil.NewTestJobSpec("nightly",
		testutil.NewTestTaskletStepSpec("", "tasklet"),
		testutil.NewTestStepSpec("step0"),
	)

	_, _, err := jobxml.AssembleFlow(spec, testutil.NewTestSequence())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register step 'step0'")
	assert.Contains(t, err.Error(), "duplicate state name 'step0'")
}

func TestAssembleFlowTerminalNameCollision(t *testing.T) {
	spec := testutil.NewTestJobSpec("nightly",
		testutil.NewTestStepSpec("end0"),
		testutil.NewTestStepSpec("last", testutil.NewTestEnd("*")),
	)

	_, _, err := jobxml.AssembleFlow(spec, testutil.NewTestSequence())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to register terminal state 'end0'")
}

func TestConfigurationSessionAssemble(t *testing.T) {
	session := testutil.NewTestSession()
	assert.NotEmpty(t, session.ID)

	first, err := session.Assemble(context.Background(), mustLoad(t, `
<job id="alpha">
  <step name="one">
    <end on="*"/>
  </step>
</job>`))
	require.NoError(t, err)

	second, err := session.Assemble(context.Background(), mustLoad(t, `
<job id="beta">
  <step name="one">
    <end on="*"/>
  </step>
</job>`))
	require.NoError(t, err)

	// Terminal names never collide across jobs of one session.
	assert.Contains(t, first.Flow.States, "end0")
	assert.Contains(t, second.Flow.States, "end1")

	assert.Equal(t, "alpha", first.Name)
	def, ok := first.StepByName("one")
	require.True(t, ok)
	assert.Equal(t, model.StepKindReference, def.Kind)
	_, ok = first.StepByName("two")
	assert.False(t, ok)
}

func TestConfigurationSessionAssembleError(t *testing.T) {
	session := testutil.NewTestSession()

	_, err := session.Assemble(context.Background(), mustLoad(t, `
<job id="alpha">
  <step name="one" next="ghost"/>
</job>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transition graph is invalid")
}

func mustLoad(t *testing.T, doc string) *jobxml.JobSpec {
	t.Helper()
	job, err := jobxml.LoadJobDefinitionFromBytes([]byte(doc), nil)
	require.NoError(t, err)
	return job
}
