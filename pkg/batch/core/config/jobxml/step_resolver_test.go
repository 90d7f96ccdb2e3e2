package jobxml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobxml "github.com/hamaguri/riptide/pkg/batch/core/config/jobxml"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	testutil "github.com/hamaguri/riptide/pkg/batch/test"
)

func TestResolveStepReference(t *testing.T) {
	def, err := jobxml.ResolveStep(testutil.NewTestStepSpec("external"), 0)
	require.NoError(t, err)

	assert.Equal(t, "external", def.Name)
	assert.Equal(t, model.StepKindReference, def.Kind)
	assert.Nil(t, def.Tasklet)
	assert.Nil(t, def.Chunk)
	assert.Equal(t, model.DefaultRepositoryRef, def.RepositoryRef)
	assert.Equal(t, model.DefaultTransactionManagerRef, def.TransactionManagerRef)
}

func TestResolveStepTasklet(t *testing.T) {
	spec := testutil.NewTestTaskletStepSpec("audit", "auditTasklet")
	spec.Tasks[0].RepositoryRef = "customRepository"
	spec.Tasks[0].Properties = []jobxml.PropertySpec{
		{Name: "phase", Value: "collect"},
		{Name: "phase", Value: "publish"},
	}

	def, err := jobxml.ResolveStep(spec, 0)
	require.NoError(t, err)

	assert.Equal(t, model.StepKindTasklet, def.Kind)
	require.NotNil(t, def.Tasklet)
	assert.Equal(t, "auditTasklet", def.Tasklet.Ref)
	assert.Equal(t, "customRepository", def.RepositoryRef)
	assert.Equal(t, model.DefaultTransactionManagerRef, def.TransactionManagerRef)
	// A later property with the same name overrides the earlier one.
	assert.Equal(t, map[string]string{"phase": "publish"}, def.Properties)
}

func TestResolveStepChunkDefaults(t *testing.T) {
	def, err := jobxml.ResolveStep(testutil.NewTestChunkStepSpec("load", "csvReader", "dbWriter"), 0)
	require.NoError(t, err)

	assert.Equal(t, model.StepKindChunk, def.Kind)
	require.NotNil(t, def.Chunk)
	assert.Equal(t, "csvReader", def.Chunk.ReaderRef)
	assert.Equal(t, "dbWriter", def.Chunk.WriterRef)
	assert.Equal(t, model.DefaultProcessorRef, def.Chunk.ProcessorRef)
	assert.Equal(t, model.DefaultCommitInterval, def.Chunk.CommitInterval)
	assert.Nil(t, def.Properties)
}

func TestResolveStepChunkExplicit(t *testing.T) {
	spec := testutil.NewTestChunkStepSpec("load", "csvReader", "dbWriter")
	spec.Chunks[0].ProcessorRef = "enrichProcessor"
	spec.Chunks[0].CommitInterval = "25"
	spec.Chunks[0].TransactionManagerRef = "customTx"

	def, err := jobxml.ResolveStep(spec, 0)
	require.NoError(t, err)

	assert.Equal(t, "enrichProcessor", def.Chunk.ProcessorRef)
	assert.Equal(t, 25, def.Chunk.CommitInterval)
	assert.Equal(t, "customTx", def.TransactionManagerRef)
}

func TestResolveStepSynthesizedName(t *testing.T) {
	spec := testutil.NewTestTaskletStepSpec("", "auditTasklet")

	def, err := jobxml.ResolveStep(spec, 3)
	require.NoError(t, err)
	assert.Equal(t, "step3", def.Name)
}

func TestResolveStepMalformed(t *testing.T) {
	cases := []struct {
		name    string
		spec    *jobxml.StepSpec
		message string
	}{
		{
			name: "two task elements",
			spec: &jobxml.StepSpec{Name: "broken", Tasks: []jobxml.TaskSpec{
				{TaskletRef: "a"}, {TaskletRef: "b"},
			}},
			message: "at most one task or chunk-oriented element",
		},
		{
			name: "task and chunk together",
			spec: &jobxml.StepSpec{
				Name:   "broken",
				Tasks:  []jobxml.TaskSpec{{TaskletRef: "a"}},
				Chunks: []jobxml.ChunkOrientedSpec{{ReaderRef: "r", WriterRef: "w"}},
			},
			message: "mutually exclusive",
		},
		{
			name:    "no name and no inline definition",
			spec:    &jobxml.StepSpec{},
			message: "requires a name or an inline task",
		},
		{
			name:    "task without tasklet reference",
			spec:    &jobxml.StepSpec{Name: "broken", Tasks: []jobxml.TaskSpec{{}}},
			message: "task element requires a tasklet reference",
		},
		{
			name:    "chunk without reader",
			spec:    &jobxml.StepSpec{Name: "broken", Chunks: []jobxml.ChunkOrientedSpec{{WriterRef: "w"}}},
			message: "requires a reader reference",
		},
		{
			name:    "chunk without writer",
			spec:    &jobxml.StepSpec{Name: "broken", Chunks: []jobxml.ChunkOrientedSpec{{ReaderRef: "r"}}},
			message: "requires a writer reference",
		},
		{
			name: "commit interval not a number",
			spec: &jobxml.StepSpec{Name: "broken", Chunks: []jobxml.ChunkOrientedSpec{
				{ReaderRef: "r", WriterRef: "w", CommitInterval: "many"},
			}},
			message: "commit-interval 'many' is not a number",
		},
		{
			name: "commit interval below one",
			spec: &jobxml.StepSpec{Name: "broken", Chunks: []jobxml.ChunkOrientedSpec{
				{ReaderRef: "r", WriterRef: "w", CommitInterval: "0"},
			}},
			message: "commit-interval must be at least 1, got 0",
		},
		{
			name: "property without name",
			spec: &jobxml.StepSpec{Name: "broken", Tasks: []jobxml.TaskSpec{
				{TaskletRef: "a", Properties: []jobxml.PropertySpec{{Value: "orphan"}}},
			}},
			message: "property element requires a name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jobxml.ResolveStep(tc.spec, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
