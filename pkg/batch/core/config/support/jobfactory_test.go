package support_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	port "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

const nightlyJobXML = `
<job id="nightly">
  <step name="collect" next="load">
    <task tasklet="auditTasklet">
      <property name="phase" value="collect"/>
    </task>
  </step>
  <step name="load">
    <chunk-oriented reader="csvReader" writer="dbWriter" commit-interval="3"/>
    <end on="*"/>
  </step>
</job>`

// newTestFactory builds a factory around fresh registries with every stub
// component registered.
func newTestFactory() *support.JobFactory {
	components := support.NewComponentRegistry()
	registerStubs(components)
	return support.NewJobFactory(support.JobFactoryParams{
		Cfg:         config.NewConfig(),
		Expander:    config.NewOsEnvironmentExpander(),
		Components:  components,
		Definitions: support.NewDefinitionRegistry(),
	})
}

func TestJobFactoryLoadFromBytes(t *testing.T) {
	factory := newTestFactory()
	ctx := context.Background()

	require.NoError(t, factory.LoadFromBytes(ctx, []byte(nightlyJobXML)))
	assert.Equal(t, 1, factory.Definitions().Count())

	def, err := factory.BuildJob("nightly")
	require.NoError(t, err)
	assert.Equal(t, "nightly", def.Name)
	require.Len(t, def.Steps, 2)
	assert.Equal(t, "collect", def.Flow.StartState)

	// Case: an unknown job name fails the lookup.
	_, err = factory.BuildJob("ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definition for job 'ghost' not found")

	// Case: loading the same job id again collides in the registry.
	err = factory.LoadFromBytes(ctx, []byte(nightlyJobXML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 'nightly' is already registered")
}

func TestJobFactoryLoadFromBytesExpandsEnvironment(t *testing.T) {
	t.Setenv("NIGHTLY_PHASE", "publish")

	factory := newTestFactory()
	doc := `
<job id="nightly">
  <step name="collect">
    <task tasklet="auditTasklet">
      <property name="phase" value="${NIGHTLY_PHASE}"/>
    </task>
    <end on="*"/>
  </step>
</job>`
	require.NoError(t, factory.LoadFromBytes(context.Background(), []byte(doc)))

	def, err := factory.BuildJob("nightly")
	require.NoError(t, err)
	step, ok := def.StepByName("collect")
	require.True(t, ok)
	assert.Equal(t, "publish", step.Properties["phase"])
}

func TestJobFactoryRejectsUnresolvableRefs(t *testing.T) {
	// No component builders registered at all.
	factory := support.NewJobFactory(support.JobFactoryParams{
		Cfg:         config.NewConfig(),
		Expander:    config.NewOsEnvironmentExpander(),
		Components:  support.NewComponentRegistry(),
		Definitions: support.NewDefinitionRegistry(),
	})

	err := factory.LoadFromBytes(context.Background(), []byte(nightlyJobXML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 'nightly' declares unresolvable component references")
	assert.Equal(t, 0, factory.Definitions().Count())
}

func TestJobFactoryBuildStepComponents(t *testing.T) {
	factory := newTestFactory()
	require.NoError(t, factory.LoadFromBytes(context.Background(), []byte(nightlyJobXML)))

	def, err := factory.BuildJob("nightly")
	require.NoError(t, err)

	// Case 1: a tasklet step yields its tasklet.
	collect, ok := def.StepByName("collect")
	require.True(t, ok)
	built, err := factory.BuildStepComponents(collect)
	require.NoError(t, err)
	require.Contains(t, built, "tasklet")
	_, isTasklet := built["tasklet"].(port.Tasklet)
	assert.True(t, isTasklet)

	// Case 2: a chunk step yields reader, processor, and writer.
	load, ok := def.StepByName("load")
	require.True(t, ok)
	built, err = factory.BuildStepComponents(load)
	require.NoError(t, err)
	assert.Contains(t, built, "reader")
	assert.Contains(t, built, "processor")
	assert.Contains(t, built, "writer")

	// Case 3: a reference step yields nothing.
	built, err = factory.BuildStepComponents(model.StepDefinition{
		Name: "external",
		Kind: model.StepKindReference,
	})
	require.NoError(t, err)
	assert.Empty(t, built)

	// Case 4: a definition referencing an unregistered builder fails to build.
	_, err = factory.BuildStepComponents(model.StepDefinition{
		Name:    "broken",
		Kind:    model.StepKindTasklet,
		Tasklet: &model.TaskletSpec{Ref: "ghost"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build tasklet 'ghost' of step 'broken'")
}

func TestJobFactoryLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.xml"),
		[]byte(`<job id="alpha"><step name="one"><task tasklet="auditTasklet"/><end on="*"/></step></job>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.xml"),
		[]byte(`<job id="beta"><step name="one"><task tasklet="auditTasklet"/><end on="*"/></step></job>`), 0o644))

	factory := newTestFactory()
	require.NoError(t, factory.LoadFromDir(context.Background(), dir))
	assert.Equal(t, []string{"alpha", "beta"}, factory.Definitions().Jobs())
}

func TestJobFactoryLoadFromFilesKeepsGoodFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.xml")
	bad := filepath.Join(dir, "bad.xml")
	require.NoError(t, os.WriteFile(good,
		[]byte(`<job id="alpha"><step name="one"><task tasklet="auditTasklet"/><end on="*"/></step></job>`), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte(`<job id="broken"/>`), 0o644))

	factory := newTestFactory()
	err := factory.LoadFromFiles(context.Background(), []string{good, bad})

	// The bad file is reported; the good one is registered anyway.
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.xml")
	assert.Equal(t, 1, factory.Definitions().Count())

	_, lookupErr := factory.BuildJob("alpha")
	assert.NoError(t, lookupErr)
}

func TestJobFactoryGetConfig(t *testing.T) {
	cfg := config.NewConfig()
	factory := support.NewJobFactory(support.JobFactoryParams{
		Cfg:         cfg,
		Expander:    config.NewOsEnvironmentExpander(),
		Components:  support.NewComponentRegistry(),
		Definitions: support.NewDefinitionRegistry(),
	})
	assert.Same(t, cfg, factory.GetConfig())
}
