package item

import (
	"context"

	port "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NoOpTasklet is a [port.Tasklet] that does nothing and completes immediately.
// It gives tasklet steps a registered default to point at in smoke tests and
// placeholder flows.
type NoOpTasklet struct {
	id string
}

// NewNoOpTasklet creates a new instance of [NoOpTasklet].
func NewNoOpTasklet(id string) *NoOpTasklet {
	return &NoOpTasklet{id: id}
}

// Execute completes without doing any work.
func (t *NoOpTasklet) Execute(ctx context.Context) (model.BatchStatus, error) {
	logger.Infof("NoOpTasklet '%s': Completed successfully.", t.id)
	return model.BatchStatusCompleted, nil
}

// Close releases any resources held by the tasklet.
func (t *NoOpTasklet) Close(ctx context.Context) error {
	return nil
}

// Verify that [NoOpTasklet] satisfies the [port.Tasklet] interface.
var _ port.Tasklet = (*NoOpTasklet)(nil)
