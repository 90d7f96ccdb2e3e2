// Package tasklet provides the audit checkpoint component of the payroll
// example. The same tasklet backs every audit step; the phase property tells
// the checkpoints apart.
package tasklet

import (
	"context"
	"time"

	configbinder "github.com/hamaguri/riptide/pkg/batch/support/util/configbinder"
	"github.com/hamaguri/riptide/pkg/batch/support/util/exception"
	"github.com/hamaguri/riptide/pkg/batch/support/util/logger"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// ModuleAuditTasklet identifies this component in wrapped errors.
const ModuleAuditTasklet = "audit_tasklet"

// AuditTaskletConfig binds the step properties of the audit tasklet.
type AuditTaskletConfig struct {
	// Phase is the pipeline phase the checkpoint records. Required.
	Phase string `yaml:"phase"`
}

// AuditTasklet records an audit checkpoint for one phase of the payroll run.
type AuditTasklet struct {
	taskletConfig *AuditTaskletConfig
}

// NewAuditTasklet creates a new AuditTasklet.
// It binds the provided properties to the tasklet's configuration.
func NewAuditTasklet(properties map[string]string) (*AuditTasklet, error) {
	taskletCfg := &AuditTaskletConfig{}

	if err := configbinder.BindProperties(properties, taskletCfg); err != nil {
		return nil, exception.NewBatchError(ModuleAuditTasklet, "Failed to bind properties", err)
	}

	if taskletCfg.Phase == "" {
		return nil, exception.NewBatchError(ModuleAuditTasklet, "phase property is required", nil)
	}

	return &AuditTasklet{taskletConfig: taskletCfg}, nil
}

// Execute records the audit checkpoint.
func (t *AuditTasklet) Execute(ctx context.Context) (model.BatchStatus, error) {
	select {
	case <-ctx.Done():
		return model.BatchStatusFailed, ctx.Err()
	default:
	}

	logger.Infof("AuditTasklet: Checkpoint '%s' recorded at %s.", t.taskletConfig.Phase, time.Now().Format(time.RFC3339))
	return model.BatchStatusCompleted, nil
}

// Close releases any resources held by the tasklet. The audit tasklet holds
// none.
func (t *AuditTasklet) Close(ctx context.Context) error {
	logger.Debugf("AuditTasklet: Close called for phase '%s'.", t.taskletConfig.Phase)
	return nil
}

var _ core.Tasklet = (*AuditTasklet)(nil)
