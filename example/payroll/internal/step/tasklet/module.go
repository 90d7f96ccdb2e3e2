// Package tasklet provides the Fx module for the audit tasklet component.
// It registers the tasklet builder with the component registry.
package tasklet

import (
	"go.uber.org/fx"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NewAuditTaskletBuilder creates the TaskletBuilder for the audit tasklet.
func NewAuditTaskletBuilder() support.TaskletBuilder {
	return func(cfg *config.Config, properties map[string]string) (core.Tasklet, error) {
		_ = cfg

		tasklet, err := NewAuditTasklet(properties)
		if err != nil {
			return nil, err
		}
		return tasklet, nil
	}
}

// RegisterAuditTaskletBuilder registers the builder with the component
// registry. The key "auditTasklet" must match the tasklet attribute in the
// job definition XML.
func RegisterAuditTaskletBuilder(
	registry *support.ComponentRegistry,
	builder support.TaskletBuilder,
) {
	registry.RegisterTasklet("auditTasklet", builder)
	logger.Debugf("Tasklet builder for AuditTasklet registered. Definition ref: 'auditTasklet'")
}

// Module defines the Fx options for the audit tasklet component.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewAuditTaskletBuilder,
		fx.ResultTags(`name:"auditTasklet"`),
	)),
	fx.Invoke(fx.Annotate(
		RegisterAuditTaskletBuilder,
		fx.ParamTags(``, `name:"auditTasklet"`),
	)),
)
