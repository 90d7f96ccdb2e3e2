// Package reader provides the Fx module for the timesheet reader component.
// It registers the reader builder with the component registry.
package reader

import (
	"go.uber.org/fx"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NewTimesheetReaderBuilder creates the ItemReaderBuilder for the timesheet
// reader. The builder constructs the reader from the step's property bag.
func NewTimesheetReaderBuilder() support.ItemReaderBuilder {
	return func(cfg *config.Config, properties map[string]string) (core.ItemReader[any], error) {
		_ = cfg

		reader, err := NewTimesheetReader(properties)
		if err != nil {
			return nil, err
		}
		return reader, nil
	}
}

// RegisterTimesheetReaderBuilder registers the builder with the component
// registry. The key "timesheetReader" must match the reader attribute in the
// job definition XML.
func RegisterTimesheetReaderBuilder(
	registry *support.ComponentRegistry,
	builder support.ItemReaderBuilder,
) {
	registry.RegisterReader("timesheetReader", builder)
	logger.Debugf("Item reader builder for TimesheetReader registered. Definition ref: 'timesheetReader'")
}

// Module defines the Fx options for the timesheet reader component.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewTimesheetReaderBuilder,
		fx.ResultTags(`name:"timesheetReader"`),
	)),
	fx.Invoke(fx.Annotate(
		RegisterTimesheetReaderBuilder,
		fx.ParamTags(``, `name:"timesheetReader"`),
	)),
)
