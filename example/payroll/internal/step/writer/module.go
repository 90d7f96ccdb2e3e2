// Package writer provides the Fx module for the payslip writer component.
// It registers the writer builder with the component registry.
package writer

import (
	"go.uber.org/fx"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NewPayslipWriterBuilder creates the ItemWriterBuilder for the payslip
// writer.
func NewPayslipWriterBuilder() support.ItemWriterBuilder {
	return func(cfg *config.Config, properties map[string]string) (core.ItemWriter[any], error) {
		_ = cfg

		writer, err := NewPayslipWriter(properties)
		if err != nil {
			return nil, err
		}
		return writer, nil
	}
}

// RegisterPayslipWriterBuilder registers the builder with the component
// registry. The key "payslipWriter" must match the writer attribute in the
// job definition XML.
func RegisterPayslipWriterBuilder(
	registry *support.ComponentRegistry,
	builder support.ItemWriterBuilder,
) {
	registry.RegisterWriter("payslipWriter", builder)
	logger.Debugf("Item writer builder for PayslipWriter registered. Definition ref: 'payslipWriter'")
}

// Module defines the Fx options for the payslip writer component.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPayslipWriterBuilder,
		fx.ResultTags(`name:"payslipWriter"`),
	)),
	fx.Invoke(fx.Annotate(
		RegisterPayslipWriterBuilder,
		fx.ParamTags(``, `name:"payslipWriter"`),
	)),
)
