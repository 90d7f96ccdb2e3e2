// Package processor provides the Fx module for the pay calculation component.
// It registers the processor builder with the component registry.
package processor

import (
	"go.uber.org/fx"

	core "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NewPayCalculationProcessorBuilder creates the ItemProcessorBuilder for the
// pay calculation processor.
func NewPayCalculationProcessorBuilder() support.ItemProcessorBuilder {
	return func(cfg *config.Config, properties map[string]string) (core.ItemProcessor[any, any], error) {
		_ = cfg

		processor, err := NewPayCalculationProcessor(properties)
		if err != nil {
			return nil, err
		}
		return processor, nil
	}
}

// RegisterPayCalculationProcessorBuilder registers the builder with the
// component registry. The key "payCalculationProcessor" must match the
// processor attribute in the job definition XML.
func RegisterPayCalculationProcessorBuilder(
	registry *support.ComponentRegistry,
	builder support.ItemProcessorBuilder,
) {
	registry.RegisterProcessor("payCalculationProcessor", builder)
	logger.Debugf("Item processor builder for PayCalculationProcessor registered. Definition ref: 'payCalculationProcessor'")
}

// Module defines the Fx options for the pay calculation component.
var Module = fx.Options(
	fx.Provide(fx.Annotate(
		NewPayCalculationProcessorBuilder,
		fx.ResultTags(`name:"payCalculationProcessor"`),
	)),
	fx.Invoke(fx.Annotate(
		RegisterPayCalculationProcessorBuilder,
		fx.ParamTags(``, `name:"payCalculationProcessor"`),
	)),
)
