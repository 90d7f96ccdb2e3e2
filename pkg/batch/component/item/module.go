// Package item provides the framework's generic components: the no-op reader,
// writer and tasklet, and the pass-through processor.
package item

import (
	"go.uber.org/fx"

	port "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	config "github.com/hamaguri/riptide/pkg/batch/core/config"
	support "github.com/hamaguri/riptide/pkg/batch/core/config/support"
	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NewNoOpItemReaderBuilder creates a support.ItemReaderBuilder for the no-op reader.
func NewNoOpItemReaderBuilder() support.ItemReaderBuilder {
	return func(_ *config.Config, _ map[string]string) (port.ItemReader[any], error) {
		// NewNoOpItemReader does not require any dependencies.
		return NewNoOpItemReader[any](), nil
	}
}

// NewPassThroughItemProcessorBuilder creates a support.ItemProcessorBuilder for
// the pass-through processor.
func NewPassThroughItemProcessorBuilder() support.ItemProcessorBuilder {
	return func(_ *config.Config, _ map[string]string) (port.ItemProcessor[any, any], error) {
		// NewPassThroughItemProcessor does not require any dependencies.
		return NewPassThroughItemProcessor[any](), nil
	}
}

// NewNoOpItemWriterBuilder creates a support.ItemWriterBuilder for the no-op writer.
func NewNoOpItemWriterBuilder() support.ItemWriterBuilder {
	return func(_ *config.Config, _ map[string]string) (port.ItemWriter[any], error) {
		// NewNoOpItemWriter does not require any dependencies.
		return NewNoOpItemWriter[any](), nil
	}
}

// NewNoOpTaskletBuilder creates a support.TaskletBuilder for the no-op tasklet.
func NewNoOpTaskletBuilder() support.TaskletBuilder {
	return func(_ *config.Config, _ map[string]string) (port.Tasklet, error) {
		return NewNoOpTasklet("noop"), nil
	}
}

// RegisterGenericItemComponents registers the generic item components with the
// ComponentRegistry. The registered processor name matches the ref attached to
// chunk steps that declare no processor of their own.
func RegisterGenericItemComponents(registry *support.ComponentRegistry) {
	registry.RegisterReader("noop", NewNoOpItemReaderBuilder())
	registry.RegisterProcessor(model.DefaultProcessorRef, NewPassThroughItemProcessorBuilder())
	registry.RegisterWriter("noop", NewNoOpItemWriterBuilder())
	registry.RegisterTasklet("noop", NewNoOpTaskletBuilder())
	logger.Debugf("Generic item components (noop reader, %s processor, noop writer, noop tasklet) were registered.", model.DefaultProcessorRef)
}

// Module defines Fx options for the generic item components provided by the framework.
var Module = fx.Options(
	fx.Invoke(RegisterGenericItemComponents),
)
