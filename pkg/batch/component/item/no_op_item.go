package item

import (
	"context"

	port "github.com/hamaguri/riptide/pkg/batch/core/application/port"
	logger "github.com/hamaguri/riptide/pkg/batch/support/util/logger"
)

// NoOpItemReader is an implementation of [port.ItemReader] that is always exhausted.
type NoOpItemReader[O any] struct{}

// NewNoOpItemReader creates a new instance of [NoOpItemReader].
func NewNoOpItemReader[O any]() port.ItemReader[O] {
	return &NoOpItemReader[O]{}
}

// Open prepares the reader. There is nothing to prepare.
func (r *NoOpItemReader[O]) Open(ctx context.Context) error {
	logger.Debugf("NoOpItemReader: Open called.")
	return nil
}

// Read always returns the zero value of type O and [port.ErrNoMoreItems].
func (r *NoOpItemReader[O]) Read(ctx context.Context) (O, error) {
	var zero O
	return zero, port.ErrNoMoreItems
}

// Close releases any resources held by the reader.
func (r *NoOpItemReader[O]) Close(ctx context.Context) error {
	logger.Debugf("NoOpItemReader: Close called.")
	return nil
}

// NoOpItemWriter is an implementation of [port.ItemWriter] that performs no operation.
type NoOpItemWriter[I any] struct{}

// NewNoOpItemWriter creates a new instance of [NoOpItemWriter].
func NewNoOpItemWriter[I any]() port.ItemWriter[I] {
	return &NoOpItemWriter[I]{}
}

// Open prepares the writer. There is nothing to prepare.
func (w *NoOpItemWriter[I]) Open(ctx context.Context) error {
	logger.Debugf("NoOpItemWriter: Open called.")
	return nil
}

// Write performs no operation, effectively discarding the items.
func (w *NoOpItemWriter[I]) Write(ctx context.Context, items []I) error {
	logger.Debugf("NoOpItemWriter: Write called with %d items.", len(items))
	return nil
}

// Close releases any resources held by the writer.
func (w *NoOpItemWriter[I]) Close(ctx context.Context) error {
	logger.Debugf("NoOpItemWriter: Close called.")
	return nil
}
