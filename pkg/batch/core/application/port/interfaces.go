// Package port defines the component interfaces of the batch toolkit.
// These are the contracts a registered tasklet, reader, processor, or writer
// implements; the execution engine that drives them lives outside this
// module, so the surface is limited to what registration and construction
// need.
package port

import (
	"context"
	"errors"

	model "github.com/hamaguri/riptide/pkg/batch/core/domain/model"
)

// ErrNoMoreItems is returned by ItemReader.Read when the input is exhausted.
var ErrNoMoreItems = errors.New("no more items to read")

// Tasklet is the interface for a step that performs a single operation.
type Tasklet interface {
	// Execute runs the business logic of the Tasklet.
	//
	// Returns: The terminal status of the operation, typically COMPLETED.
	Execute(ctx context.Context) (model.BatchStatus, error)
	// Close releases resources.
	Close(ctx context.Context) error
}

// ItemReader is the interface for a data reading component.
// O is the type of item to be read.
type ItemReader[O any] interface {
	// Open opens the underlying resources.
	Open(ctx context.Context) error
	// Read reads the next item. Returns ErrNoMoreItems when the input is exhausted.
	Read(ctx context.Context) (O, error)
	// Close closes the underlying resources.
	Close(ctx context.Context) error
}

// ItemProcessor is the interface for an item processing component.
// I is the type of input item, O is the type of output item.
type ItemProcessor[I, O any] interface {
	// Process transforms an input item into an output item.
	Process(ctx context.Context, item I) (O, error)
}

// ItemWriter is the interface for a data writing component.
// I is the type of item to be written.
type ItemWriter[I any] interface {
	// Open opens the underlying resources.
	Open(ctx context.Context) error
	// Write persists a list of items.
	Write(ctx context.Context, items []I) error
	// Close closes the underlying resources.
	Close(ctx context.Context) error
}
