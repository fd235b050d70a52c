package worker

import (
	"context"
)

// Worker is the lifecycle contract all background workers satisfy.
type Worker interface {
	// Start runs the worker loop until stopped or the context ends.
	Start(ctx context.Context) error

	// Stop signals the worker to shut down.
	Stop() error

	// Name identifies the worker in logs.
	Name() string
}
