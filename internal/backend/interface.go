package backend

import (
	"context"

	"lista/internal/amqp"
	"lista/internal/persist"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result bundles the persistence adapter with the optional AMQP client.
// Publisher is nil when the broker is unreachable or not configured; the
// application then runs without the export pipeline.
type Result struct {
	Persister persist.LoaderSaver
	Publisher *amqp.Client
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}
