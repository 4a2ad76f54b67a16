// Package backend selects and wires the persistence adapter for the
// configured data backend.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"lista/internal/amqp"
	"lista/internal/persist/memory"
	"lista/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateBackend implements Factory.CreateBackend.
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	publisher := f.connectAMQP(config)

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", publisher != nil)

	return &Result{
		Persister: repo,
		Publisher: publisher,
		Cleanup: func() error {
			if publisher != nil {
				_ = publisher.Close()
			}
			return repo.Close()
		},
	}, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*Result, error) {
	publisher := f.connectAMQP(config)

	f.logger.Info("Initialized in-memory backend", "amqp_enabled", publisher != nil)

	return &Result{
		Persister: memory.New(),
		Publisher: publisher,
		Cleanup: func() error {
			if publisher != nil {
				return publisher.Close()
			}
			return nil
		},
	}, nil
}

// connectAMQP tries to reach the broker. Failure downgrades to a nil
// publisher so the list still works without the export pipeline.
func (f *DefaultFactory) connectAMQP(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}
	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
		return nil
	}
	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
