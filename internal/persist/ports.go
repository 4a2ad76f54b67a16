package persist

import (
	"context"

	"lista/internal/core"
)

// Ports for the durable key-value side of the session state. A missing
// store loads as the empty snapshot; a failed save must never take the
// session down, only its durability.
type (
	Loader interface {
		Load(ctx context.Context) (core.Snapshot, error)
	}

	Saver interface {
		Save(ctx context.Context, snap core.Snapshot) error
	}

	LoaderSaver interface {
		Loader
		Saver
	}
)
