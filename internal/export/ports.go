package export

import (
	"context"

	"lista/internal/core"
)

// Exporter pushes a full list snapshot to an external document collaborator.
// The adapter supplies formatted cells only; pagination and layout belong to
// the collaborator.
type Exporter interface {
	Export(ctx context.Context, snap core.Snapshot) (ref string, err error)
}
