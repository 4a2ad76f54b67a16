// Package worker drains list sync messages and mirrors the persisted list
// into the spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"lista/internal/amqp"
	"lista/internal/export"
	"lista/internal/persist"
)

// ExportWorker reads the authoritative snapshot from storage on every
// message, so late or coalesced deliveries still export the latest state.
type ExportWorker struct {
	loader   persist.Loader
	exporter export.Exporter

	lastRevision atomic.Int64
}

func NewExportWorker(loader persist.Loader, exporter export.Exporter) *ExportWorker {
	return &ExportWorker{
		loader:   loader,
		exporter: exporter,
	}
}

// HandleSyncMessage processes one list sync message. Stale revisions are
// acknowledged without exporting; explicit export requests always run.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ListSyncMessage) error {
	if msg.Reason != amqp.ReasonExport && msg.Revision <= w.lastRevision.Load() {
		slog.DebugContext(ctx, "Skipping stale sync message",
			"revision", msg.Revision,
			"last_revision", w.lastRevision.Load())
		return nil
	}

	snap, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	ref, err := w.exporter.Export(ctx, snap)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	// Explicit export requests may carry an old revision; never move the
	// high-water mark backwards or already-exported changes replay.
	if msg.Revision > w.lastRevision.Load() {
		w.lastRevision.Store(msg.Revision)
	}
	slog.InfoContext(ctx, "Snapshot exported",
		"revision", msg.Revision,
		"reason", msg.Reason,
		"items", len(snap.Items),
		"ref", ref)
	return nil
}

// Reconcile pushes the current snapshot unconditionally. The worker binary
// runs it on startup and on a timer to catch messages lost while the broker
// or the worker was down.
func (w *ExportWorker) Reconcile(ctx context.Context) error {
	snap, err := w.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	ref, err := w.exporter.Export(ctx, snap)
	if err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Reconcile export completed", "items", len(snap.Items), "ref", ref)
	return nil
}
