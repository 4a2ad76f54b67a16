// Package services orchestrates list operations: validate, mutate the
// session state, persist, and hand the outcome to the presentation layer.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"lista/internal/amqp"
	"lista/internal/core"
	"lista/internal/list"
	"lista/internal/persist"
)

// ListPublisher publishes list sync messages for the export worker.
// Satisfied by *amqp.Client; nil disables publishing.
type ListPublisher interface {
	PublishListSync(ctx context.Context, revision int64, reason string) error
}

// ListService is the controller: it owns the add-vs-edit state machine and
// the persist-after-every-mutation discipline. A failed persistence write
// never rolls back the in-memory state; durability is lost for that write
// and the caller is told so it can warn the user.
type ListService struct {
	store     *list.Store
	persister persist.LoaderSaver
	publisher ListPublisher
	revision  atomic.Int64

	mu          sync.Mutex
	loadWarning string
}

func NewListService(store *list.Store, persister persist.LoaderSaver, publisher ListPublisher) *ListService {
	return &ListService{
		store:     store,
		persister: persister,
		publisher: publisher,
	}
}

type (
	SubmitResult struct {
		Item          core.Item
		Updated       bool
		PersistFailed bool
	}

	DeleteResult struct {
		Removed       bool
		WasEditing    bool
		PersistFailed bool
	}

	BudgetResult struct {
		BudgetCents   int64
		PersistFailed bool
	}
)

// Hydrate loads the persisted state into the session. Unparseable storage
// and invariant-violating items degrade to defaults with a user-visible
// warning, and the cleaned state is persisted right away so the corruption
// does not recur on the next load.
func (s *ListService) Hydrate(ctx context.Context) {
	snap, err := s.persister.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load persisted list, starting empty", "error", err)
		s.setLoadWarning("Stored list could not be read; starting with an empty list")
		s.store.Hydrate(core.Snapshot{})
		s.persistAndPublish(ctx)
		return
	}

	dropped := s.store.Hydrate(snap)
	if dropped > 0 {
		slog.WarnContext(ctx, "Dropped corrupted items on load", "dropped", dropped)
		s.setLoadWarning(fmt.Sprintf("Dropped %d corrupted item(s) from the stored list", dropped))
		s.persistAndPublish(ctx)
		return
	}

	slog.InfoContext(ctx, "List hydrated",
		"items", len(snap.Items),
		"budget_cents", snap.BudgetCents)
}

func (s *ListService) setLoadWarning(msg string) {
	s.mu.Lock()
	s.loadWarning = msg
	s.mu.Unlock()
}

// TakeLoadWarning returns the pending hydration warning once, if any.
func (s *ListService) TakeLoadWarning() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.loadWarning
	s.loadWarning = ""
	return w
}

// Submit runs the add-vs-edit state machine: parse, validate, mutate,
// persist. A validation error leaves the state untouched and is returned as
// one combined message.
func (s *ListService) Submit(ctx context.Context, product, priceRaw, quantityRaw string) (SubmitResult, error) {
	product = strings.TrimSpace(product)

	priceCents, err := core.ParseDecimalToCents(priceRaw)
	if err != nil {
		priceCents = 0 // validation reports it together with the other fields
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(quantityRaw), 10, 64)
	if err != nil {
		quantity = 0
	}

	if err := core.ValidateFields(product, priceCents, quantity); err != nil {
		return SubmitResult{}, err
	}

	var res SubmitResult
	if editing, ok := s.store.Editing(); ok {
		res.Updated = true
		if updated, found := s.store.UpdateItem(editing.ID, product, priceCents, quantity); found {
			res.Item = updated
		} else {
			// Edited item vanished underneath us; nothing to corrupt.
			res.Item = core.Item{ID: editing.ID, Product: product, PriceCents: priceCents, Quantity: quantity}
		}
		s.store.ClearEdit()
	} else {
		res.Item = s.store.AddItem(product, priceCents, quantity)
	}

	res.PersistFailed = s.persistAndPublish(ctx)

	slog.InfoContext(ctx, "Item submitted",
		"item_id", res.Item.ID,
		"product", res.Item.Product,
		"price_cents", res.Item.PriceCents,
		"quantity", res.Item.Quantity,
		"updated", res.Updated)
	return res, nil
}

// RequestEdit loads the item into the edit form and flips the state machine
// to Editing(id). Unknown ids are a no-op.
func (s *ListService) RequestEdit(id string) (core.Item, bool) {
	return s.store.BeginEdit(id)
}

// CancelEdit abandons an in-progress edit.
func (s *ListService) CancelEdit() {
	s.store.ClearEdit()
}

// RequestDelete removes the item. Deleting the item currently open for edit
// resets the state machine to Idle.
func (s *ListService) RequestDelete(ctx context.Context, id string) DeleteResult {
	removed, wasEditing := s.store.RemoveItem(id)
	res := DeleteResult{Removed: removed, WasEditing: wasEditing}
	if !removed {
		return res
	}
	res.PersistFailed = s.persistAndPublish(ctx)

	slog.InfoContext(ctx, "Item removed", "item_id", id, "was_editing", wasEditing)
	return res
}

// ChangeBudget coerces the raw input (unparseable means unset) and stores it.
func (s *ListService) ChangeBudget(ctx context.Context, raw string) BudgetResult {
	cents := core.CoerceBudget(raw)
	s.store.SetBudget(cents)
	res := BudgetResult{BudgetCents: cents}
	res.PersistFailed = s.persistAndPublish(ctx)

	slog.InfoContext(ctx, "Budget updated", "budget_cents", cents)
	return res
}

// RequestExport asks the worker to push the current snapshot to the
// spreadsheet.
func (s *ListService) RequestExport(ctx context.Context) error {
	if s.publisher == nil {
		return fmt.Errorf("spreadsheet export not configured")
	}
	rev := s.revision.Add(1)
	if err := s.publisher.PublishListSync(ctx, rev, amqp.ReasonExport); err != nil {
		return fmt.Errorf("publish export request: %w", err)
	}
	return nil
}

func (s *ListService) Snapshot() core.Snapshot {
	return s.store.Snapshot()
}

func (s *ListService) Editing() (core.Item, bool) {
	return s.store.Editing()
}

// persistAndPublish flushes the session state and tells the worker about
// the change. Both are best effort: failures are logged and reported, the
// in-memory state stays authoritative.
func (s *ListService) persistAndPublish(ctx context.Context) (persistFailed bool) {
	snap := s.store.Snapshot()
	if err := s.persister.Save(ctx, snap); err != nil {
		slog.ErrorContext(ctx, "Failed to persist list, in-memory state remains authoritative",
			"error", err,
			"items", len(snap.Items))
		persistFailed = true
	}

	if s.publisher != nil {
		rev := s.revision.Add(1)
		if err := s.publisher.PublishListSync(ctx, rev, amqp.ReasonChange); err != nil {
			slog.WarnContext(ctx, "Failed to publish list sync message", "error", err, "revision", rev)
		}
	}
	return persistFailed
}
