// Package storage is the SQLite persistence adapter. It mirrors the
// in-memory session state: two logical slots, the ordered item sequence and
// the budget scalar, written together on every save.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"lista/internal/core"

	_ "modernc.org/sqlite"
)

const budgetKey = "budget_cents"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save implements persist.Saver. The whole list and the budget are replaced
// in one transaction so a later Load always sees a consistent pair.
func (r *SQLiteRepository) Save(ctx context.Context, snap core.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM list_items`); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}
	for i, it := range snap.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO list_items (position, id, product, price_cents, quantity) VALUES (?, ?, ?, ?, ?)`,
			i, it.ID, it.Product, it.PriceCents, it.Quantity)
		if err != nil {
			return fmt.Errorf("insert item %q: %w", it.Product, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		budgetKey, strconv.FormatInt(snap.BudgetCents, 10))
	if err != nil {
		return fmt.Errorf("save budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "List saved",
		"items", len(snap.Items),
		"budget_cents", snap.BudgetCents)
	return nil
}

// Load implements persist.Loader. Missing data yields the empty snapshot.
// Rows that fail the model invariants and an unparseable budget are dropped
// with a warning instead of failing the load.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, product, price_cents, quantity FROM list_items ORDER BY position`)
	if err != nil {
		return snap, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it core.Item
		if err := rows.Scan(&it.ID, &it.Product, &it.PriceCents, &it.Quantity); err != nil {
			slog.WarnContext(ctx, "Dropping unreadable list row", "error", err)
			continue
		}
		snap.Items = append(snap.Items, it)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate items: %w", err)
	}

	var raw string
	err = r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, budgetKey).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		// no budget stored yet
	case err != nil:
		return snap, fmt.Errorf("query budget: %w", err)
	default:
		cents, perr := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if perr != nil || cents < 0 {
			slog.WarnContext(ctx, "Stored budget unparseable, resetting to unset",
				"value", raw, "error", perr)
		} else {
			snap.BudgetCents = cents
		}
	}

	return snap, nil
}
