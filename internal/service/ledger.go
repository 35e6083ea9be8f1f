// Package service orchestrates the ledger lifecycle: loading and normalizing
// raw rows from the tabular store, and reconciling edited views back into a
// full-overwrite save.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/store"
)

// SaveEventPublisher is notified after every successful overwrite. The
// publish is best-effort: failures are logged, never surfaced to the caller.
type SaveEventPublisher interface {
	PublishLedgerSaved(ctx context.Context, backend string, rows int) error
}

// LedgerService is the single stateful boundary between the pure core and
// the tabular store. The ledger itself is always an immutable value: every
// interaction reloads, derives, and (on writes) persists a full replacement.
type LedgerService struct {
	store   store.Store
	backend string
	events  SaveEventPublisher
}

// NewLedgerService wires a service over the given store. events may be nil.
func NewLedgerService(st store.Store, backend string, events SaveEventPublisher) *LedgerService {
	return &LedgerService{store: st, backend: backend, events: events}
}

// Load fetches and normalizes the full ledger, sorted most recent first.
//
// Failures are never fatal here: a store error degrades to an empty ledger
// with a warning so the dashboard keeps rendering, and rows whose date does
// not parse are dropped silently beyond a count in the log.
func (s *LedgerService) Load(ctx context.Context) core.Ledger {
	raws, err := s.store.ReadAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Ledger load failed, continuing with empty ledger",
			"backend", s.backend, "error", err)
		return core.Ledger{}
	}

	ledger := make(core.Ledger, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		tx, err := core.ParseRow(raw)
		if err != nil {
			dropped++
			continue
		}
		ledger = append(ledger, tx)
	}
	if dropped > 0 {
		slog.WarnContext(ctx, "Dropped rows with unparseable dates",
			"dropped_rows", dropped, "kept_rows", len(ledger))
	}
	return ledger.SortedByDateDesc()
}

// Save persists the ledger as a full replacement of the remote resource.
// On failure the caller's in-memory ledger is untouched and the error is
// surfaced; there is no retry and no partial-success reporting.
func (s *LedgerService) Save(ctx context.Context, ledger core.Ledger) error {
	if err := s.store.OverwriteAll(ctx, core.Header(), ledger.Rows()); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	if s.events != nil {
		if err := s.events.PublishLedgerSaved(ctx, s.backend, len(ledger)); err != nil {
			slog.WarnContext(ctx, "Failed to publish ledger saved event", "error", err)
		}
	}
	return nil
}

// Add records one new transaction from the entry form: validate, assign an
// id, append to the freshly loaded ledger, and save the full replacement.
func (s *LedgerService) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if tx.ID == "" {
		tx.ID = core.NewID()
	}
	ledger := append(s.Load(ctx), tx)
	if err := s.Save(ctx, ledger.SortedByDateDesc()); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction recorded",
		"transaction_id", tx.ID, "kind", string(tx.Kind), "category", tx.Category)
	return tx, nil
}

// SaveEdited reconciles an edited grid view back into the full ledger.
//
// period must be the filter window that was active when the grid was shown:
// the visible-id set is recomputed from it against the current full ledger,
// then rows inside the window are replaced wholesale by edited and rows
// outside it are never touched. Returns the persisted final ledger.
func (s *LedgerService) SaveEdited(ctx context.Context, period core.Period, edited core.Ledger) (core.Ledger, error) {
	full := s.Load(ctx)
	final := core.Reconcile(full, core.VisibleIDs(full, period), edited)
	if err := s.Save(ctx, final); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Ledger reconciled and saved",
		"year", period.Year, "month", period.Month,
		"edited_rows", len(edited), "total_rows", len(final))
	return final, nil
}

// InitHeader writes just the header row to the store, making a brand-new
// empty resource usable.
func (s *LedgerService) InitHeader(ctx context.Context) error {
	return s.store.OverwriteAll(ctx, core.Header(), nil)
}
