// Package backend builds the configured tabular store: the remote sheet,
// the local SQLite mirror, or the in-memory dev store.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IlRyze11/gestione-spese/internal/config"
	"github.com/IlRyze11/gestione-spese/internal/store"
	"github.com/IlRyze11/gestione-spese/internal/store/google"
	"github.com/IlRyze11/gestione-spese/internal/store/memory"
	"github.com/IlRyze11/gestione-spese/internal/store/sqlite"
)

// Result bundles the store with an optional cleanup hook.
type Result struct {
	Store   store.Store
	Cleanup func() error
}

// New creates the store selected by cfg.DataBackend. For the sheets backend
// the remote handle is opened eagerly so missing credentials or an
// unreachable spreadsheet fail at startup, per the fatal-startup contract.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	switch cfg.DataBackend {
	case "sheets":
		cli := google.New(google.Config{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			CredentialsFile:    cfg.GoogleCredentialsFile,
			HandleTTL:          cfg.SheetsHandleTTL,
		})
		if err := cli.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect to Google Sheets: %w", err)
		}
		logger.Info("Initialized Google Sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID, "handle_ttl", cfg.SheetsHandleTTL)
		return &Result{Store: cli}, nil

	case "sqlite":
		repo, err := sqlite.NewRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case "memory":
		st := memory.NewFromFile(cfg.SeedLedgerPath)
		logger.Info("Initialized memory backend", "seed", cfg.SeedLedgerPath, "rows", st.Len())
		return &Result{Store: st}, nil
	}
	return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
}
