// Package sqlite keeps a local tabular mirror of the ledger. It serves two
// roles: an offline-capable primary backend, and the target the backup
// worker mirrors the remote sheet into.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

var _ store.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
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
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ReadAll returns the mirrored rows in stored order, keyed by the canonical
// ledger header. The header itself is fixed by the schema.
func (r *Repository) ReadAll(ctx context.Context) ([]store.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, data, tipo, categoria, importo, note FROM ledger_rows ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("select ledger rows: %w", err)
	}
	defer rows.Close()

	var out []store.Row
	for rows.Next() {
		var id, data, tipo, categoria, importo, note string
		if err := rows.Scan(&id, &data, &tipo, &categoria, &importo, &note); err != nil {
			return nil, fmt.Errorf("scan ledger row: %w", err)
		}
		out = append(out, store.Row{
			core.ColID:       id,
			core.ColDate:     data,
			core.ColKind:     tipo,
			core.ColCategory: categoria,
			core.ColAmount:   importo,
			core.ColNote:     note,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger rows: %w", err)
	}
	return out, nil
}

// OverwriteAll replaces the whole mirror inside one transaction, so unlike
// the remote sheet this store never shows a half-written ledger. The header
// argument is accepted for port compatibility; the column set is fixed.
func (r *Repository) OverwriteAll(ctx context.Context, _ []string, rows [][]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin overwrite: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM ledger_rows`); err != nil {
		return fmt.Errorf("clear ledger rows: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO ledger_rows (position, id, data, tipo, categoria, importo, note) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, cols := range rows {
		padded := make([]string, 6)
		copy(padded, cols)
		if _, err := stmt.ExecContext(ctx, i, padded[0], padded[1], padded[2], padded[3], padded[4], padded[5]); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit overwrite: %w", err)
	}
	return nil
}
