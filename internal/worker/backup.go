// Package worker mirrors the primary ledger store into the local SQLite
// backup, either on ledger.saved events or on a periodic safety tick.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IlRyze11/gestione-spese/internal/amqp"
	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/store"
)

// BackupWorker copies raw rows from the primary store into the mirror. Rows
// are copied untyped so the backup is byte-faithful to the source, bad dates
// included.
type BackupWorker struct {
	primary store.Reader
	mirror  store.Writer
}

func NewBackupWorker(primary store.Reader, mirror store.Writer) *BackupWorker {
	return &BackupWorker{primary: primary, mirror: mirror}
}

// MirrorOnce copies the full ledger from the primary store to the mirror.
func (w *BackupWorker) MirrorOnce(ctx context.Context) error {
	rows, err := w.primary.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read primary store: %w", err)
	}
	header := core.Header()
	matrix := make([][]string, 0, len(rows))
	for _, row := range rows {
		cols := make([]string, len(header))
		for i, name := range header {
			cols[i] = row[name]
		}
		matrix = append(matrix, cols)
	}
	if err := w.mirror.OverwriteAll(ctx, header, matrix); err != nil {
		return fmt.Errorf("write mirror: %w", err)
	}
	slog.InfoContext(ctx, "Ledger mirrored to backup", "rows", len(matrix))
	return nil
}

// HandleSavedMessage reacts to a ledger.saved event.
func (w *BackupWorker) HandleSavedMessage(ctx context.Context, msg *amqp.LedgerSavedMessage) error {
	slog.InfoContext(ctx, "Processing ledger saved event",
		"backend", msg.Backend, "rows", msg.Rows, "saved_at", msg.Timestamp)
	return w.MirrorOnce(ctx)
}

// Run consumes save events and runs a periodic tick until ctx is cancelled.
// events may be nil, leaving only the tick. Tick failures are logged and
// retried on the next interval rather than stopping the worker.
func (w *BackupWorker) Run(ctx context.Context, events *amqp.Client, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	if events != nil {
		g.Go(func() error {
			err := events.ConsumeLedgerSaved(ctx, w.HandleSavedMessage)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.MirrorOnce(ctx); err != nil {
					slog.WarnContext(ctx, "Periodic mirror failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
