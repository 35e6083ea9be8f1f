package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/IlRyze11/gestione-spese/internal/amqp"
	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/store/memory"
)

func TestMirrorOnceCopiesAllRows(t *testing.T) {
	primary := memory.NewWithRows(core.Header(), [][]string{
		{"a1", "2024-01-05", "Uscita", "Cibo", "12,50", "pranzo"},
		{"bad", "not-a-date", "Uscita", "Cibo", "10", "tenuta nel mirror"},
	})
	mirror := memory.New()

	w := NewBackupWorker(primary, mirror)
	if err := w.MirrorOnce(context.Background()); err != nil {
		t.Fatalf("mirror: %v", err)
	}

	rows, err := mirror.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("read mirror: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 mirrored rows, got %d", len(rows))
	}
	// Raw copy: the unparseable date is preserved, not normalized.
	if rows[1][core.ColDate] != "not-a-date" || rows[0][core.ColAmount] != "12,50" {
		t.Fatalf("mirror altered raw values: %+v", rows)
	}
}

func TestMirrorOnceSurfacesSourceError(t *testing.T) {
	primary := memory.New()
	primary.FailReads = errors.New("quota exceeded")
	w := NewBackupWorker(primary, memory.New())
	if err := w.MirrorOnce(context.Background()); err == nil {
		t.Fatalf("expected error from failing source")
	}
}

func TestHandleSavedMessageTriggersMirror(t *testing.T) {
	primary := memory.NewWithRows(core.Header(), [][]string{
		{"a1", "2024-01-05", "Entrata", "Stipendio", "100", ""},
	})
	mirror := memory.New()
	w := NewBackupWorker(primary, mirror)

	msg := amqp.NewLedgerSavedMessage("sheets", 1)
	if err := w.HandleSavedMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if mirror.Len() != 1 {
		t.Fatalf("mirror not updated, len=%d", mirror.Len())
	}
}
