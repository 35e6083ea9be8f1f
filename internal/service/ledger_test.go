package service

import (
	"context"
	"errors"
	"testing"

	"github.com/IlRyze11/gestione-spese/internal/core"
	"github.com/IlRyze11/gestione-spese/internal/store/memory"
	"github.com/shopspring/decimal"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	return memory.NewWithRows(core.Header(), [][]string{
		{"a1", "2024-01-05", "Accantonamento (-> Banca)", "Risparmio", "100", ""},
		{"a2", "2024-02-01", "Prelievo (<- Banca)", "Risparmio", "40", ""},
		{"a3", "2024-01-10", "Entrata", "Stipendio", "1200,50", "gennaio"},
		{"bad", "not-a-date", "Uscita", "Cibo", "10", "scartata"},
		{"a4", "2023-12-01", "Uscita", "Casa", "600", ""},
	})
}

func TestLoadNormalizesAndSorts(t *testing.T) {
	svc := NewLedgerService(seededStore(t), "memory", nil)
	ledger := svc.Load(context.Background())

	if len(ledger) != 4 {
		t.Fatalf("expected 4 rows (bad date dropped), got %d", len(ledger))
	}
	// Most recent first.
	if ledger[0].ID != "a2" || ledger[len(ledger)-1].ID != "a4" {
		t.Fatalf("unexpected order: first=%s last=%s", ledger[0].ID, ledger[len(ledger)-1].ID)
	}
	// Decimal comma coerced.
	for _, tx := range ledger {
		if tx.ID == "a3" && !tx.Amount.Equal(decimal.RequireFromString("1200.5")) {
			t.Fatalf("amount not coerced: %s", tx.Amount)
		}
	}
}

func TestLoadDegradesToEmptyOnStoreError(t *testing.T) {
	st := memory.New()
	st.FailReads = errors.New("quota exceeded")
	svc := NewLedgerService(st, "memory", nil)
	if ledger := svc.Load(context.Background()); len(ledger) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(ledger))
	}
}

func TestLoadEmptyResource(t *testing.T) {
	svc := NewLedgerService(memory.New(), "memory", nil)
	if ledger := svc.Load(context.Background()); len(ledger) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(ledger))
	}
}

func TestSavingsBalanceAfterLoad(t *testing.T) {
	svc := NewLedgerService(seededStore(t), "memory", nil)
	ledger := svc.Load(context.Background())
	if got := core.SavingsBalance(ledger); !got.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("savings balance = %s, want 60", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st, "memory", nil)
	ctx := context.Background()

	original := core.Ledger{
		{ID: "a1", Date: core.NewDate(2024, 1, 5), Kind: core.KindEarmark, Category: "Risparmio", Amount: decimal.NewFromInt(100)},
		{ID: "a2", Date: core.NewDate(2024, 2, 1), Kind: core.KindWithdraw, Category: "Risparmio", Amount: decimal.RequireFromString("40.25"), Note: "x"},
	}
	if err := svc.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}
	back := svc.Load(ctx)
	if len(back) != 2 {
		t.Fatalf("expected 2 rows back, got %d", len(back))
	}
	byID := map[string]core.Transaction{}
	for _, tx := range back {
		byID[tx.ID] = tx
	}
	for _, want := range original {
		got, ok := byID[want.ID]
		if !ok {
			t.Fatalf("row %s lost in round trip", want.ID)
		}
		if !got.Date.Equal(want.Date.Time) || got.Kind != want.Kind || !got.Amount.Equal(want.Amount) || got.Note != want.Note {
			t.Fatalf("round trip mismatch for %s: %+v", want.ID, got)
		}
	}
}

func TestSaveSurfacesWriteError(t *testing.T) {
	st := memory.New()
	st.FailWrites = errors.New("api error")
	svc := NewLedgerService(st, "memory", nil)
	if err := svc.Save(context.Background(), core.Ledger{}); err == nil {
		t.Fatalf("expected save error")
	}
}

func TestAddValidatesAndPersists(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st, "memory", nil)
	ctx := context.Background()

	tx := core.Transaction{
		Date:     core.NewDate(2024, 3, 1),
		Kind:     core.KindExpense,
		Category: "Cibo",
		Amount:   decimal.RequireFromString("12.5"),
		Note:     "pranzo",
	}
	saved, err := svc.Add(ctx, tx)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.ID == "" {
		t.Fatalf("no id assigned")
	}
	if got := svc.Load(ctx); len(got) != 1 || got[0].ID != saved.ID {
		t.Fatalf("transaction not persisted: %+v", got)
	}

	// Invalid transactions never reach the store.
	bad := tx
	bad.Amount = decimal.NewFromInt(-1)
	if _, err := svc.Add(ctx, bad); err != core.ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if st.Len() != 1 {
		t.Fatalf("invalid transaction reached the store")
	}
}

func TestSaveEditedDeletesByOmission(t *testing.T) {
	svc := NewLedgerService(seededStore(t), "memory", nil)
	ctx := context.Background()

	// January 2024 shows a1 and a3; the user deletes both from the grid.
	final, err := svc.SaveEdited(ctx, core.MonthOf(2024, 1), core.Ledger{})
	if err != nil {
		t.Fatalf("save edited: %v", err)
	}
	for _, tx := range final {
		if tx.ID == "a1" || tx.ID == "a3" {
			t.Fatalf("deleted row %s survived", tx.ID)
		}
	}
	// Rows outside the window survive, including a2 and the 2023 row.
	reloaded := svc.Load(ctx)
	ids := map[string]bool{}
	for _, tx := range reloaded {
		ids[tx.ID] = true
	}
	if !ids["a2"] || !ids["a4"] {
		t.Fatalf("rows outside the filter were touched: %v", ids)
	}
	if got := core.SavingsBalance(reloaded); !got.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("savings balance = %s, want -40", got)
	}
}

func TestSaveEditedAssignsIDs(t *testing.T) {
	svc := NewLedgerService(seededStore(t), "memory", nil)
	ctx := context.Background()
	p := core.MonthOf(2024, 1)

	edited := append(svc.Load(ctx).Filter(p), core.Transaction{
		Date: core.NewDate(2024, 1, 20), Kind: core.KindExpense, Category: "Svago", Amount: decimal.NewFromInt(20),
	})
	final, err := svc.SaveEdited(ctx, p, edited)
	if err != nil {
		t.Fatalf("save edited: %v", err)
	}
	for _, tx := range final {
		if tx.ID == "" {
			t.Fatalf("row without id persisted: %+v", tx)
		}
	}
}

func TestSaveEditedFailurePreservesStore(t *testing.T) {
	st := seededStore(t)
	svc := NewLedgerService(st, "memory", nil)
	ctx := context.Background()

	before := st.Len()
	st.FailWrites = errors.New("api error")
	if _, err := svc.SaveEdited(ctx, core.MonthOf(2024, 1), core.Ledger{}); err == nil {
		t.Fatalf("expected error")
	}
	st.FailWrites = nil
	if st.Len() != before {
		t.Fatalf("store changed after failed save: %d -> %d", before, st.Len())
	}
}

type recordingPublisher struct {
	calls   int
	backend string
	rows    int
}

func (p *recordingPublisher) PublishLedgerSaved(_ context.Context, backend string, rows int) error {
	p.calls++
	p.backend = backend
	p.rows = rows
	return nil
}

func TestSavePublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewLedgerService(memory.New(), "memory", pub)
	ledger := core.Ledger{{ID: "a1", Date: core.NewDate(2024, 1, 1), Kind: core.KindExpense, Category: "Cibo", Amount: decimal.NewFromInt(1)}}
	if err := svc.Save(context.Background(), ledger); err != nil {
		t.Fatalf("save: %v", err)
	}
	if pub.calls != 1 || pub.backend != "memory" || pub.rows != 1 {
		t.Fatalf("unexpected publish: %+v", pub)
	}
}

func TestInitHeaderWritesHeaderOnly(t *testing.T) {
	st := memory.New()
	svc := NewLedgerService(st, "memory", nil)
	if err := svc.InitHeader(context.Background()); err != nil {
		t.Fatalf("init header: %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("expected zero data rows, got %d", st.Len())
	}
	if ledger := svc.Load(context.Background()); len(ledger) != 0 {
		t.Fatalf("expected empty ledger after header init")
	}
}
