package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func row(id, date, kind, cat, amount, note string) map[string]string {
	return map[string]string{
		ColID:       id,
		ColDate:     date,
		ColKind:     kind,
		ColCategory: cat,
		ColAmount:   amount,
		ColNote:     note,
	}
}

func TestParseRow(t *testing.T) {
	tx, err := ParseRow(row("a1", "2024-01-05", "Entrata", "Stipendio", "1200,50", "gennaio"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.ID != "a1" || tx.Kind != KindIncome || tx.Category != "Stipendio" || tx.Note != "gennaio" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if !tx.Date.Equal(NewDate(2024, 1, 5).Time) {
		t.Fatalf("unexpected date: %v", tx.Date)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("1200.5")) {
		t.Fatalf("unexpected amount: %s", tx.Amount)
	}
}

func TestParseRowDiscardsBadDate(t *testing.T) {
	if _, err := ParseRow(row("a1", "boh", "Uscita", "Cibo", "10", "")); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseRowCoercesBadAmount(t *testing.T) {
	tx, err := ParseRow(row("a1", "2024-01-05", "Uscita", "Cibo", "abc", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.Amount.IsZero() {
		t.Fatalf("expected zero amount, got %s", tx.Amount)
	}
}

func TestParseRowKeepsUnknownKind(t *testing.T) {
	tx, err := ParseRow(row("a1", "2024-01-05", "Misterioso", "Cibo", "10", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Kind != Kind("Misterioso") {
		t.Fatalf("unknown kind should survive verbatim, got %q", tx.Kind)
	}
}

func TestRowRoundTrip(t *testing.T) {
	tx := Transaction{
		ID:       "a1b2c3d4",
		Date:     NewDate(2024, 2, 1),
		Kind:     KindWithdraw,
		Category: "Risparmio",
		Amount:   decimal.RequireFromString("40.25"),
		Note:     "spesa straordinaria",
	}
	cols := tx.Row()
	if len(cols) != len(Header()) {
		t.Fatalf("row width %d != header width %d", len(cols), len(Header()))
	}
	raw := map[string]string{}
	for i, name := range Header() {
		raw[name] = cols[i]
	}
	back, err := ParseRow(raw)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if back.ID != tx.ID || back.Kind != tx.Kind || back.Category != tx.Category || back.Note != tx.Note {
		t.Fatalf("round trip mismatch: %+v", back)
	}
	if !back.Date.Equal(tx.Date.Time) || !back.Amount.Equal(tx.Amount) {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestSortedByDateDesc(t *testing.T) {
	l := Ledger{
		{ID: "old", Date: NewDate(2023, 5, 1)},
		{ID: "new", Date: NewDate(2024, 2, 1)},
		{ID: "mid", Date: NewDate(2024, 1, 5)},
	}
	sorted := l.SortedByDateDesc()
	if sorted[0].ID != "new" || sorted[1].ID != "mid" || sorted[2].ID != "old" {
		t.Fatalf("unexpected order: %v %v %v", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
	// Input untouched.
	if l[0].ID != "old" {
		t.Fatalf("input ledger was mutated")
	}
}

func TestSortedByDateDescIsStable(t *testing.T) {
	l := Ledger{
		{ID: "first", Date: NewDate(2024, 1, 5)},
		{ID: "second", Date: NewDate(2024, 1, 5)},
	}
	sorted := l.SortedByDateDesc()
	if sorted[0].ID != "first" || sorted[1].ID != "second" {
		t.Fatalf("same-day rows reordered: %v %v", sorted[0].ID, sorted[1].ID)
	}
}

func TestPeriodContains(t *testing.T) {
	cases := []struct {
		p    Period
		d    Date
		want bool
	}{
		{YearOf(2024), NewDate(2024, 7, 1), true},
		{YearOf(2024), NewDate(2023, 7, 1), false},
		{MonthOf(2024, 1), NewDate(2024, 1, 31), true},
		{MonthOf(2024, 1), NewDate(2024, 2, 1), false},
		{MonthOf(2024, 1), NewDate(2023, 1, 15), false},
	}
	for i, tc := range cases {
		if got := tc.p.Contains(tc.d); got != tc.want {
			t.Fatalf("case %d: Contains(%v) = %v, want %v", i, tc.d, got, tc.want)
		}
	}
}

func TestYears(t *testing.T) {
	l := Ledger{
		{Date: NewDate(2023, 1, 1)},
		{Date: NewDate(2024, 6, 1)},
		{Date: NewDate(2023, 12, 31)},
	}
	years := l.Years()
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Fatalf("unexpected years: %v", years)
	}
}
