package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewIDShapeAndUniqueness(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != 8 {
			t.Fatalf("id %q: expected 8 characters", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("id %q generated twice", id)
		}
		seen[id] = struct{}{}
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"2024-01-05", NewDate(2024, 1, 5), true},
		{" 2024-01-05 ", NewDate(2024, 1, 5), true},
		{"05/01/2024", NewDate(2024, 1, 5), true},
		{"2024-01-05 13:45:00", NewDate(2024, 1, 5), true},
		{"", Date{}, false},
		{"not a date", Date{}, false},
		{"2024-13-40", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("ParseDate(%q): unexpected error %v", tc.in, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("ParseDate(%q): expected error", tc.in)
			}
			continue
		}
		if !got.Equal(tc.want.Time) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDateStringIsWireFormat(t *testing.T) {
	if got := NewDate(2024, 2, 1).String(); got != "2024-02-01" {
		t.Fatalf("got %q", got)
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"Uscita", KindExpense, true},
		{"Entrata", KindIncome, true},
		{"Accantonamento (-> Banca)", KindEarmark, true},
		{"Prelievo (<- Banca)", KindWithdraw, true},
		{"accantonamento banca", KindEarmark, true},
		{"Prelievo", KindWithdraw, true},
		{"boh", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseKind(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseKind(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategoriesFor(t *testing.T) {
	for _, k := range Kinds() {
		if len(CategoriesFor(k)) == 0 {
			t.Fatalf("no categories for kind %q", k)
		}
	}
	if CategoriesFor(Kind("boh")) != nil {
		t.Fatalf("expected nil for unknown kind")
	}
	// Bank kinds share the same picklist.
	e, w := CategoriesFor(KindEarmark), CategoriesFor(KindWithdraw)
	if len(e) != len(w) {
		t.Fatalf("earmark/withdraw picklists differ")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "a1b2c3d4",
		Date:     NewDate(2024, 1, 5),
		Kind:     KindExpense,
		Category: "Cibo",
		Amount:   decimal.NewFromInt(10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(tx Transaction) Transaction
		want error
	}{
		{"zero date", func(tx Transaction) Transaction { tx.Date = Date{Time: time.Time{}}; return tx }, ErrInvalidDate},
		{"bad kind", func(tx Transaction) Transaction { tx.Kind = "boh"; return tx }, ErrInvalidKind},
		{"negative amount", func(tx Transaction) Transaction { tx.Amount = decimal.NewFromInt(-1); return tx }, ErrNegativeAmount},
		{"empty category", func(tx Transaction) Transaction { tx.Category = "  "; return tx }, ErrEmptyCategory},
	}
	for _, tc := range cases {
		if err := tc.mut(good).Validate(); err != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}

	// Zero amounts are allowed: coerced unparseable imports become zero.
	zero := good
	zero.Amount = decimal.Zero
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount should validate, got %v", err)
	}
}
