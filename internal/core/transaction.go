package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	KindExpense  Kind = "Uscita"
	KindIncome   Kind = "Entrata"
	KindEarmark  Kind = "Accantonamento (-> Banca)"
	KindWithdraw Kind = "Prelievo (<- Banca)"
)

type (
	// Kind is the transaction type as stored in the Tipo column.
	Kind string

	Date struct {
		time.Time
	}

	// Transaction is a single ledger row.
	Transaction struct {
		ID       string
		Date     Date
		Kind     Kind
		Category string
		Amount   decimal.Decimal
		Note     string
	}
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidKind    = errors.New("invalid transaction kind")
	ErrNegativeAmount = errors.New("negative amount")
	ErrEmptyCategory  = errors.New("empty category")
)

// Kinds returns all valid transaction kinds in form-display order.
func Kinds() []Kind {
	return []Kind{KindExpense, KindIncome, KindEarmark, KindWithdraw}
}

// IsValid reports whether k is one of the closed set of kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindExpense, KindIncome, KindEarmark, KindWithdraw:
		return true
	}
	return false
}

// IsBank reports whether k moves funds into or out of the savings bank.
func (k Kind) IsBank() bool {
	return k == KindEarmark || k == KindWithdraw
}

// CategoriesFor returns the suggested category list for a kind.
// Categories are suggestions only; stored rows may carry any label.
func CategoriesFor(k Kind) []string {
	switch k {
	case KindExpense:
		return []string{"Cibo", "Casa", "Trasporti", "Salute", "Svago", "Shopping", "Bollette", "Altro"}
	case KindIncome:
		return []string{"Stipendio", "Bonus", "Vendite", "Rimborsi", "Investimenti", "Altro"}
	case KindEarmark, KindWithdraw:
		return []string{"Risparmio", "Fondo Emergenza", "Investimento", "Obbiettivo"}
	}
	return nil
}

// ParseKind matches a raw Tipo value to a kind. Exact labels win; otherwise
// a keyword match handles minor formatting drift in older sheets.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.TrimSpace(s))
	if k.IsValid() {
		return k, true
	}
	lower := strings.ToLower(string(k))
	switch {
	case strings.Contains(lower, "accantonamento"):
		return KindEarmark, true
	case strings.Contains(lower, "prelievo"):
		return KindWithdraw, true
	case strings.Contains(lower, "entrata"):
		return KindIncome, true
	case strings.Contains(lower, "uscita"):
		return KindExpense, true
	}
	return "", false
}

// NewID returns a fresh 8-character opaque identifier. Collisions are
// treated as negligible and are not checked.
func NewID() string {
	return uuid.NewString()[:8]
}

// NewDate creates a Date from year, month, day (UTC, no time component).
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// dateLayouts are tried in order when loading raw rows. The first layout is
// the canonical wire format written back on save.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate leniently parses a raw date string. The time component, if any,
// is discarded.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), int(t.Month()), t.Day()), nil
		}
	}
	return Date{}, ErrInvalidDate
}

// String formats the date in the YYYY-MM-DD wire format.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the calendar month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks a transaction about to be created through the entry form.
// Rows loaded from the store are never validated this strictly.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}
