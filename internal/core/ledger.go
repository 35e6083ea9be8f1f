package core

import (
	"sort"
	"time"
)

// Column names of the remote tabular resource, in header order.
const (
	ColID       = "ID"
	ColDate     = "Data"
	ColKind     = "Tipo"
	ColCategory = "Categoria"
	ColAmount   = "Importo"
	ColNote     = "Note"
)

// Ledger is the full ordered collection of transactions. It is treated as an
// immutable value: every operation returns a new slice.
type Ledger []Transaction

// Header returns the column header row written before the data rows.
func Header() []string {
	return []string{ColID, ColDate, ColKind, ColCategory, ColAmount, ColNote}
}

// ParseRow normalizes one raw row into a typed transaction. A row whose date
// does not parse is a discard decision, reported as ErrInvalidDate; there is
// no partially-typed result. Amounts coerce to zero when unparseable, and an
// unknown Tipo is kept verbatim so resaving never loses it.
func ParseRow(row map[string]string) (Transaction, error) {
	d, err := ParseDate(row[ColDate])
	if err != nil {
		return Transaction{}, err
	}
	kind, ok := ParseKind(row[ColKind])
	if !ok {
		kind = Kind(row[ColKind])
	}
	return Transaction{
		ID:       row[ColID],
		Date:     d,
		Kind:     kind,
		Category: row[ColCategory],
		Amount:   ParseAmount(row[ColAmount]),
		Note:     row[ColNote],
	}, nil
}

// Row renders the transaction as a wire row in header order.
func (t Transaction) Row() []string {
	return []string{t.ID, t.Date.String(), string(t.Kind), t.Category, FormatAmount(t.Amount), t.Note}
}

// Rows renders the whole ledger for an overwrite-all save.
func (l Ledger) Rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, t := range l {
		rows = append(rows, t.Row())
	}
	return rows
}

// SortedByDateDesc returns a copy of the ledger sorted most recent first.
// The sort is stable so same-day rows keep their stored order.
func (l Ledger) SortedByDateDesc() Ledger {
	out := append(Ledger(nil), l...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// Years lists the distinct years present in the ledger, most recent first.
func (l Ledger) Years() []int {
	seen := map[int]struct{}{}
	var years []int
	for _, t := range l {
		y := t.Date.Year()
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Period is a year or year+month filter window used for cashflow aggregation.
// Month zero means the whole year.
type Period struct {
	Year  int
	Month int // 1-12, or 0 for the whole year
}

// YearOf returns a whole-year period.
func YearOf(year int) Period {
	return Period{Year: year}
}

// MonthOf returns a year+month period.
func MonthOf(year, month int) Period {
	return Period{Year: year, Month: month}
}

// CurrentMonth returns the period for now's year and month. Monthly views
// default to this when no explicit month is selected.
func CurrentMonth(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// Contains reports whether the date falls inside the period window.
func (p Period) Contains(d Date) bool {
	if d.Year() != p.Year {
		return false
	}
	return p.Month == 0 || d.Month() == p.Month
}

// Filter returns the rows whose date falls inside the period, preserving
// ledger order.
func (l Ledger) Filter(p Period) Ledger {
	var out Ledger
	for _, t := range l {
		if p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	return out
}
