// Package core holds the ledger domain: transactions, amount and date
// normalization, period aggregates, and save reconciliation. Everything in
// this package is a pure function of its inputs; the store adapters are the
// only stateful boundary.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount normalizes a raw Importo cell to a decimal value.
//
// The raw value is treated as text: a decimal comma is replaced with a dot
// before parsing, so both "12.50" and "12,50" yield 12.5. Unparseable values
// coerce to zero instead of failing the row.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatAmount renders an amount in the wire format (dot decimal separator,
// no thousands grouping).
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}

// FormatEuros renders an amount for display, e.g. "€ 1234,56".
func FormatEuros(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.ReplaceAll(s, ".", ",")
	if neg {
		return "-€ " + s
	}
	return "€ " + s
}
