package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/IlRyze11/gestione-spese/internal/core"
)

// parsePeriod reads the year/month filter from query or form values.
// Missing values default to the current month; month=0 selects the whole
// year. Out-of-range months fall back to the current month.
func parsePeriod(r *http.Request, now time.Time) core.Period {
	p := core.CurrentMonth(now)
	if v := strings.TrimSpace(r.FormValue("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			p.Year = y
		}
	}
	if v := strings.TrimSpace(r.FormValue("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 0 && m <= 12 {
			p.Month = m
		}
	}
	return p
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseTransactionForm builds a transaction from the entry form. The date
// must parse; the amount coerces like any raw cell, and an unknown kind is
// kept verbatim for Validate to reject.
func parseTransactionForm(form url.Values) (core.Transaction, error) {
	d, err := core.ParseDate(form.Get("date"))
	if err != nil {
		return core.Transaction{}, err
	}
	kind, ok := core.ParseKind(form.Get("kind"))
	if !ok {
		kind = core.Kind(sanitizeInput(form.Get("kind")))
	}
	return core.Transaction{
		Date:     d,
		Kind:     kind,
		Category: sanitizeInput(form.Get("category")),
		Amount:   core.ParseAmount(form.Get("amount")),
		Note:     sanitizeInput(form.Get("note")),
	}, nil
}

// parseGridForm decodes the editable grid's parallel field arrays into the
// edited subset. Rows marked for deletion are simply omitted, which is all
// deletion means under reconciliation. A row whose edited date no longer
// parses is rejected rather than silently dropped: dropping it here would
// delete it on save.
func parseGridForm(form url.Values) (core.Ledger, error) {
	ids := form["row_id"]
	dates := form["row_date"]
	kinds := form["row_kind"]
	categories := form["row_category"]
	amounts := form["row_amount"]
	notes := form["row_note"]
	keeps := form["row_keep"]

	n := len(ids)
	for _, field := range [][]string{dates, kinds, categories, amounts, notes, keeps} {
		if len(field) != n {
			return nil, fmt.Errorf("mismatched grid fields: %d ids, %d values", n, len(field))
		}
	}

	var edited core.Ledger
	for i := 0; i < n; i++ {
		if keeps[i] == "delete" {
			continue
		}
		d, err := core.ParseDate(dates[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q", i+1, dates[i])
		}
		kind, ok := core.ParseKind(kinds[i])
		if !ok {
			kind = core.Kind(sanitizeInput(kinds[i]))
		}
		edited = append(edited, core.Transaction{
			ID:       strings.TrimSpace(ids[i]),
			Date:     d,
			Kind:     kind,
			Category: sanitizeInput(categories[i]),
			Amount:   core.ParseAmount(amounts[i]),
			Note:     sanitizeInput(notes[i]),
		})
	}
	return edited, nil
}
