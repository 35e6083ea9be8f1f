package http

import (
	"strconv"

	"github.com/IlRyze11/gestione-spese/internal/core"
)

// txRow is one transaction formatted for display or for the editable grid.
type txRow struct {
	ID       string
	Date     string
	Kind     string
	Category string
	Amount   string // wire format, editable
	Euros    string // display format
	Note     string
}

type breakdownRow struct {
	Category  string
	Earmarked string
	Withdrawn string
	Net       string
	Negative  bool
}

// dashboardView is the full template payload for one period.
type dashboardView struct {
	Year   int
	Month  int // 0 = whole year
	Years  []int
	Months []int

	Income   string
	Expense  string
	Cashflow string
	Deficit  bool

	// Lifetime savings, never period-scoped.
	SavingsBalance  string
	SavingsNegative bool
	Breakdown       []breakdownRow
	Movements       []txRow

	Transactions []txRow
	Kinds        []core.Kind
	Categories   []string
}

// gridView is the template payload for the editable ledger page.
type gridView struct {
	Year  int
	Month int
	Years []int
	Rows  []txRow
	Kinds []core.Kind
}

func toTxRows(l core.Ledger) []txRow {
	rows := make([]txRow, 0, len(l))
	for _, t := range l {
		rows = append(rows, txRow{
			ID:       t.ID,
			Date:     t.Date.String(),
			Kind:     string(t.Kind),
			Category: t.Category,
			Amount:   core.FormatAmount(t.Amount),
			Euros:    core.FormatEuros(t.Amount),
			Note:     t.Note,
		})
	}
	return rows
}

// buildDashboardView derives every dashboard aggregate from the full ledger.
// Summary numbers are scoped to the period; the savings section never is.
func buildDashboardView(ledger core.Ledger, p core.Period) dashboardView {
	summary := core.Summarize(ledger, p)

	var breakdown []breakdownRow
	for _, n := range core.SavingsByCategory(ledger) {
		breakdown = append(breakdown, breakdownRow{
			Category:  n.Category,
			Earmarked: core.FormatEuros(n.Earmarked),
			Withdrawn: core.FormatEuros(n.Withdrawn),
			Net:       core.FormatEuros(n.Net),
			Negative:  n.Net.IsNegative(),
		})
	}

	balance := core.SavingsBalance(ledger)
	return dashboardView{
		Year:   p.Year,
		Month:  p.Month,
		Years:  ledger.Years(),
		Months: monthNumbers(),

		Income:   core.FormatEuros(summary.Income),
		Expense:  core.FormatEuros(summary.Expense),
		Cashflow: core.FormatEuros(summary.Cashflow),
		Deficit:  summary.Cashflow.IsNegative(),

		SavingsBalance:  core.FormatEuros(balance),
		SavingsNegative: balance.IsNegative(),
		Breakdown:       breakdown,
		Movements:       toTxRows(core.BankMovements(ledger)),

		Transactions: toTxRows(ledger.Filter(p)),
		Kinds:        core.Kinds(),
		Categories:   allCategories(),
	}
}

// allCategories flattens the per-kind suggestion lists for the entry form
// datalist, deduplicated in display order.
func allCategories() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, k := range core.Kinds() {
		for _, c := range core.CategoriesFor(k) {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

func monthNumbers() []int {
	months := make([]int, 12)
	for i := range months {
		months[i] = i + 1
	}
	return months
}

func viewCacheKey(p core.Period) string {
	return strconv.Itoa(p.Year) + "-" + strconv.Itoa(p.Month)
}
