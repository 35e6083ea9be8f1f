package core

import "github.com/shopspring/decimal"

// CategoryNet is the savings position of one category: everything earmarked
// into it minus everything withdrawn from it.
type CategoryNet struct {
	Category  string
	Earmarked decimal.Decimal
	Withdrawn decimal.Decimal
	Net       decimal.Decimal
}

// PeriodSummary bundles the cashflow aggregates for one filter window.
type PeriodSummary struct {
	Period   Period
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Cashflow decimal.Decimal
}

// SavingsBalance is the lifetime bank balance: the sum of all earmarks minus
// the sum of all withdrawals over the entire ledger. It is never scoped to a
// period, regardless of any filter active in the UI.
func SavingsBalance(l Ledger) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l {
		switch t.Kind {
		case KindEarmark:
			total = total.Add(t.Amount)
		case KindWithdraw:
			total = total.Sub(t.Amount)
		}
	}
	return total
}

// PeriodIncome sums income amounts dated inside the period.
func PeriodIncome(l Ledger, p Period) decimal.Decimal {
	return sumKind(l, p, KindIncome)
}

// PeriodExpense sums expense amounts dated inside the period.
func PeriodExpense(l Ledger, p Period) decimal.Decimal {
	return sumKind(l, p, KindExpense)
}

// Summarize computes income, expense and cashflow for the period in one pass.
func Summarize(l Ledger, p Period) PeriodSummary {
	income := PeriodIncome(l, p)
	expense := PeriodExpense(l, p)
	return PeriodSummary{
		Period:   p,
		Income:   income,
		Expense:  expense,
		Cashflow: income.Sub(expense),
	}
}

func sumKind(l Ledger, p Period, k Kind) decimal.Decimal {
	total := decimal.Zero
	for _, t := range l {
		if t.Kind == k && p.Contains(t.Date) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SavingsByCategory nets earmarks against withdrawals per category over the
// whole ledger. Categories appear in first-seen order; a category that only
// ever saw withdrawals gets a zero earmark term, and non-positive nets are
// kept rather than floored.
func SavingsByCategory(l Ledger) []CategoryNet {
	index := map[string]int{}
	var out []CategoryNet
	for _, t := range l {
		if !t.Kind.IsBank() {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryNet{
				Category:  t.Category,
				Earmarked: decimal.Zero,
				Withdrawn: decimal.Zero,
			})
		}
		if t.Kind == KindEarmark {
			out[i].Earmarked = out[i].Earmarked.Add(t.Amount)
		} else {
			out[i].Withdrawn = out[i].Withdrawn.Add(t.Amount)
		}
	}
	for i := range out {
		out[i].Net = out[i].Earmarked.Sub(out[i].Withdrawn)
	}
	return out
}

// BankMovements returns only the earmark/withdraw rows, preserving order.
func BankMovements(l Ledger) Ledger {
	var out Ledger
	for _, t := range l {
		if t.Kind.IsBank() {
			out = append(out, t)
		}
	}
	return out
}
