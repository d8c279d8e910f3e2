package core

import "time"

// Totals is the dashboard summary computed over the full invoice and
// expense collections.
type Totals struct {
	Revenue      float64 // sum of all invoice totals
	Expenses     float64 // sum of expense amounts
	NetIncome    float64 // Revenue - Expenses
	ProfitMargin float64 // NetIncome / Revenue * 100, 0 when Revenue is 0
	Outstanding  float64 // sum of totals of invoices not yet paid
}

// Sum folds a numeric field over records. An empty input sums to 0.
func Sum[T any](records []T, value func(T) float64) float64 {
	var total float64
	for _, r := range records {
		total += value(r)
	}
	return total
}

// CountIf returns the number of records satisfying keep.
func CountIf[T any](records []T, keep func(T) bool) int {
	n := 0
	for _, r := range records {
		if keep(r) {
			n++
		}
	}
	return n
}

// GroupSum buckets records by key and sums value within each bucket.
func GroupSum[T any](records []T, key func(T) string, value func(T) float64) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		out[key(r)] += value(r)
	}
	return out
}

// Summarize derives the dashboard metrics. Revenue covers every invoice
// regardless of status; invoices not yet paid additionally show up as
// outstanding. Margin is 0 when there is no revenue.
func Summarize(invoices []Invoice, expenses []Expense) Totals {
	t := Totals{
		Revenue:  Sum(invoices, func(i Invoice) float64 { return i.Total }),
		Expenses: Sum(expenses, func(e Expense) float64 { return e.Amount }),
	}
	for _, inv := range invoices {
		if inv.Status != StatusPaid {
			t.Outstanding += inv.Total
		}
	}
	t.NetIncome = t.Revenue - t.Expenses
	if t.Revenue > 0 {
		t.ProfitMargin = t.NetIncome / t.Revenue * 100
	}
	return t
}

// MonthToDate sums value over records whose date falls in the same calendar
// month and year as now. The window is evaluated on every call, so the
// result moves when the clock crosses a month boundary. Records with an
// unparseable date are skipped.
func MonthToDate[T any](records []T, date func(T) string, value func(T) float64, now time.Time) float64 {
	var total float64
	for _, r := range records {
		d, err := ParseDate(date(r))
		if err != nil {
			continue
		}
		if d.Year() == now.Year() && d.Month() == now.Month() {
			total += value(r)
		}
	}
	return total
}
