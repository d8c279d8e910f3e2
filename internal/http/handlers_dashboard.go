package http

import (
	"net/http"
	"time"

	"freebooks/internal/core"
	"freebooks/internal/session"
)

// requireSession gates full pages behind the UI session. It reports whether
// the caller may proceed; on false a redirect has already been written.
func (s *Server) requireSession(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, ok := currentSession(r)
	if !ok {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
		return session.Session{}, false
	}
	return sess, true
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}

	data := struct {
		Session session.Session
		Active  string
	}{Session: sess, Active: "dashboard"}
	s.renderPage(w, r, "index.html", data)
}

// handleDashboardOverview renders the totals cards partial. The numbers are
// recomputed from the collections on every cache miss, so month-to-date
// figures move as the clock does.
func (s *Server) handleDashboardOverview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	ctx := r.Context()
	invoices := s.ledger.Invoices(ctx)
	expenses := s.ledger.Expenses(ctx)
	totals := s.totals(ctx)

	now := time.Now()
	topCategory, topCategoryTotal := topExpenseCategory(expenses)

	recentInvoices := make([]invoiceRow, 0, recentLimit)
	for _, inv := range lastN(invoices, recentLimit) {
		recentInvoices = append(recentInvoices, invoiceRow{
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    inv.ClientName,
			DueDate:       inv.DueDate,
			Total:         formatUSD(inv.Total),
			Status:        string(inv.Status),
		})
	}
	recentExpenses := make([]expenseRow, 0, recentLimit)
	for _, e := range lastN(expenses, recentLimit) {
		recentExpenses = append(recentExpenses, expenseRow{
			Description: e.Description,
			Amount:      formatUSD(e.Amount),
			Date:        e.Date,
			Category:    e.Category,
		})
	}

	data := struct {
		Revenue          string
		Expenses         string
		NetIncome        string
		ProfitMargin     string
		Outstanding      string
		MTDRevenue       string
		MTDExpenses      string
		InvoiceCount     int
		ExpenseCount     int
		ClientCount      int
		PendingCount     int
		TopCategory      string
		TopCategoryTotal string
		RecentInvoices   []invoiceRow
		RecentExpenses   []expenseRow
	}{
		Revenue:      formatUSD(totals.Revenue),
		Expenses:     formatUSD(totals.Expenses),
		NetIncome:    formatUSD(totals.NetIncome),
		ProfitMargin: formatNumber(totals.ProfitMargin) + "%",
		Outstanding:  formatUSD(totals.Outstanding),
		MTDRevenue: formatUSD(core.MonthToDate(invoices, func(i core.Invoice) string { return i.IssueDate },
			func(i core.Invoice) float64 { return i.Total }, now)),
		MTDExpenses: formatUSD(core.MonthToDate(expenses, func(e core.Expense) string { return e.Date },
			func(e core.Expense) float64 { return e.Amount }, now)),
		InvoiceCount:     len(invoices),
		ExpenseCount:     len(expenses),
		ClientCount:      len(s.ledger.Clients(ctx)),
		PendingCount:     core.CountIf(invoices, func(i core.Invoice) bool { return i.Status != core.StatusPaid }),
		TopCategory:      topCategory,
		TopCategoryTotal: formatUSD(topCategoryTotal),
		RecentInvoices:   recentInvoices,
		RecentExpenses:   recentExpenses,
	}

	s.renderPage(w, r, "dashboard_overview.html", data)
}

// recentLimit caps the dashboard activity lists.
const recentLimit = 4

// lastN returns up to n trailing records, newest first. Collections are
// append-only, so persisted order is creation order.
func lastN[T any](records []T, n int) []T {
	if len(records) < n {
		n = len(records)
	}
	out := make([]T, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}

// topExpenseCategory returns the category with the largest summed amount.
// Ties break on category name so the result is stable across reloads.
func topExpenseCategory(expenses []core.Expense) (string, float64) {
	groups := core.GroupSum(expenses,
		func(e core.Expense) string { return e.Category },
		func(e core.Expense) float64 { return e.Amount })

	var name string
	var total float64
	for category, sum := range groups {
		if sum > total || (sum == total && name != "" && category < name) {
			name, total = category, sum
		}
	}
	if name == "" {
		return "None yet", 0
	}
	return name, total
}
