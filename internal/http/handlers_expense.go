package http

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"freebooks/internal/core"
	"freebooks/internal/store"
)

// handleExpenses serves the expenses page on GET and creates an expense
// on POST.
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleCreateExpense(w, r)
		return
	}

	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	data := struct {
		Session    any
		Active     string
		Categories []string
		Today      string
	}{Session: sess, Active: "expenses", Categories: core.Categories, Today: core.Today(time.Now())}
	s.renderPage(w, r, "expenses.html", data)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	fields, resp := parseExpenseForm(r)
	if resp != nil {
		resp.Write(w)
		return
	}

	exp, err := s.ledger.CreateExpense(r.Context(), fields)
	if err != nil {
		if isValidationError(err) {
			UnprocessableEntityError("Invalid expense: " + err.Error()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Expense create failed", "error", err)
		InternalServerError("Could not save the expense").Write(w)
		return
	}

	s.invalidate(store.Expenses)
	NewHTMXResponse().
		TriggerRecordCreated(store.Expenses, exp.ID).
		TriggerOverviewRefresh().
		TriggerFormReset().
		TriggerSuccessNotification("Expense recorded").
		BodyHTML(`<div class="success">Expense saved: ` + template.HTMLEscapeString(exp.Description) +
			` (` + template.HTMLEscapeString(formatUSD(exp.Amount)) + `, ` +
			template.HTMLEscapeString(exp.Category) + `)</div>`).
		Write(w)
}

type expenseRow struct {
	ID          string
	Description string
	Amount      string
	Date        string
	Category    string
	Vendor      string
}

// handleExpenseList renders the expense listing partial, narrowed by the
// q free-text search and the category dropdown.
func (s *Server) handleExpenseList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	q := sanitizeInput(r.URL.Query().Get("q"))
	category := sanitizeInput(r.URL.Query().Get("category"))

	defaultView := q == "" && (category == "" || category == core.FilterAll)
	if defaultView {
		if cached, ok := s.partialCache.Get(store.Expenses); ok {
			_, _ = w.Write(cached)
			return
		}
	}

	expenses := s.ledger.Expenses(r.Context())
	expenses = core.FilterText(expenses, q, core.Expense.SearchFields)
	expenses = core.FilterExact(expenses, category, func(e core.Expense) string { return e.Category })

	rows := make([]expenseRow, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, expenseRow{
			ID:          e.ID,
			Description: e.Description,
			Amount:      formatUSD(e.Amount),
			Date:        e.Date,
			Category:    e.Category,
			Vendor:      e.Vendor,
		})
	}
	// Header cards summarize the filtered set, not the whole collection.
	data := struct {
		Rows      []expenseRow
		Query     string
		Total     string
		ThisMonth string
	}{
		Rows:  rows,
		Query: q,
		Total: formatUSD(core.Sum(expenses, func(e core.Expense) float64 { return e.Amount })),
		ThisMonth: formatUSD(core.MonthToDate(expenses,
			func(e core.Expense) string { return e.Date },
			func(e core.Expense) float64 { return e.Amount }, time.Now())),
	}

	if !defaultView {
		s.renderPage(w, r, "expense_list.html", data)
		return
	}

	var buf bytes.Buffer
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(&buf, "expense_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"error", err, "template", "expense_list.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.partialCache.Set(store.Expenses, buf.Bytes())
	_, _ = w.Write(buf.Bytes())
}
