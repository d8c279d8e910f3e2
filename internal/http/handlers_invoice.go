package http

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"freebooks/internal/core"
	"freebooks/internal/ledger"
	"freebooks/internal/pdf"
	"freebooks/internal/store"
)

// handleInvoices serves the invoices page on GET and creates an invoice
// on POST.
func (s *Server) handleInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleCreateInvoice(w, r)
		return
	}

	sess, ok := s.requireSession(w, r)
	if !ok {
		return
	}
	data := struct {
		Session  any
		Active   string
		Statuses []core.Status
	}{Session: sess, Active: "invoices", Statuses: core.Statuses}
	s.renderPage(w, r, "invoices.html", data)
}

func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	fields, items, resp := parseInvoiceForm(r)
	if resp != nil {
		resp.Write(w)
		return
	}

	inv, err := s.ledger.CreateInvoice(r.Context(), fields, items)
	if err != nil {
		if isValidationError(err) {
			UnprocessableEntityError("Invalid invoice: " + err.Error()).Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Invoice create failed", "error", err)
		InternalServerError("Could not save the invoice").Write(w)
		return
	}

	s.invalidate(store.Invoices)
	NewHTMXResponse().
		TriggerRecordCreated(store.Invoices, inv.ID).
		TriggerOverviewRefresh().
		TriggerFormReset().
		TriggerSuccessNotification("Invoice " + inv.InvoiceNumber + " created").
		BodyHTML(`<div class="success">Invoice ` + template.HTMLEscapeString(inv.InvoiceNumber) +
			` for ` + template.HTMLEscapeString(inv.ClientName) +
			` saved, total ` + template.HTMLEscapeString(formatUSD(inv.Total)) + `</div>`).
		Write(w)
}

// invoiceRow is the list partial's display shape.
type invoiceRow struct {
	ID            string
	InvoiceNumber string
	ClientName    string
	IssueDate     string
	DueDate       string
	Total         string
	Status        string
}

// handleInvoiceList renders the invoice listing partial, narrowed by the
// q free-text search and the status dropdown.
func (s *Server) handleInvoiceList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	q := sanitizeInput(r.URL.Query().Get("q"))
	status := sanitizeInput(r.URL.Query().Get("status"))

	defaultView := q == "" && (status == "" || status == core.FilterAll)
	if defaultView {
		if cached, ok := s.partialCache.Get(store.Invoices); ok {
			_, _ = w.Write(cached)
			return
		}
	}

	invoices := s.ledger.Invoices(r.Context())
	invoices = core.FilterText(invoices, q, core.Invoice.SearchFields)
	invoices = core.FilterExact(invoices, status, func(i core.Invoice) string { return string(i.Status) })

	rows := make([]invoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, invoiceRow{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			ClientName:    inv.ClientName,
			IssueDate:     inv.IssueDate,
			DueDate:       inv.DueDate,
			Total:         formatUSD(inv.Total),
			Status:        string(inv.Status),
		})
	}
	// Header cards summarize the filtered set, not the whole collection.
	total := core.Sum(invoices, func(i core.Invoice) float64 { return i.Total })
	paid := core.Sum(
		core.FilterExact(invoices, string(core.StatusPaid), func(i core.Invoice) string { return string(i.Status) }),
		func(i core.Invoice) float64 { return i.Total })

	data := struct {
		Rows    []invoiceRow
		Query   string
		Total   string
		Paid    string
		Pending string
	}{Rows: rows, Query: q, Total: formatUSD(total), Paid: formatUSD(paid), Pending: formatUSD(total - paid)}

	if !defaultView {
		s.renderPage(w, r, "invoice_list.html", data)
		return
	}

	// Render through a buffer so the default view can be cached whole.
	var buf bytes.Buffer
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(&buf, "invoice_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"error", err, "template", "invoice_list.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.partialCache.Set(store.Invoices, buf.Bytes())
	_, _ = w.Write(buf.Bytes())
}

// handleInvoicePDF streams one invoice as a PDF download.
func (s *Server) handleInvoicePDF(w http.ResponseWriter, r *http.Request) {
	id := sanitizeInput(r.URL.Query().Get("id"))
	if id == "" {
		BadRequestError("Missing invoice id").Write(w)
		return
	}

	inv, err := s.ledger.FindInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, ledger.ErrInvoiceNotFound) {
			NotFoundError("Invoice not found").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Invoice lookup failed", "error", err, "id", id)
		InternalServerError("Could not load the invoice").Write(w)
		return
	}

	doc, err := pdf.Invoice(inv)
	if err != nil {
		slog.ErrorContext(r.Context(), "Invoice PDF render failed", "error", err, "id", id)
		InternalServerError("Could not render the invoice").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=`+inv.InvoiceNumber+`.pdf`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc)))
	_, _ = w.Write(doc)
}

// isValidationError separates domain rejections (422) from storage
// failures (500).
func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrEmptyName, core.ErrEmptyEmail, core.ErrEmptyDescription,
		core.ErrEmptyInvoiceNumber,
		core.ErrEmptyClientName, core.ErrInvalidAmount, core.ErrInvalidDate,
		core.ErrUnknownCategory, core.ErrUnknownStatus, core.ErrInvalidTaxRate,
		core.ErrNoItems, core.ErrInvalidQuantity, core.ErrInvalidRate,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
