// Form parsing utilities shared by the create handlers.

package http

import (
	"net/http"
	"strings"

	"freebooks/internal/core"
	"freebooks/internal/ledger"
)

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure. Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// formValue returns the sanitized value for a single form field.
func formValue(r *http.Request, key string) string {
	return sanitizeInput(r.Form.Get(key))
}

// parseClientForm maps the add-client form onto factory fields.
func parseClientForm(r *http.Request) ledger.ClientFields {
	return ledger.ClientFields{
		Name:    formValue(r, "name"),
		Email:   formValue(r, "email"),
		Phone:   formValue(r, "phone"),
		Company: formValue(r, "company"),
		Address: formValue(r, "address"),
		Notes:   formValue(r, "notes"),
	}
}

// parseExpenseForm maps the add-expense form onto factory fields. The amount
// is parsed strictly; a bad value fails the whole request.
func parseExpenseForm(r *http.Request) (ledger.ExpenseFields, *HTMXResponseBuilder) {
	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		return ledger.ExpenseFields{}, UnprocessableEntityError("Invalid amount")
	}
	return ledger.ExpenseFields{
		Description: formValue(r, "description"),
		Amount:      amount,
		Date:        formValue(r, "date"),
		Category:    formValue(r, "category"),
		Vendor:      formValue(r, "vendor"),
		Notes:       formValue(r, "notes"),
		ReceiptURL:  formValue(r, "receipt_url"),
	}, nil
}

// parseInvoiceForm maps the add-invoice form onto factory fields plus line
// items. Item rows arrive as parallel item_description / item_quantity /
// item_rate arrays; rows whose description is blank are skipped entirely.
func parseInvoiceForm(r *http.Request) (ledger.InvoiceFields, []ledger.ItemInput, *HTMXResponseBuilder) {
	var taxRate float64
	if v := strings.TrimSpace(r.Form.Get("tax_rate")); v != "" {
		parsed, err := core.ParseAmount(v)
		if err != nil {
			return ledger.InvoiceFields{}, nil, UnprocessableEntityError("Invalid tax rate")
		}
		taxRate = parsed
	}

	fields := ledger.InvoiceFields{
		InvoiceNumber: formValue(r, "invoice_number"),
		ClientName:    formValue(r, "client_name"),
		ClientEmail:   formValue(r, "client_email"),
		IssueDate:     formValue(r, "issue_date"),
		DueDate:       formValue(r, "due_date"),
		Notes:         formValue(r, "notes"),
		TaxRate:       taxRate,
	}

	descs := r.Form["item_description"]
	quantities := r.Form["item_quantity"]
	rates := r.Form["item_rate"]

	var items []ledger.ItemInput
	for i, desc := range descs {
		desc = sanitizeInput(desc)
		if desc == "" {
			continue
		}
		if i >= len(quantities) || i >= len(rates) {
			return fields, nil, UnprocessableEntityError("Mismatched line item fields")
		}
		qty, err := core.ParseAmount(quantities[i])
		if err != nil {
			return fields, nil, UnprocessableEntityError("Invalid quantity in line " + desc)
		}
		rate, err := core.ParseAmount(rates[i])
		if err != nil {
			return fields, nil, UnprocessableEntityError("Invalid rate in line " + desc)
		}
		items = append(items, ledger.ItemInput{
			Description: desc,
			Quantity:    qty,
			Rate:        rate,
		})
	}

	return fields, items, nil
}
