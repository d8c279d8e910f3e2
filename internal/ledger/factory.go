// Package ledger builds business records from form input and persists them
// through the collection store.
package ledger

import (
	"strconv"
	"sync/atomic"
	"time"

	"freebooks/internal/core"
)

// lastID guarantees ids stay unique when multiple records are created
// within the same millisecond.
var lastID atomic.Int64

// NewID returns a time-derived unique token: milliseconds since epoch,
// bumped past the previous id when the clock has not advanced.
func NewID() string {
	now := time.Now().UnixMilli()
	for {
		last := lastID.Load()
		candidate := now
		if candidate <= last {
			candidate = last + 1
		}
		if lastID.CompareAndSwap(last, candidate) {
			return strconv.FormatInt(candidate, 10)
		}
	}
}

// NextInvoiceNumber generates the default invoice number from the last six
// digits of a fresh id token.
func NextInvoiceNumber() string {
	id := NewID()
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return "INV-" + id
}

type (
	ClientFields struct {
		Name    string
		Email   string
		Phone   string
		Company string
		Address string
		Notes   string
	}

	ExpenseFields struct {
		Description string
		Amount      float64
		Date        string
		Category    string
		Vendor      string
		Notes       string
		ReceiptURL  string
	}

	InvoiceFields struct {
		InvoiceNumber string
		ClientName    string
		ClientEmail   string
		IssueDate     string
		DueDate       string
		Notes         string
		TaxRate       float64
	}

	// ItemInput is one line-item row as submitted; the amount is derived
	// here, never taken from the caller.
	ItemInput struct {
		Description string
		Quantity    float64
		Rate        float64
	}
)

// NewClient constructs a client record. Fields are copied verbatim; no
// format or uniqueness checks happen here.
func NewClient(f ClientFields) core.Client {
	return core.Client{
		ID:        NewID(),
		Name:      f.Name,
		Email:     f.Email,
		Phone:     f.Phone,
		Company:   f.Company,
		Address:   f.Address,
		Notes:     f.Notes,
		CreatedAt: time.Now().UTC(),
	}
}

// NewExpense constructs an expense record. Validation is the caller's job.
func NewExpense(f ExpenseFields) core.Expense {
	return core.Expense{
		ID:          NewID(),
		Description: f.Description,
		Amount:      f.Amount,
		Date:        f.Date,
		Category:    f.Category,
		Vendor:      f.Vendor,
		Notes:       f.Notes,
		ReceiptURL:  f.ReceiptURL,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewInvoice constructs an invoice, computing every derived field:
// per-item amount = quantity x rate, subtotal = sum of item amounts,
// taxAmount = subtotal x taxRate/100, total = subtotal + taxAmount.
// A blank invoice number falls back to a generated one; the id is the
// invoice number itself and status starts as pending.
func NewInvoice(f InvoiceFields, items []ItemInput) core.Invoice {
	number := f.InvoiceNumber
	if number == "" {
		number = NextInvoiceNumber()
	}

	lineItems := make([]core.LineItem, len(items))
	var subtotal float64
	for i, it := range items {
		amount := it.Quantity * it.Rate
		lineItems[i] = core.LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      amount,
		}
		subtotal += amount
	}
	taxAmount := subtotal * f.TaxRate / 100

	return core.Invoice{
		ID:            number,
		InvoiceNumber: number,
		ClientName:    f.ClientName,
		ClientEmail:   f.ClientEmail,
		IssueDate:     f.IssueDate,
		DueDate:       f.DueDate,
		Notes:         f.Notes,
		TaxRate:       f.TaxRate,
		Items:         lineItems,
		Subtotal:      subtotal,
		TaxAmount:     taxAmount,
		Total:         subtotal + taxAmount,
		Status:        core.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
}
