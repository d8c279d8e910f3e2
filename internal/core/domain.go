package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

type (
	// Status is the payment state of an invoice.
	Status string

	// Client is a customer record. Invoices reference clients only by a
	// denormalized name/email copy, never by ID.
	Client struct {
		ID            string    `json:"id"`
		Name          string    `json:"name"`
		Email         string    `json:"email"`
		Phone         string    `json:"phone"`
		Company       string    `json:"company"`
		Address       string    `json:"address"`
		Notes         string    `json:"notes"`
		CreatedAt     time.Time `json:"createdAt"`
		TotalInvoiced float64   `json:"totalInvoiced"`
		TotalPaid     float64   `json:"totalPaid"`
	}

	// Expense is a single business expense.
	Expense struct {
		ID          string    `json:"id"`
		Description string    `json:"description"`
		Amount      float64   `json:"amount"`
		Date        string    `json:"date"` // YYYY-MM-DD
		Category    string    `json:"category"`
		Vendor      string    `json:"vendor"`
		Notes       string    `json:"notes"`
		ReceiptURL  string    `json:"receiptUrl"`
		CreatedAt   time.Time `json:"createdAt"`
	}

	// LineItem is one billable row within an invoice. Amount is derived
	// from Quantity and Rate and is never set independently.
	LineItem struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Rate        float64 `json:"rate"`
		Amount      float64 `json:"amount"`
	}

	// Invoice is a billed piece of work. Its identity is the invoice
	// number itself: ID always equals InvoiceNumber, which may be
	// user-chosen or generated.
	Invoice struct {
		ID            string     `json:"id"`
		InvoiceNumber string     `json:"invoiceNumber"`
		ClientName    string     `json:"clientName"`
		ClientEmail   string     `json:"clientEmail"`
		IssueDate     string     `json:"issueDate"` // YYYY-MM-DD
		DueDate       string     `json:"dueDate"`   // YYYY-MM-DD
		Notes         string     `json:"notes"`
		TaxRate       float64    `json:"taxRate"` // percentage, 0-100
		Items         []LineItem `json:"items"`
		Subtotal      float64    `json:"subtotal"`
		TaxAmount     float64    `json:"taxAmount"`
		Total         float64    `json:"total"`
		Status        Status     `json:"status"`
		CreatedAt     time.Time  `json:"createdAt"`
	}
)

// Categories is the fixed expense category set offered by the add-expense form.
var Categories = []string{
	"Office Supplies",
	"Software/Tools",
	"Marketing",
	"Travel",
	"Equipment",
	"Professional Services",
	"Internet/Phone",
	"Training/Education",
	"Meals/Entertainment",
	"Other",
}

// Statuses lists the valid invoice states in display order.
var Statuses = []Status{StatusPending, StatusPaid, StatusOverdue}

var (
	ErrEmptyName          = errors.New("empty name")
	ErrEmptyInvoiceNumber = errors.New("empty invoice number")
	ErrEmptyEmail         = errors.New("empty email")
	ErrEmptyDescription   = errors.New("empty description")
	ErrEmptyClientName    = errors.New("empty client name")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrUnknownStatus      = errors.New("unknown status")
	ErrInvalidTaxRate     = errors.New("tax rate must be between 0 and 100")
	ErrNoItems            = errors.New("invoice needs at least one item")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInvalidRate        = errors.New("rate cannot be negative")
)

// KnownCategory reports whether name is one of the fixed expense categories.
func KnownCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount < 0 {
		return ErrInvalidAmount
	}
	if _, err := ParseDate(e.Date); err != nil {
		return ErrInvalidDate
	}
	if !KnownCategory(e.Category) {
		return ErrUnknownCategory
	}
	return nil
}

func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Description) == "" {
		return ErrEmptyDescription
	}
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if li.Rate < 0 {
		return ErrInvalidRate
	}
	return nil
}

func (inv Invoice) Validate() error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return ErrEmptyInvoiceNumber
	}
	if strings.TrimSpace(inv.ClientName) == "" {
		return ErrEmptyClientName
	}
	if strings.TrimSpace(inv.ClientEmail) == "" {
		return ErrEmptyEmail
	}
	if _, err := ParseDate(inv.IssueDate); err != nil {
		return fmt.Errorf("%w: issue date", ErrInvalidDate)
	}
	if _, err := ParseDate(inv.DueDate); err != nil {
		return fmt.Errorf("%w: due date", ErrInvalidDate)
	}
	if inv.TaxRate < 0 || inv.TaxRate > 100 {
		return ErrInvalidTaxRate
	}
	if len(inv.Items) == 0 {
		return ErrNoItems
	}
	for _, li := range inv.Items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	if !inv.Status.Valid() {
		return ErrUnknownStatus
	}
	return nil
}
