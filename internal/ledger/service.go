package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"freebooks/internal/core"
	"freebooks/internal/events"
	"freebooks/internal/store"
)

// ErrInvoiceNotFound is returned when a lookup by id matches nothing.
var ErrInvoiceNotFound = fmt.Errorf("invoice not found")

// Service orchestrates record creation and retrieval across the collection
// store and the optional event publisher.
type Service struct {
	clients  store.Collection[core.Client]
	invoices store.Collection[core.Invoice]
	expenses store.Collection[core.Expense]
	events   events.Publisher
}

// New wires a service over the given store. publisher may be nil when
// messaging is not configured.
func New(s store.Store, publisher events.Publisher) *Service {
	return &Service{
		clients:  store.NewCollection[core.Client](s, store.Clients),
		invoices: store.NewCollection[core.Invoice](s, store.Invoices),
		expenses: store.NewCollection[core.Expense](s, store.Expenses),
		events:   publisher,
	}
}

// Clients returns every client record, oldest first. A missing or unreadable
// collection yields an empty slice.
func (s *Service) Clients(ctx context.Context) []core.Client {
	return s.clients.Load(ctx)
}

// Invoices returns every invoice record, oldest first.
func (s *Service) Invoices(ctx context.Context) []core.Invoice {
	return s.invoices.Load(ctx)
}

// Expenses returns every expense record, oldest first.
func (s *Service) Expenses(ctx context.Context) []core.Expense {
	return s.expenses.Load(ctx)
}

// CreateClient builds, validates and persists a client record.
func (s *Service) CreateClient(ctx context.Context, f ClientFields) (core.Client, error) {
	c := NewClient(f)
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	if err := s.clients.Append(ctx, c); err != nil {
		return core.Client{}, fmt.Errorf("save client: %w", err)
	}
	s.publishCreated(ctx, store.Clients, c.ID)
	return c, nil
}

// CreateExpense builds, validates and persists an expense record.
func (s *Service) CreateExpense(ctx context.Context, f ExpenseFields) (core.Expense, error) {
	e := NewExpense(f)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if err := s.expenses.Append(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publishCreated(ctx, store.Expenses, e.ID)
	return e, nil
}

// CreateInvoice builds an invoice from header fields plus line items,
// validates it and persists it.
func (s *Service) CreateInvoice(ctx context.Context, f InvoiceFields, items []ItemInput) (core.Invoice, error) {
	inv := NewInvoice(f, items)
	if err := inv.Validate(); err != nil {
		return core.Invoice{}, err
	}
	if err := s.invoices.Append(ctx, inv); err != nil {
		return core.Invoice{}, fmt.Errorf("save invoice: %w", err)
	}
	s.publishCreated(ctx, store.Invoices, inv.ID)
	return inv, nil
}

// FindInvoice looks up a single invoice by id.
func (s *Service) FindInvoice(ctx context.Context, id string) (core.Invoice, error) {
	for _, inv := range s.invoices.Load(ctx) {
		if inv.ID == id {
			return inv, nil
		}
	}
	return core.Invoice{}, ErrInvoiceNotFound
}

// Summary recomputes the dashboard totals from the current collections.
func (s *Service) Summary(ctx context.Context) core.Totals {
	return core.Summarize(s.invoices.Load(ctx), s.expenses.Load(ctx))
}

func (s *Service) publishCreated(ctx context.Context, collection, id string) {
	if s.events == nil {
		return
	}
	// The record is already saved; a messaging failure must not fail
	// the request.
	if err := s.events.RecordCreated(ctx, collection, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record created message",
			"collection", collection, "id", id, "error", err)
	}
}
