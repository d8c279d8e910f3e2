package core

import "testing"

func validExpense() Expense {
	return Expense{
		ID:          "1",
		Description: "Adobe Creative Suite",
		Amount:      52.99,
		Date:        "2024-06-25",
		Category:    "Software/Tools",
	}
}

func validInvoice() Invoice {
	return Invoice{
		ID:            "INV-000001",
		InvoiceNumber: "INV-000001",
		ClientName:    "Acme Corp",
		ClientEmail:   "billing@acme.test",
		IssueDate:     "2024-06-01",
		DueDate:       "2024-07-01",
		TaxRate:       10,
		Items:         []LineItem{{Description: "Design work", Quantity: 2, Rate: 50, Amount: 100}},
		Status:        StatusPending,
	}
}

func TestClientValidate(t *testing.T) {
	good := Client{Name: "Acme Corp", Email: "billing@acme.test"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Client{
		{Name: "", Email: "a@b.test"},
		{Name: "  ", Email: "a@b.test"},
		{Name: "Acme", Email: ""},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	if err := validExpense().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount is allowed; negative is not.
	zero := validExpense()
	zero.Amount = 0
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount expected ok, got %v", err)
	}

	mutations := []func(*Expense){
		func(e *Expense) { e.Description = "" },
		func(e *Expense) { e.Amount = -1 },
		func(e *Expense) { e.Date = "not-a-date" },
		func(e *Expense) { e.Category = "Snacks" },
	}
	for i, mutate := range mutations {
		e := validExpense()
		mutate(&e)
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestInvoiceValidate(t *testing.T) {
	if err := validInvoice().Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	mutations := []func(*Invoice){
		func(i *Invoice) { i.InvoiceNumber = "" },
		func(i *Invoice) { i.ClientName = "" },
		func(i *Invoice) { i.ClientEmail = "" },
		func(i *Invoice) { i.IssueDate = "06/01/2024" },
		func(i *Invoice) { i.DueDate = "" },
		func(i *Invoice) { i.TaxRate = -1 },
		func(i *Invoice) { i.TaxRate = 101 },
		func(i *Invoice) { i.Items = nil },
		func(i *Invoice) { i.Items[0].Quantity = 0 },
		func(i *Invoice) { i.Items[0].Rate = -5 },
		func(i *Invoice) { i.Items[0].Description = "" },
		func(i *Invoice) { i.Status = "draft" },
	}
	for i, mutate := range mutations {
		inv := validInvoice()
		mutate(&inv)
		if err := inv.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Fatalf("%q expected valid", s)
		}
	}
	if Status("draft").Valid() {
		t.Fatalf("draft expected invalid")
	}
}
