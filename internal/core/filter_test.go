package core

import (
	"reflect"
	"testing"
)

func expenseFields(e Expense) []string { return e.SearchFields() }

func TestFilterTextEmptyTermIsIdentity(t *testing.T) {
	expenses := []Expense{
		{Description: "Parking Fee", Vendor: "City"},
		{Description: "Adobe Suite", Vendor: "Adobe"},
	}
	got := FilterText(expenses, "", expenseFields)
	if !reflect.DeepEqual(got, expenses) {
		t.Fatalf("empty term should return input unchanged, got %v", got)
	}
	got = FilterText(expenses, "   ", expenseFields)
	if !reflect.DeepEqual(got, expenses) {
		t.Fatalf("blank term should return input unchanged, got %v", got)
	}
}

func TestFilterTextCaseInsensitive(t *testing.T) {
	expenses := []Expense{
		{Description: "Parking Fee", Vendor: "City"},
		{Description: "Adobe Suite", Vendor: "Adobe"},
		{Description: "Lunch", Vendor: "adobe cafe"},
	}
	got := FilterText(expenses, "ADOBE", expenseFields)
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}
	// Order preserved
	if got[0].Description != "Adobe Suite" || got[1].Description != "Lunch" {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestFilterTextPerKindFields(t *testing.T) {
	clients := []Client{{Name: "Jane", Email: "jane@x.test", Company: "Acme"}}
	if got := FilterText(clients, "acme", func(c Client) []string { return c.SearchFields() }); len(got) != 1 {
		t.Fatalf("client company should be searchable")
	}

	invoices := []Invoice{{ClientName: "Acme Corp", InvoiceNumber: "INV-001"}}
	if got := FilterText(invoices, "inv-0", func(i Invoice) []string { return i.SearchFields() }); len(got) != 1 {
		t.Fatalf("invoice number should be searchable")
	}

	// Expense notes are not part of the search set.
	expenses := []Expense{{Description: "Lunch", Vendor: "Cafe", Notes: "with Bob"}}
	if got := FilterText(expenses, "bob", expenseFields); len(got) != 0 {
		t.Fatalf("notes should not be searchable")
	}
}

func TestFilterExact(t *testing.T) {
	expenses := []Expense{
		{Amount: 100, Category: "Equipment"},
		{Amount: 50, Category: "Travel"},
	}
	category := func(e Expense) string { return e.Category }

	all := FilterExact(expenses, FilterAll, category)
	if !reflect.DeepEqual(all, expenses) {
		t.Fatalf("sentinel should return input unchanged, got %v", all)
	}

	travel := FilterExact(expenses, "Travel", category)
	if len(travel) != 1 || travel[0].Amount != 50 {
		t.Fatalf("expected single Travel expense of 50, got %v", travel)
	}
	if got := Sum(travel, func(e Expense) float64 { return e.Amount }); got != 50 {
		t.Fatalf("sum over filtered expected 50, got %v", got)
	}
}

func TestFiltersCompose(t *testing.T) {
	invoices := []Invoice{
		{ClientName: "Acme Corp", InvoiceNumber: "INV-001", Status: StatusPaid},
		{ClientName: "Acme Corp", InvoiceNumber: "INV-002", Status: StatusPending},
		{ClientName: "Design Studio", InvoiceNumber: "INV-003", Status: StatusPaid},
	}
	got := FilterExact(
		FilterText(invoices, "acme", func(i Invoice) []string { return i.SearchFields() }),
		string(StatusPaid),
		func(i Invoice) string { return string(i.Status) })
	if len(got) != 1 || got[0].InvoiceNumber != "INV-001" {
		t.Fatalf("expected only INV-001, got %v", got)
	}
}
