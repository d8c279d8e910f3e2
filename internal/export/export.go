// Package export snapshots the three collections into spreadsheet form,
// either a local XLSX file or a Google Sheets spreadsheet.
package export

import (
	"context"
	"fmt"

	"freebooks/internal/core"
	"freebooks/internal/ledger"
	"freebooks/internal/store"
)

// Data is one full snapshot of every collection.
type Data struct {
	Clients  []core.Client
	Invoices []core.Invoice
	Expenses []core.Expense
}

// Collect reads every collection from s.
func Collect(ctx context.Context, s store.Store) Data {
	svc := ledger.New(s, nil)
	return Data{
		Clients:  svc.Clients(ctx),
		Invoices: svc.Invoices(ctx),
		Expenses: svc.Expenses(ctx),
	}
}

// Sheet row shapes shared by the XLSX and Sheets writers. The first row is
// always the header.

func clientRows(clients []core.Client) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Name", "Email", "Phone", "Company", "Total Invoiced", "Total Paid"},
	}
	for _, c := range clients {
		rows = append(rows, []interface{}{
			c.ID, c.Name, c.Email, c.Phone, c.Company, c.TotalInvoiced, c.TotalPaid,
		})
	}
	return rows
}

func invoiceRows(invoices []core.Invoice) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Number", "Client", "Issue Date", "Due Date", "Subtotal", "Tax", "Total", "Status"},
	}
	for _, inv := range invoices {
		rows = append(rows, []interface{}{
			inv.ID, inv.InvoiceNumber, inv.ClientName, inv.IssueDate, inv.DueDate,
			inv.Subtotal, inv.TaxAmount, inv.Total, string(inv.Status),
		})
	}
	return rows
}

func expenseRows(expenses []core.Expense) [][]interface{} {
	rows := [][]interface{}{
		{"ID", "Description", "Amount", "Date", "Category", "Vendor"},
	}
	for _, e := range expenses {
		rows = append(rows, []interface{}{
			e.ID, e.Description, e.Amount, e.Date, e.Category, e.Vendor,
		})
	}
	return rows
}

func sheetRows(name string, d Data) ([][]interface{}, error) {
	switch name {
	case "Clients":
		return clientRows(d.Clients), nil
	case "Invoices":
		return invoiceRows(d.Invoices), nil
	case "Expenses":
		return expenseRows(d.Expenses), nil
	}
	return nil, fmt.Errorf("unknown sheet %q", name)
}

// SheetNames lists the sheets written by every exporter, in order.
var SheetNames = []string{"Clients", "Invoices", "Expenses"}
