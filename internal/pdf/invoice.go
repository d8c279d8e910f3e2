// Package pdf renders invoices as downloadable PDF documents.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"freebooks/internal/core"
)

// Invoice renders inv as a single-page A4 PDF.
func Invoice(inv core.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Arial", "B", 20)
	doc.Cell(0, 12, "Invoice "+inv.InvoiceNumber)
	doc.Ln(14)

	doc.SetFont("Arial", "", 11)
	header := [][2]string{
		{"Billed to", inv.ClientName},
		{"Email", inv.ClientEmail},
		{"Issue date", inv.IssueDate},
		{"Due date", inv.DueDate},
		{"Status", string(inv.Status)},
	}
	for _, row := range header {
		if row[1] == "" {
			continue
		}
		doc.SetFont("Arial", "B", 11)
		doc.Cell(35, 7, row[0])
		doc.SetFont("Arial", "", 11)
		doc.Cell(0, 7, row[1])
		doc.Ln(7)
	}
	doc.Ln(5)

	// Line item table.
	doc.SetFont("Arial", "B", 11)
	doc.CellFormat(90, 8, "Description", "1", 0, "L", false, 0, "")
	doc.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, "Rate", "1", 0, "R", false, 0, "")
	doc.CellFormat(35, 8, "Amount", "1", 1, "R", false, 0, "")

	doc.SetFont("Arial", "", 11)
	for _, item := range inv.Items {
		doc.CellFormat(90, 8, item.Description, "1", 0, "L", false, 0, "")
		doc.CellFormat(25, 8, trimFloat(item.Quantity), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, usd(item.Rate), "1", 0, "R", false, 0, "")
		doc.CellFormat(35, 8, usd(item.Amount), "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)

	totals := [][2]string{
		{"Subtotal", usd(inv.Subtotal)},
		{fmt.Sprintf("Tax (%s%%)", trimFloat(inv.TaxRate)), usd(inv.TaxAmount)},
		{"Total", usd(inv.Total)},
	}
	for i, row := range totals {
		if i == len(totals)-1 {
			doc.SetFont("Arial", "B", 12)
		}
		doc.Cell(150, 7, row[0])
		doc.CellFormat(35, 7, row[1], "", 1, "R", false, 0, "")
	}

	if inv.Notes != "" {
		doc.Ln(8)
		doc.SetFont("Arial", "B", 11)
		doc.Cell(0, 7, "Notes")
		doc.Ln(7)
		doc.SetFont("Arial", "", 10)
		doc.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func usd(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// trimFloat formats a number without trailing zeros, so a quantity of 2
// prints as "2" and 1.5 stays "1.5".
func trimFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}
