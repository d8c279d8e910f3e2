package core

import (
	"testing"
	"time"
)

func TestSumEmpty(t *testing.T) {
	if got := Sum(nil, func(e Expense) float64 { return e.Amount }); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestSumAndGroupSum(t *testing.T) {
	expenses := []Expense{
		{Amount: 100, Category: "Travel"},
		{Amount: 50, Category: "Travel"},
		{Amount: 25.5, Category: "Other"},
	}
	if got := Sum(expenses, func(e Expense) float64 { return e.Amount }); got != 175.5 {
		t.Fatalf("expected 175.5, got %v", got)
	}

	groups := GroupSum(expenses,
		func(e Expense) string { return e.Category },
		func(e Expense) float64 { return e.Amount })
	if groups["Travel"] != 150 || groups["Other"] != 25.5 {
		t.Fatalf("unexpected groups %v", groups)
	}
}

func TestCountIf(t *testing.T) {
	invoices := []Invoice{
		{Status: StatusPaid},
		{Status: StatusPending},
		{Status: StatusPaid},
	}
	got := CountIf(invoices, func(i Invoice) bool { return i.Status == StatusPaid })
	if got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestSummarize(t *testing.T) {
	invoices := []Invoice{
		{Total: 1200, Status: StatusPaid},
		{Total: 850, Status: StatusPending},
		{Total: 950, Status: StatusOverdue},
	}
	expenses := []Expense{{Amount: 500}, {Amount: 250}}

	got := Summarize(invoices, expenses)
	if got.Revenue != 3000 {
		t.Fatalf("revenue expected 3000, got %v", got.Revenue)
	}
	if got.Expenses != 750 {
		t.Fatalf("expenses expected 750, got %v", got.Expenses)
	}
	if got.NetIncome != 2250 {
		t.Fatalf("net income expected 2250, got %v", got.NetIncome)
	}
	if got.ProfitMargin != 75 {
		t.Fatalf("margin expected 75, got %v", got.ProfitMargin)
	}
	if got.Outstanding != 1800 {
		t.Fatalf("outstanding expected 1800, got %v", got.Outstanding)
	}
}

func TestSummarizeZeroRevenue(t *testing.T) {
	got := Summarize(nil, []Expense{{Amount: 100}})
	if got.ProfitMargin != 0 {
		t.Fatalf("margin with zero revenue expected 0, got %v", got.ProfitMargin)
	}
	if got.NetIncome != -100 {
		t.Fatalf("net income expected -100, got %v", got.NetIncome)
	}
}

func TestMonthToDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	expenses := []Expense{
		{Amount: 10, Date: "2024-06-01"},
		{Amount: 20, Date: "2024-06-30"},
		{Amount: 40, Date: "2024-05-31"},
		{Amount: 80, Date: "2023-06-15"}, // same month, wrong year
		{Amount: 160, Date: "garbage"},   // skipped
	}
	got := MonthToDate(expenses,
		func(e Expense) string { return e.Date },
		func(e Expense) float64 { return e.Amount },
		now)
	if got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
}
