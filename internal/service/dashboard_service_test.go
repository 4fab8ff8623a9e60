package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/testutil"
)

func TestGetSummary_Empty(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	summary, err := dashboardService.GetSummary()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalSpent.Equal(decimal.Zero) {
		t.Errorf("Expected total spent 0, got %s", summary.TotalSpent.String())
	}
	if summary.TotalExpenses != 0 {
		t.Errorf("Expected 0 expenses, got %d", summary.TotalExpenses)
	}
	if len(summary.RecentExpenses) != 0 {
		t.Errorf("Expected no recent expenses, got %d", len(summary.RecentExpenses))
	}
}

func TestGetSummary_Totals(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	amounts := []struct {
		amount   float64
		category string
	}{
		{100, "Food"},
		{50.50, "Food"},
		{200, "Travel"},
		{25, "Misc"},
	}
	for i, a := range amounts {
		expenseRepo.AddExpense(&domain.Expense{
			Amount:      decimal.NewFromFloat(a.amount),
			Category:    a.category,
			Description: "Entry",
			Date:        day.AddDate(0, 0, i),
		})
	}

	summary, err := dashboardService.GetSummary()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !summary.TotalSpent.Equal(decimal.NewFromFloat(375.50)) {
		t.Errorf("Expected total spent 375.50, got %s", summary.TotalSpent.String())
	}
	if summary.TotalExpenses != 4 {
		t.Errorf("Expected 4 expenses, got %d", summary.TotalExpenses)
	}
	if !summary.ExpensesByCategory["Food"].Equal(decimal.NewFromFloat(150.50)) {
		t.Errorf("Expected Food total 150.50, got %s", summary.ExpensesByCategory["Food"].String())
	}
	if !summary.ExpensesByCategory["Travel"].Equal(decimal.NewFromInt(200)) {
		t.Errorf("Expected Travel total 200, got %s", summary.ExpensesByCategory["Travel"].String())
	}
}

func TestGetSummary_RecentExpensesCapped(t *testing.T) {
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := NewDashboardService(expenseRepo)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 9; i++ {
		expenseRepo.AddExpense(&domain.Expense{
			Amount:      decimal.NewFromInt(int64(i + 1)),
			Category:    "Food",
			Description: "Entry",
			Date:        day.AddDate(0, 0, i),
		})
	}

	summary, err := dashboardService.GetSummary()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(summary.RecentExpenses) != domain.DefaultRecentExpenseLimit {
		t.Fatalf("Expected %d recent expenses, got %d", domain.DefaultRecentExpenseLimit, len(summary.RecentExpenses))
	}
	// Newest date first
	if !summary.RecentExpenses[0].Amount.Equal(decimal.NewFromInt(9)) {
		t.Errorf("Expected newest expense first, got amount %s", summary.RecentExpenses[0].Amount.String())
	}
}
