package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/testutil"
)

func TestGetSummaryHandler_Success(t *testing.T) {
	e := echo.New()
	expenseRepo := testutil.NewMockExpenseRepository()
	dashboardService := service.NewDashboardService(expenseRepo)
	handler := NewDashboardHandler(dashboardService)

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	expenseRepo.AddExpense(&domain.Expense{
		Amount:      decimal.NewFromInt(100),
		Category:    "Food",
		Description: "Groceries",
		Date:        day,
	})
	expenseRepo.AddExpense(&domain.Expense{
		Amount:      decimal.NewFromFloat(49.50),
		Category:    "Travel",
		Description: "Bus pass",
		Date:        day.AddDate(0, 0, 1),
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetSummary(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.TotalSpent != "149.50" {
		t.Errorf("Expected total spent '149.50', got %s", response.TotalSpent)
	}
	if response.TotalExpenses != 2 {
		t.Errorf("Expected 2 expenses, got %d", response.TotalExpenses)
	}
	if response.ExpensesByCategory["Food"] != "100.00" {
		t.Errorf("Expected Food total '100.00', got %s", response.ExpensesByCategory["Food"])
	}
	if len(response.RecentExpenses) != 2 {
		t.Fatalf("Expected 2 recent expenses, got %d", len(response.RecentExpenses))
	}
	// Newest date first
	if response.RecentExpenses[0].Description != "Bus pass" {
		t.Errorf("Expected newest expense first, got %s", response.RecentExpenses[0].Description)
	}
}
