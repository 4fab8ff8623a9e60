package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/testutil"
)

func newBudgetHandlerEnv() (*BudgetHandler, *testutil.MockBudgetRepository, *testutil.MockExpenseRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo)
	return NewBudgetHandler(budgetService), budgetRepo, expenseRepo
}

func TestCreateBudgetHandler_Success(t *testing.T) {
	e := echo.New()
	handler, _, expenseRepo := newBudgetHandlerEnv()
	expenseRepo.AddExpense(&domain.Expense{
		Amount:      decimal.NewFromInt(150),
		Category:    "Food",
		Description: "Groceries",
		Date:        time.Now(),
	})

	reqBody := `{"category": "Food", "amount": "1000"}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Category != "Food" {
		t.Errorf("Expected category 'Food', got %s", response.Category)
	}
	if response.Amount != "1000.00" {
		t.Errorf("Expected amount '1000.00', got %s", response.Amount)
	}
	if response.Spent != "150.00" {
		t.Errorf("Expected seeded spent '150.00', got %s", response.Spent)
	}
	if response.Timeframe != "monthly" {
		t.Errorf("Expected default timeframe 'monthly', got %s", response.Timeframe)
	}
}

func TestCreateBudgetHandler_DuplicateCategory(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newBudgetHandlerEnv()
	budgetRepo.AddBudget(&domain.Budget{
		Category:  "Food",
		Amount:    decimal.NewFromInt(500),
		Timeframe: domain.TimeframeMonthly,
	})

	reqBody := `{"category": "Food", "amount": "1000"}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}
}

func TestCreateBudgetHandler_InvalidTimeframe(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerEnv()

	reqBody := `{"category": "Food", "amount": "1000", "timeframe": "daily"}`
	req := httptest.NewRequest(http.MethodPost, "/budgets", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGetBudgetsHandler_Success(t *testing.T) {
	e := echo.New()
	handler, budgetRepo, _ := newBudgetHandlerEnv()
	budgetRepo.AddBudget(&domain.Budget{
		Category:  "Food",
		Amount:    decimal.NewFromInt(500),
		Spent:     decimal.NewFromInt(120),
		Timeframe: domain.TimeframeMonthly,
	})
	budgetRepo.AddBudget(&domain.Budget{
		Category:  "Travel",
		Amount:    decimal.NewFromInt(2000),
		Timeframe: domain.TimeframeYearly,
	})

	req := httptest.NewRequest(http.MethodGet, "/budgets", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetBudgets(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	var response []BudgetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response) != 2 {
		t.Fatalf("Expected 2 budgets, got %d", len(response))
	}
}

func TestDeleteBudgetHandler_NotFound(t *testing.T) {
	e := echo.New()
	handler, _, _ := newBudgetHandlerEnv()

	req := httptest.NewRequest(http.MethodDelete, "/budgets/4d9df1f2-7f51-4b62-a8f6-a35adcbcd0ba", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("4d9df1f2-7f51-4b62-a8f6-a35adcbcd0ba")

	if err := handler.DeleteBudget(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
