package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/testutil"
)

type expenseHandlerEnv struct {
	handler      *ExpenseHandler
	expenseRepo  *testutil.MockExpenseRepository
	budgetRepo   *testutil.MockBudgetRepository
	activityRepo *testutil.MockActivityRepository
	publisher    *testutil.CapturingPublisher
}

func newExpenseHandlerEnv() *expenseHandlerEnv {
	expenseRepo := testutil.NewMockExpenseRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	activityRepo := testutil.NewMockActivityRepository()
	publisher := testutil.NewCapturingPublisher()

	budgetService := service.NewBudgetService(budgetRepo, expenseRepo)
	activityService := service.NewActivityService(activityRepo)
	expenseService := service.NewExpenseService(expenseRepo, budgetRepo, budgetService, activityService, publisher)
	receiptService := service.NewReceiptService(nil, expenseRepo)

	return &expenseHandlerEnv{
		handler:      NewExpenseHandler(expenseService, receiptService),
		expenseRepo:  expenseRepo,
		budgetRepo:   budgetRepo,
		activityRepo: activityRepo,
		publisher:    publisher,
	}
}

func TestCreateExpenseHandler_Success(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	reqBody := `{"amount": "42.50", "category": "Food", "description": "Lunch", "date": "2025-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := env.handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rec.Code)
	}

	var response ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Amount != "42.50" {
		t.Errorf("Expected amount '42.50', got %s", response.Amount)
	}
	if response.Category != "Food" {
		t.Errorf("Expected category 'Food', got %s", response.Category)
	}
	if response.Date != "2025-03-10" {
		t.Errorf("Expected date '2025-03-10', got %s", response.Date)
	}
	if len(env.activityRepo.Activities) != 1 {
		t.Errorf("Expected 1 activity entry, got %d", len(env.activityRepo.Activities))
	}
}

func TestCreateExpenseHandler_InvalidAmount(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	reqBody := `{"amount": "abc", "category": "Food", "description": "Lunch", "date": "2025-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := env.handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCreateExpenseHandler_MissingCategory(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	reqBody := `{"amount": "10", "category": "  ", "description": "Lunch", "date": "2025-03-10"}`
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := env.handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
	if len(env.expenseRepo.Expenses) != 0 {
		t.Errorf("Expected no expenses persisted, got %d", len(env.expenseRepo.Expenses))
	}
}

func TestUpdateExpenseHandler_NotFound(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	reqBody := `{"amount": "10", "category": "Food", "description": "Lunch", "date": "2025-03-10"}`
	req := httptest.NewRequest(http.MethodPut, "/expenses/"+uuid.NewString(), strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := env.handler.UpdateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestUpdateExpenseHandler_InvalidID(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	req := httptest.NewRequest(http.MethodPut, "/expenses/not-a-uuid", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := env.handler.UpdateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestDeleteExpenseHandler_Success(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()
	expense := env.expenseRepo.AddExpense(&domain.Expense{
		Amount:      decimal.NewFromInt(10),
		Category:    "Food",
		Description: "Lunch",
	})

	req := httptest.NewRequest(http.MethodDelete, "/expenses/"+expense.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(expense.ID.String())

	if err := env.handler.DeleteExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(env.expenseRepo.Expenses) != 0 {
		t.Errorf("Expected expense removed, got %d remaining", len(env.expenseRepo.Expenses))
	}
}

func TestGetRecentExpensesHandler_InvalidLimit(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	req := httptest.NewRequest(http.MethodGet, "/expenses/recent?limit=-3", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := env.handler.GetRecentExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestUploadReceiptHandler_StorageNotConfigured(t *testing.T) {
	e := echo.New()
	env := newExpenseHandlerEnv()

	req := httptest.NewRequest(http.MethodPost, "/expenses/"+uuid.NewString()+"/receipt", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := env.handler.UploadReceipt(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", rec.Code)
	}
}
