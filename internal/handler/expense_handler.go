package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	receiptService *service.ReceiptService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, receiptService *service.ReceiptService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		receiptService: receiptService,
	}
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          string               `json:"id"`
	Amount      string               `json:"amount"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Date        string               `json:"date"`
	Receipt     *service.ReceiptURLs `json:"receipt,omitempty"`
	CreatedAt   string               `json:"createdAt"`
	UpdatedAt   string               `json:"updatedAt"`
}

// parseExpenseRequest binds and converts the request body into a service input
func parseExpenseRequest(c echo.Context) (*service.ExpenseInput, error) {
	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date time.Time
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
	}

	return &service.ExpenseInput{
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	}, nil
}

// expenseValidationResponse maps domain validation errors onto problem details
func expenseValidationResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		}), true
	case errors.Is(err, domain.ErrDescriptionRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "description", Message: "Description is required and must be 255 characters or less"},
		}), true
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		}), true
	}
	return nil, false
}

// CreateExpense godoc
// @Summary Create an expense
// @Description Create a new expense, updating budgets and activity
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense creation request"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	input, err := parseExpenseRequest(c)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.CreateExpense(*input)
	if err != nil {
		if resp, ok := expenseValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Msg("Failed to create expense")
		return NewInternalError(c, "Failed to create expense")
	}

	log.Info().Str("expense_id", expense.ID.String()).Str("category", expense.Category).Msg("Expense created")
	return c.JSON(http.StatusCreated, h.toExpenseResponse(c, expense))
}

// GetExpenses godoc
// @Summary List expenses
// @Description Get all expenses sorted by date descending
// @Tags expenses
// @Produce json
// @Success 200 {array} ExpenseResponse
// @Router /expenses [get]
func (h *ExpenseHandler) GetExpenses(c echo.Context) error {
	expenses, err := h.expenseService.GetExpenses()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get expenses")
		return NewInternalError(c, "Failed to get expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = h.toExpenseResponse(c, expense)
	}
	return c.JSON(http.StatusOK, response)
}

// GetRecentExpenses godoc
// @Summary List recent expenses
// @Description Get the most recent expenses by date
// @Tags expenses
// @Produce json
// @Param limit query int false "Maximum number of expenses" default(5)
// @Success 200 {array} ExpenseResponse
// @Router /expenses/recent [get]
func (h *ExpenseHandler) GetRecentExpenses(c echo.Context) error {
	var limit int32
	limitStr := c.QueryParam("limit")
	if limitStr != "" {
		if _, err := parseIntParam(limitStr, &limit); err != nil || limit < 1 {
			return NewValidationError(c, "Invalid limit (must be positive integer)", nil)
		}
	}

	expenses, err := h.expenseService.GetRecentExpenses(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get recent expenses")
		return NewInternalError(c, "Failed to get recent expenses")
	}

	response := make([]ExpenseResponse, len(expenses))
	for i, expense := range expenses {
		response[i] = h.toExpenseResponse(c, expense)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateExpense godoc
// @Summary Update an expense
// @Description Update an existing expense, re-aggregating affected budgets
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense update request"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	input, err := parseExpenseRequest(c)
	if err != nil {
		return err
	}

	expense, err := h.expenseService.UpdateExpense(id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		if resp, ok := expenseValidationResponse(c, err); ok {
			return resp
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to update expense")
		return NewInternalError(c, "Failed to update expense")
	}

	log.Info().Str("expense_id", expense.ID.String()).Msg("Expense updated")
	return c.JSON(http.StatusOK, h.toExpenseResponse(c, expense))
}

// DeleteExpense godoc
// @Summary Delete an expense
// @Description Delete an expense, recording activity and re-aggregating its budget
// @Tags expenses
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to delete expense")
		return NewInternalError(c, "Failed to delete expense")
	}

	log.Info().Str("expense_id", id.String()).Msg("Expense deleted")
	return c.NoContent(http.StatusNoContent)
}

// UploadReceipt godoc
// @Summary Attach a receipt image
// @Description Upload a receipt image for an expense (multipart field "receipt")
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Expense ID"
// @Param receipt formData file true "Receipt image (JPEG, PNG, WebP)"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /expenses/{id}/receipt [post]
func (h *ExpenseHandler) UploadReceipt(c echo.Context) error {
	if !h.receiptService.IsEnabled() {
		return NewUnavailableError(c, "Receipt storage is not configured")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		return NewValidationError(c, "Missing receipt file", []ValidationError{
			{Field: "receipt", Message: "A file upload named 'receipt' is required"},
		})
	}
	if fileHeader.Size > service.MaxReceiptSize {
		return NewValidationError(c, "File too large. Maximum size is 5MB", nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded receipt")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxReceiptSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded receipt")
		return NewInternalError(c, "Failed to read uploaded file")
	}

	expense, err := h.receiptService.Attach(c.Request().Context(), id, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrExpenseNotFound):
			return NewNotFoundError(c, "Expense not found")
		case errors.Is(err, service.ErrReceiptTooLarge),
			errors.Is(err, service.ErrInvalidReceiptFormat),
			errors.Is(err, service.ErrInvalidReceiptData):
			return NewValidationError(c, err.Error(), nil)
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to attach receipt")
		return NewInternalError(c, "Failed to attach receipt")
	}

	log.Info().Str("expense_id", id.String()).Msg("Receipt attached")
	return c.JSON(http.StatusOK, h.toExpenseResponse(c, expense))
}

// DeleteReceipt godoc
// @Summary Remove a receipt image
// @Description Delete the stored receipt for an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /expenses/{id}/receipt [delete]
func (h *ExpenseHandler) DeleteReceipt(c echo.Context) error {
	if !h.receiptService.IsEnabled() {
		return NewUnavailableError(c, "Receipt storage is not configured")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid expense ID", nil)
	}

	expense, err := h.receiptService.Remove(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return NewNotFoundError(c, "Expense not found")
		}
		log.Error().Err(err).Str("expense_id", id.String()).Msg("Failed to remove receipt")
		return NewInternalError(c, "Failed to remove receipt")
	}

	log.Info().Str("expense_id", id.String()).Msg("Receipt removed")
	return c.JSON(http.StatusOK, h.toExpenseResponse(c, expense))
}

// Helper function to parse int query params with overflow protection
func parseIntParam(s string, out *int32) (bool, error) {
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return false, errors.New("invalid integer")
	}
	*out = int32(v)
	return true, nil
}

// toExpenseResponse converts a domain.Expense, attaching presigned receipt
// URLs when a receipt is stored. A presign failure drops the URLs from the
// response rather than failing the request.
func (h *ExpenseHandler) toExpenseResponse(c echo.Context, expense *domain.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID.String(),
		Amount:      expense.Amount.StringFixed(2),
		Category:    expense.Category,
		Description: expense.Description,
		Date:        expense.Date.Format("2006-01-02"),
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   expense.UpdatedAt.Format(time.RFC3339),
	}
	if expense.ReceiptPath != nil && h.receiptService.IsEnabled() {
		urls, err := h.receiptService.URLs(c.Request().Context(), *expense.ReceiptPath)
		if err != nil {
			log.Warn().Err(err).Str("expense_id", expense.ID.String()).Msg("Failed to presign receipt URLs")
		} else {
			resp.Receipt = urls
		}
	}
	return resp
}
