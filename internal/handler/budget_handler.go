package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Timeframe string `json:"timeframe,omitempty"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Amount    string `json:"amount"`
	Spent     string `json:"spent"`
	Timeframe string `json:"timeframe"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// parseBudgetRequest binds and converts the request body into a service input
func parseBudgetRequest(c echo.Context) (*service.BudgetInput, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	return &service.BudgetInput{
		Category:  req.Category,
		Amount:    amount,
		Timeframe: domain.BudgetTimeframe(req.Timeframe),
	}, nil
}

// budgetValidationResponse maps domain validation errors onto problem details
func budgetValidationResponse(c echo.Context, err error) (error, bool) {
	switch {
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "category", Message: "Category is required"},
		}), true
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be positive"},
		}), true
	case errors.Is(err, domain.ErrInvalidTimeframe):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "timeframe", Message: "Must be one of: weekly, monthly, yearly"},
		}), true
	}
	return nil, false
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Create a budget for a category, seeding its spent total
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget creation request"
// @Success 201 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	input, err := parseBudgetRequest(c)
	if err != nil {
		return err
	}

	budget, err := h.budgetService.CreateBudget(*input)
	if err != nil {
		if resp, ok := budgetValidationResponse(c, err); ok {
			return resp
		}
		if errors.Is(err, domain.ErrBudgetCategoryExists) {
			return NewConflictError(c, "A budget for this category already exists")
		}
		log.Error().Err(err).Str("category", input.Category).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	log.Info().Str("budget_id", budget.ID.String()).Str("category", budget.Category).Msg("Budget created")
	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets godoc
// @Summary List budgets
// @Description Get all budgets with their current spent totals
// @Tags budgets
// @Produce json
// @Success 200 {array} BudgetResponse
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.GetBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get budgets")
		return NewInternalError(c, "Failed to get budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateBudget godoc
// @Summary Update a budget
// @Description Update a budget and re-aggregate its spent total
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param request body BudgetRequest true "Budget update request"
// @Success 200 {object} BudgetResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	input, err := parseBudgetRequest(c)
	if err != nil {
		return err
	}

	budget, err := h.budgetService.UpdateBudget(id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if resp, ok := budgetValidationResponse(c, err); ok {
			return resp
		}
		if errors.Is(err, domain.ErrBudgetCategoryExists) {
			return NewConflictError(c, "A budget for this category already exists")
		}
		log.Error().Err(err).Str("budget_id", id.String()).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	log.Info().Str("budget_id", budget.ID.String()).Msg("Budget updated")
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Description Delete a budget without touching its category's expenses
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Str("budget_id", id.String()).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	log.Info().Str("budget_id", id.String()).Msg("Budget deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.Budget to BudgetResponse
func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        budget.ID.String(),
		Category:  budget.Category,
		Amount:    budget.Amount.StringFixed(2),
		Spent:     budget.Spent.StringFixed(2),
		Timeframe: string(budget.Timeframe),
		CreatedAt: budget.CreatedAt.Format(time.RFC3339),
		UpdatedAt: budget.UpdatedAt.Format(time.RFC3339),
	}
}
