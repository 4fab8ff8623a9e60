package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DashboardExpenseResponse represents an expense inside the dashboard summary
type DashboardExpenseResponse struct {
	ID          string `json:"id"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// DashboardResponse represents the dashboard summary in API responses
type DashboardResponse struct {
	TotalSpent         string                     `json:"totalSpent"`
	TotalExpenses      int64                      `json:"totalExpenses"`
	ExpensesByCategory map[string]string          `json:"expensesByCategory"`
	RecentExpenses     []DashboardExpenseResponse `json:"recentExpenses"`
}

// GetSummary godoc
// @Summary Get dashboard summary
// @Description Get total spent, per-category totals, and recent expenses
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetSummary(c echo.Context) error {
	summary, err := h.dashboardService.GetSummary()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get dashboard summary")
		return NewInternalError(c, "Failed to get dashboard summary")
	}

	byCategory := make(map[string]string, len(summary.ExpensesByCategory))
	for category, total := range summary.ExpensesByCategory {
		byCategory[category] = total.StringFixed(2)
	}

	recent := make([]DashboardExpenseResponse, len(summary.RecentExpenses))
	for i, expense := range summary.RecentExpenses {
		recent[i] = toDashboardExpenseResponse(expense)
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		TotalSpent:         summary.TotalSpent.StringFixed(2),
		TotalExpenses:      summary.TotalExpenses,
		ExpensesByCategory: byCategory,
		RecentExpenses:     recent,
	})
}

func toDashboardExpenseResponse(expense *domain.Expense) DashboardExpenseResponse {
	return DashboardExpenseResponse{
		ID:          expense.ID.String(),
		Amount:      expense.Amount.StringFixed(2),
		Category:    expense.Category,
		Description: expense.Description,
		Date:        expense.Date.Format("2006-01-02"),
	}
}
