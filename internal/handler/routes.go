package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, expenseHandler *ExpenseHandler, budgetHandler *BudgetHandler, categoryHandler *CategoryHandler, activityHandler *ActivityHandler, dashboardHandler *DashboardHandler, wsHandler *WebSocketHandler) {
	// Expense routes
	expenses := e.Group("/expenses")
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("", expenseHandler.GetExpenses)
	expenses.GET("/recent", expenseHandler.GetRecentExpenses)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)
	expenses.POST("/:id/receipt", expenseHandler.UploadReceipt)
	expenses.DELETE("/:id/receipt", expenseHandler.DeleteReceipt)

	// Budget routes
	budgets := e.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.PUT("/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	// Category routes
	categories := e.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Activity feed
	e.GET("/recent-activities", activityHandler.GetRecentActivities)

	// Dashboard
	e.GET("/dashboard", dashboardHandler.GetSummary)

	// WebSocket notifications
	e.GET("/ws", wsHandler.HandleWS)
}
