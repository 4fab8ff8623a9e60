package domain

import "github.com/shopspring/decimal"

// DashboardSummary aggregates the landing-page numbers in one payload.
type DashboardSummary struct {
	TotalSpent         decimal.Decimal            `json:"totalSpent"`
	RecentExpenses     []*Expense                 `json:"recentExpenses"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	TotalExpenses      int64                      `json:"totalExpenses"`
}
