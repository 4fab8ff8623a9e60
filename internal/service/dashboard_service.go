package service

import (
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// DashboardService assembles the landing-page summary from the expense set
type DashboardService struct {
	expenseRepo domain.ExpenseRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(expenseRepo domain.ExpenseRepository) *DashboardService {
	return &DashboardService{expenseRepo: expenseRepo}
}

// GetSummary returns the total spent, per-category totals, expense count,
// and the most recent expenses. The two reads run concurrently.
func (s *DashboardService) GetSummary() (*domain.DashboardSummary, error) {
	var (
		expenses []*domain.Expense
		recent   []*domain.Expense
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		expenses, err = s.expenseRepo.GetAll()
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.expenseRepo.GetRecent(domain.DefaultRecentExpenseLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalSpent := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		totalSpent = totalSpent.Add(expense.Amount)
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
	}

	return &domain.DashboardSummary{
		TotalSpent:         totalSpent,
		RecentExpenses:     recent,
		ExpensesByCategory: byCategory,
		TotalExpenses:      int64(len(expenses)),
	}, nil
}
