package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// BudgetService handles budget CRUD and owns the spent aggregate. The
// aggregate is always recomputed from the full expense set of the category,
// never adjusted by deltas, so any transient drift heals on the next
// recomputation.
type BudgetService struct {
	budgetRepo  domain.BudgetRepository
	expenseRepo domain.ExpenseRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, expenseRepo domain.ExpenseRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:  budgetRepo,
		expenseRepo: expenseRepo,
	}
}

// BudgetInput holds the input for creating or updating a budget
type BudgetInput struct {
	Category  string
	Amount    decimal.Decimal
	Timeframe domain.BudgetTimeframe
}

func (in *BudgetInput) validate() error {
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return domain.ErrCategoryRequired
	}

	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if in.Timeframe == "" {
		in.Timeframe = domain.TimeframeMonthly
	}
	switch in.Timeframe {
	case domain.TimeframeWeekly, domain.TimeframeMonthly, domain.TimeframeYearly:
	default:
		return domain.ErrInvalidTimeframe
	}

	return nil
}

// CreateBudget creates a budget for a category. The spent total is seeded
// by a recomputation over existing expenses of the category.
func (s *BudgetService) CreateBudget(input BudgetInput) (*domain.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := s.budgetRepo.Create(&domain.Budget{
		Category:  input.Category,
		Amount:    input.Amount,
		Timeframe: input.Timeframe,
	})
	if err != nil {
		return nil, err
	}

	if err := s.RecalculateSpent(created.Category); err != nil {
		log.Warn().
			Err(err).
			Str("category", created.Category).
			Msg("Failed to seed budget aggregate")
		return created, nil
	}

	return s.budgetRepo.GetByID(created.ID)
}

// GetBudgets retrieves all budgets
func (s *BudgetService) GetBudgets() ([]*domain.Budget, error) {
	return s.budgetRepo.GetAll()
}

// UpdateBudget applies an update to a budget and re-aggregates the spent
// total for its (possibly changed) category
func (s *BudgetService) UpdateBudget(id uuid.UUID, input BudgetInput) (*domain.Budget, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	updated, err := s.budgetRepo.Update(id, &domain.UpdateBudgetData{
		Category:  input.Category,
		Amount:    input.Amount,
		Timeframe: input.Timeframe,
	})
	if err != nil {
		return nil, err
	}

	if err := s.RecalculateSpent(updated.Category); err != nil {
		log.Warn().
			Err(err).
			Str("category", updated.Category).
			Msg("Failed to recompute budget aggregate")
		return updated, nil
	}

	return s.budgetRepo.GetByID(updated.ID)
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(id uuid.UUID) error {
	return s.budgetRepo.Delete(id)
}

// RecalculateSpent overwrites the category's spent aggregate with the sum
// over all current expenses of that category. A category without a budget
// is a no-op, not an error.
func (s *BudgetService) RecalculateSpent(category string) error {
	spent, err := s.expenseRepo.SumAmountByCategory(category)
	if err != nil {
		return err
	}

	if err := s.budgetRepo.UpdateSpent(category, spent); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return nil
		}
		return err
	}
	return nil
}
