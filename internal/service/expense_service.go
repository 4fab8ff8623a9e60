package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/metrics"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/websocket"
)

// LargeExpenseThreshold is the fixed amount above which a single expense
// triggers a Large Expense Alert. The check is strict: an expense of
// exactly this amount does not fire.
var LargeExpenseThreshold = decimal.NewFromInt(5000)

// ExpenseService sequences every expense mutation: the primary write,
// the activity log entry, the budget re-aggregation, and the threshold
// notifications. Only the primary write is fatal to the request; the
// remaining steps run best-effort and are logged when they fail. The steps
// are not wrapped in a transaction, so a failure partway through leaves the
// earlier writes in place; re-aggregation self-heals on the next mutation.
type ExpenseService struct {
	expenseRepo     domain.ExpenseRepository
	budgetRepo      domain.BudgetRepository
	budgetService   *BudgetService
	activityService *ActivityService
	publisher       websocket.NotificationPublisher
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.BudgetRepository,
	budgetService *BudgetService,
	activityService *ActivityService,
	publisher websocket.NotificationPublisher,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:     expenseRepo,
		budgetRepo:      budgetRepo,
		budgetService:   budgetService,
		activityService: activityService,
		publisher:       publisher,
	}
}

// ExpenseInput holds the input for creating or updating an expense
type ExpenseInput struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

func (in *ExpenseInput) validate() error {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		return domain.ErrCategoryRequired
	}

	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return domain.ErrDescriptionRequired
	}
	if len(in.Description) > domain.MaxDescriptionLength {
		return domain.ErrDescriptionRequired
	}

	if in.Date.IsZero() {
		return domain.ErrDateRequired
	}

	return nil
}

// CreateExpense persists a new expense, then records activity, recomputes
// the category's budget aggregate, and evaluates threshold notifications
func (s *ExpenseService) CreateExpense(input ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.Create(&domain.Expense{
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}
	metrics.ExpenseMutationsTotal.WithLabelValues("add").Inc()

	s.logActivity(created, domain.ActivityTypeAdd)
	s.recalculate(created.Category, created.ID)
	s.checkThresholds(created)

	return created, nil
}

// GetExpenses retrieves all expenses sorted by date descending
func (s *ExpenseService) GetExpenses() ([]*domain.Expense, error) {
	return s.expenseRepo.GetAll()
}

// GetRecentExpenses retrieves the most recent expenses by date
func (s *ExpenseService) GetRecentExpenses(limit int32) ([]*domain.Expense, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentExpenseLimit
	}
	return s.expenseRepo.GetRecent(limit)
}

// GetExpenseByID retrieves an expense by ID
func (s *ExpenseService) GetExpenseByID(id uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(id)
}

// UpdateExpense applies an update to an existing expense. When the category
// changed, both the old and the new category's budgets are re-aggregated
// independently so neither is left stale.
func (s *ExpenseService) UpdateExpense(id uuid.UUID, input ExpenseInput) (*domain.Expense, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	old, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(id, &domain.UpdateExpenseData{
		Amount:      input.Amount,
		Category:    input.Category,
		Description: input.Description,
		Date:        input.Date,
	})
	if err != nil {
		return nil, err
	}
	metrics.ExpenseMutationsTotal.WithLabelValues("update").Inc()

	s.logActivity(updated, domain.ActivityTypeUpdate)

	if old.Category != updated.Category {
		s.recalculate(old.Category, updated.ID)
	}
	s.recalculate(updated.Category, updated.ID)

	s.checkThresholds(updated)

	return updated, nil
}

// DeleteExpense removes an expense. The activity entry is recorded before
// the record is deleted: once the row is gone, the snapshot the entry needs
// no longer exists. No threshold check runs on delete.
func (s *ExpenseService) DeleteExpense(id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(id)
	if err != nil {
		return err
	}

	s.logActivity(expense, domain.ActivityTypeDelete)

	if err := s.expenseRepo.Delete(id); err != nil {
		return err
	}
	metrics.ExpenseMutationsTotal.WithLabelValues("delete").Inc()

	s.recalculate(expense.Category, expense.ID)

	return nil
}

// logActivity records an activity entry best-effort
func (s *ExpenseService) logActivity(expense *domain.Expense, activityType domain.ActivityType) {
	if _, err := s.activityService.Log(expense, activityType); err != nil {
		log.Warn().
			Err(err).
			Str("expense_id", expense.ID.String()).
			Str("type", string(activityType)).
			Msg("Failed to record activity")
	}
}

// recalculate recomputes a category's budget aggregate best-effort
func (s *ExpenseService) recalculate(category string, expenseID uuid.UUID) {
	if err := s.budgetService.RecalculateSpent(category); err != nil {
		log.Warn().
			Err(err).
			Str("expense_id", expenseID.String()).
			Str("category", category).
			Msg("Failed to recompute budget aggregate")
	}
}

// checkThresholds evaluates both warning conditions against the mutation's
// resulting state. Both may fire for the same mutation.
func (s *ExpenseService) checkThresholds(expense *domain.Expense) {
	budget, err := s.budgetRepo.GetByCategory(expense.Category)
	switch {
	case err == nil:
		if budget.Spent.GreaterThanOrEqual(budget.Amount) {
			s.publisher.Publish(websocket.BudgetLimitReached(expense.Category))
		}
	case errors.Is(err, domain.ErrBudgetNotFound):
		// A category may have expenses but no budget
	default:
		log.Warn().
			Err(err).
			Str("category", expense.Category).
			Msg("Failed to load budget for threshold check")
	}

	if expense.Amount.GreaterThan(LargeExpenseThreshold) {
		s.publisher.Publish(websocket.LargeExpenseAlert(expense.Amount, expense.Description))
	}
}
