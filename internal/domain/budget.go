package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetTimeframe string

const (
	TimeframeWeekly  BudgetTimeframe = "weekly"
	TimeframeMonthly BudgetTimeframe = "monthly"
	TimeframeYearly  BudgetTimeframe = "yearly"
)

// Budget caps spending for a single category. Spent is denormalized: it is
// recomputed from the full expense set after every mutation touching the
// category, never adjusted incrementally.
type Budget struct {
	ID        uuid.UUID       `json:"id"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	Timeframe BudgetTimeframe `json:"timeframe"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// UpdateBudgetData holds the fields applied by a budget update.
type UpdateBudgetData struct {
	Category  string
	Amount    decimal.Decimal
	Timeframe BudgetTimeframe
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id uuid.UUID) (*Budget, error)
	GetByCategory(category string) (*Budget, error)
	GetAll() ([]*Budget, error)
	Update(id uuid.UUID, data *UpdateBudgetData) (*Budget, error)
	UpdateSpent(category string, spent decimal.Decimal) error
	Delete(id uuid.UUID) error
}
