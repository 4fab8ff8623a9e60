package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	ReceiptPath *string         `json:"receiptPath,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// UpdateExpenseData holds the fields applied by a full expense update.
type UpdateExpenseData struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time
}

const DefaultRecentExpenseLimit = 5

type ExpenseRepository interface {
	Create(expense *Expense) (*Expense, error)
	GetByID(id uuid.UUID) (*Expense, error)
	GetAll() ([]*Expense, error)
	GetRecent(limit int32) ([]*Expense, error)
	Update(id uuid.UUID, data *UpdateExpenseData) (*Expense, error)
	Delete(id uuid.UUID) error
	SumAmountByCategory(category string) (decimal.Decimal, error)
	SetReceiptPath(id uuid.UUID, path *string) (*Expense, error)
}
