package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActivityType string

const (
	ActivityTypeAdd    ActivityType = "add"
	ActivityTypeUpdate ActivityType = "update"
	ActivityTypeDelete ActivityType = "delete"
)

// MaxRecentActivities bounds the trailing-window activity log. Rows older
// than the Nth-newest are discarded after every insert.
const MaxRecentActivities = 5

// Activity records one expense mutation. ExpenseID is a soft reference and
// dangles after the expense is deleted.
type Activity struct {
	ID          uuid.UUID       `json:"id"`
	ExpenseID   uuid.UUID       `json:"expenseId"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Type        ActivityType    `json:"type"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ActivityRepository interface {
	Create(activity *Activity) (*Activity, error)
	GetRecent(limit int32) ([]*Activity, error)
	Count() (int64, error)
	// NthNewestCreatedAt returns the created_at of the nth newest row
	// (1-based). Returns ErrActivityNotFound when fewer than n rows exist.
	NthNewestCreatedAt(n int32) (time.Time, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}
