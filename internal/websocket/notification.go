package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// NotificationTypeWarning is the only notification type delivered to
// clients. Both threshold alerts carry it.
const NotificationTypeWarning = "warning"

// Notification is the push payload sent to every open connection.
// Format: { title, message, type }
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ToJSON serializes the notification to JSON bytes
func (n Notification) ToJSON() ([]byte, error) {
	return json.Marshal(n)
}

// BudgetLimitReached builds the warning sent when a category's spent total
// reaches or exceeds its budget amount.
func BudgetLimitReached(category string) Notification {
	return Notification{
		Title:   "Budget Limit Reached",
		Message: fmt.Sprintf("You've reached your budget limit for %s", category),
		Type:    NotificationTypeWarning,
	}
}

// LargeExpenseAlert builds the warning sent when a single expense exceeds
// the large-expense threshold.
func LargeExpenseAlert(amount decimal.Decimal, description string) Notification {
	return Notification{
		Title:   "Large Expense Alert",
		Message: fmt.Sprintf("Large expense of %s added for %s", amount.String(), description),
		Type:    NotificationTypeWarning,
	}
}
