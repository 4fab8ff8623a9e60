package websocket

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetLimitReached(t *testing.T) {
	n := BudgetLimitReached("Groceries")

	assert.Equal(t, "Budget Limit Reached", n.Title)
	assert.Equal(t, "You've reached your budget limit for Groceries", n.Message)
	assert.Equal(t, NotificationTypeWarning, n.Type)
}

func TestLargeExpenseAlert(t *testing.T) {
	n := LargeExpenseAlert(decimal.NewFromFloat(7250.50), "New laptop")

	assert.Equal(t, "Large Expense Alert", n.Title)
	assert.Equal(t, "Large expense of 7250.5 added for New laptop", n.Message)
	assert.Equal(t, NotificationTypeWarning, n.Type)
}

func TestNotification_ToJSON(t *testing.T) {
	data, err := BudgetLimitReached("Food").ToJSON()
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]string{
		"title":   "Budget Limit Reached",
		"message": "You've reached your budget limit for Food",
		"type":    "warning",
	}, decoded)
}

func TestNoOpPublisher(t *testing.T) {
	// Must accept publishes without panicking
	p := &NoOpPublisher{}
	p.Publish(BudgetLimitReached("Food"))
}
