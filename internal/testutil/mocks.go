package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/websocket"
)

// MockExpenseRepository is a mock implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	Expenses map[uuid.UUID]*domain.Expense
	CreateFn func(expense *domain.Expense) (*domain.Expense, error)
	UpdateFn func(id uuid.UUID, data *domain.UpdateExpenseData) (*domain.Expense, error)
	DeleteFn func(id uuid.UUID) error

	// Calls records repository method names in invocation order
	Calls []string

	clock int64
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{
		Expenses: make(map[uuid.UUID]*domain.Expense),
	}
}

func (m *MockExpenseRepository) record(call string) {
	m.Calls = append(m.Calls, call)
}

// nextTime hands out strictly increasing timestamps so ordering by
// created_at is deterministic in tests
func (m *MockExpenseRepository) nextTime() time.Time {
	m.clock++
	return time.Unix(1700000000, m.clock*int64(time.Millisecond))
}

// Create persists a new expense
func (m *MockExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(expense)
	}
	stored := *expense
	stored.ID = uuid.New()
	now := m.nextTime()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.Expenses[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID retrieves an expense by ID
func (m *MockExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	m.record("GetByID")
	if expense, ok := m.Expenses[id]; ok {
		result := *expense
		return &result, nil
	}
	return nil, domain.ErrExpenseNotFound
}

// GetAll retrieves all expenses sorted by date descending
func (m *MockExpenseRepository) GetAll() ([]*domain.Expense, error) {
	m.record("GetAll")
	expenses := make([]*domain.Expense, 0, len(m.Expenses))
	for _, expense := range m.Expenses {
		result := *expense
		expenses = append(expenses, &result)
	}
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.After(expenses[j].Date)
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
	return expenses, nil
}

// GetRecent retrieves the most recent expenses by date
func (m *MockExpenseRepository) GetRecent(limit int32) ([]*domain.Expense, error) {
	m.record("GetRecent")
	expenses, _ := m.GetAll()
	if int32(len(expenses)) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

// Update applies a full update to an expense
func (m *MockExpenseRepository) Update(id uuid.UUID, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	m.record("Update")
	if m.UpdateFn != nil {
		return m.UpdateFn(id, data)
	}
	expense, ok := m.Expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	expense.Amount = data.Amount
	expense.Category = data.Category
	expense.Description = data.Description
	expense.Date = data.Date
	expense.UpdatedAt = m.nextTime()
	result := *expense
	return &result, nil
}

// Delete hard-deletes an expense
func (m *MockExpenseRepository) Delete(id uuid.UUID) error {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Expenses[id]; !ok {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// SumAmountByCategory sums amounts over expenses with the exact category
func (m *MockExpenseRepository) SumAmountByCategory(category string) (decimal.Decimal, error) {
	m.record("SumAmountByCategory")
	sum := decimal.Zero
	for _, expense := range m.Expenses {
		if expense.Category == category {
			sum = sum.Add(expense.Amount)
		}
	}
	return sum, nil
}

// SetReceiptPath attaches or clears the receipt object path
func (m *MockExpenseRepository) SetReceiptPath(id uuid.UUID, path *string) (*domain.Expense, error) {
	m.record("SetReceiptPath")
	expense, ok := m.Expenses[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	expense.ReceiptPath = path
	expense.UpdatedAt = m.nextTime()
	result := *expense
	return &result, nil
}

// AddExpense adds an expense to the mock repository (helper for tests)
func (m *MockExpenseRepository) AddExpense(expense *domain.Expense) *domain.Expense {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = m.nextTime()
	}
	m.Expenses[expense.ID] = expense
	return expense
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository
type MockBudgetRepository struct {
	Budgets       map[uuid.UUID]*domain.Budget
	UpdateSpentFn func(category string, spent decimal.Decimal) error
}

// NewMockBudgetRepository creates a new MockBudgetRepository
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[uuid.UUID]*domain.Budget),
	}
}

// Create persists a new budget enforcing category uniqueness
func (m *MockBudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	for _, existing := range m.Budgets {
		if existing.Category == budget.Category {
			return nil, domain.ErrBudgetCategoryExists
		}
	}
	stored := *budget
	stored.ID = uuid.New()
	if stored.Spent.IsZero() {
		stored.Spent = decimal.Zero
	}
	m.Budgets[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID retrieves a budget by ID
func (m *MockBudgetRepository) GetByID(id uuid.UUID) (*domain.Budget, error) {
	if budget, ok := m.Budgets[id]; ok {
		result := *budget
		return &result, nil
	}
	return nil, domain.ErrBudgetNotFound
}

// GetByCategory retrieves the budget matching the category
func (m *MockBudgetRepository) GetByCategory(category string) (*domain.Budget, error) {
	for _, budget := range m.Budgets {
		if budget.Category == category {
			result := *budget
			return &result, nil
		}
	}
	return nil, domain.ErrBudgetNotFound
}

// GetAll retrieves all budgets
func (m *MockBudgetRepository) GetAll() ([]*domain.Budget, error) {
	budgets := make([]*domain.Budget, 0, len(m.Budgets))
	for _, budget := range m.Budgets {
		result := *budget
		budgets = append(budgets, &result)
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

// Update applies a full update to a budget
func (m *MockBudgetRepository) Update(id uuid.UUID, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	budget, ok := m.Budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	for otherID, other := range m.Budgets {
		if otherID != id && other.Category == data.Category {
			return nil, domain.ErrBudgetCategoryExists
		}
	}
	budget.Category = data.Category
	budget.Amount = data.Amount
	budget.Timeframe = data.Timeframe
	result := *budget
	return &result, nil
}

// UpdateSpent overwrites the spent total for a category
func (m *MockBudgetRepository) UpdateSpent(category string, spent decimal.Decimal) error {
	if m.UpdateSpentFn != nil {
		return m.UpdateSpentFn(category, spent)
	}
	for _, budget := range m.Budgets {
		if budget.Category == category {
			budget.Spent = spent
			return nil
		}
	}
	return domain.ErrBudgetNotFound
}

// Delete hard-deletes a budget
func (m *MockBudgetRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// AddBudget adds a budget to the mock repository (helper for tests)
func (m *MockBudgetRepository) AddBudget(budget *domain.Budget) *domain.Budget {
	if budget.ID == uuid.Nil {
		budget.ID = uuid.New()
	}
	m.Budgets[budget.ID] = budget
	return budget
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[uuid.UUID]*domain.Category
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[uuid.UUID]*domain.Category),
	}
}

// Create persists a new category
func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	stored := *category
	stored.ID = uuid.New()
	m.Categories[stored.ID] = &stored
	result := stored
	return &result, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	if category, ok := m.Categories[id]; ok {
		result := *category
		return &result, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// GetAll retrieves all categories
func (m *MockCategoryRepository) GetAll() ([]*domain.Category, error) {
	categories := make([]*domain.Category, 0, len(m.Categories))
	for _, category := range m.Categories {
		result := *category
		categories = append(categories, &result)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// Delete hard-deletes a category
func (m *MockCategoryRepository) Delete(id uuid.UUID) error {
	if _, ok := m.Categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockActivityRepository is a mock implementation of domain.ActivityRepository
type MockActivityRepository struct {
	Activities []*domain.Activity
	CreateFn   func(activity *domain.Activity) (*domain.Activity, error)

	// Calls records repository method names in invocation order
	Calls []string

	clock int64
}

// NewMockActivityRepository creates a new MockActivityRepository
func NewMockActivityRepository() *MockActivityRepository {
	return &MockActivityRepository{
		Activities: make([]*domain.Activity, 0),
	}
}

func (m *MockActivityRepository) nextTime() time.Time {
	m.clock++
	return time.Unix(1700000000, m.clock*int64(time.Millisecond))
}

// Create inserts a new activity row
func (m *MockActivityRepository) Create(activity *domain.Activity) (*domain.Activity, error) {
	m.Calls = append(m.Calls, "Create")
	if m.CreateFn != nil {
		return m.CreateFn(activity)
	}
	stored := *activity
	stored.ID = uuid.New()
	stored.CreatedAt = m.nextTime()
	m.Activities = append(m.Activities, &stored)
	result := stored
	return &result, nil
}

// sorted returns activities newest first
func (m *MockActivityRepository) sorted() []*domain.Activity {
	activities := make([]*domain.Activity, len(m.Activities))
	copy(activities, m.Activities)
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	return activities
}

// GetRecent retrieves the newest activities, newest first
func (m *MockActivityRepository) GetRecent(limit int32) ([]*domain.Activity, error) {
	activities := m.sorted()
	if int32(len(activities)) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// Count returns the total number of activity rows
func (m *MockActivityRepository) Count() (int64, error) {
	return int64(len(m.Activities)), nil
}

// NthNewestCreatedAt returns the created_at of the nth newest row (1-based)
func (m *MockActivityRepository) NthNewestCreatedAt(n int32) (time.Time, error) {
	activities := m.sorted()
	if int32(len(activities)) < n {
		return time.Time{}, domain.ErrActivityNotFound
	}
	return activities[n-1].CreatedAt, nil
}

// DeleteOlderThan removes rows with created_at strictly before the cutoff
func (m *MockActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	kept := make([]*domain.Activity, 0, len(m.Activities))
	var deleted int64
	for _, activity := range m.Activities {
		if activity.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, activity)
	}
	m.Activities = kept
	return deleted, nil
}

// CapturingPublisher records every published notification (helper for tests)
type CapturingPublisher struct {
	mu            sync.Mutex
	Notifications []websocket.Notification
}

// NewCapturingPublisher creates a new CapturingPublisher
func NewCapturingPublisher() *CapturingPublisher {
	return &CapturingPublisher{
		Notifications: make([]websocket.Notification, 0),
	}
}

// Publish records the notification
func (p *CapturingPublisher) Publish(notification websocket.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Notifications = append(p.Notifications, notification)
}

// ByTitle returns the recorded notifications with the given title
func (p *CapturingPublisher) ByTitle(title string) []websocket.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	matched := make([]websocket.Notification, 0)
	for _, n := range p.Notifications {
		if n.Title == title {
			matched = append(matched, n)
		}
	}
	return matched
}
