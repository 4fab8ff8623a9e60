package domain

import "errors"

// Domain errors
var (
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrBudgetNotFound       = errors.New("budget not found")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrActivityNotFound     = errors.New("activity not found")
	ErrBudgetCategoryExists = errors.New("a budget already exists for this category")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrCategoryRequired     = errors.New("category is required")
	ErrDescriptionRequired  = errors.New("description is required")
	ErrDateRequired         = errors.New("date is required")
	ErrNameRequired         = errors.New("name is required")
	ErrColorRequired        = errors.New("color is required")
	ErrInvalidTimeframe     = errors.New("invalid timeframe")
)

// Validation constants
const (
	MaxDescriptionLength  = 255
	MaxCategoryNameLength = 100
)
