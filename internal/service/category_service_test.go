package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/testutil"
)

func TestCreateCategory_Success(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	icon := "utensils"
	category, err := categoryService.CreateCategory(CategoryInput{
		Name:  "  Food  ",
		Color: "#ff6b6b",
		Icon:  &icon,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if category.Name != "Food" {
		t.Errorf("Expected trimmed name 'Food', got %q", category.Name)
	}
	if category.Color != "#ff6b6b" {
		t.Errorf("Expected color '#ff6b6b', got %s", category.Color)
	}
	if category.Icon == nil || *category.Icon != "utensils" {
		t.Errorf("Expected icon 'utensils', got %v", category.Icon)
	}
}

func TestCreateCategory_Validation(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if _, err := categoryService.CreateCategory(CategoryInput{Name: "  ", Color: "#fff"}); !errors.Is(err, domain.ErrNameRequired) {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
	if _, err := categoryService.CreateCategory(CategoryInput{Name: "Food", Color: ""}); !errors.Is(err, domain.ErrColorRequired) {
		t.Errorf("Expected ErrColorRequired, got %v", err)
	}
}

func TestDeleteCategory_DoesNotCascade(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()
	categoryService := NewCategoryService(categoryRepo)

	category, err := categoryService.CreateCategory(CategoryInput{Name: "Food", Color: "#fff"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expense := expenseRepo.AddExpense(&domain.Expense{
		Amount:      decimal.NewFromInt(10),
		Category:    "Food",
		Description: "Lunch",
		Date:        time.Now(),
	})

	if err := categoryService.DeleteCategory(category.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Expenses referencing the name survive untouched
	kept, err := expenseRepo.GetByID(expense.ID)
	if err != nil {
		t.Fatalf("Expected expense to survive, got %v", err)
	}
	if kept.Category != "Food" {
		t.Errorf("Expected category name retained, got %s", kept.Category)
	}
}

func TestDeleteCategory_NotFound(t *testing.T) {
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryService := NewCategoryService(categoryRepo)

	if err := categoryService.DeleteCategory(uuid.New()); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Errorf("Expected ErrCategoryNotFound, got %v", err)
	}
}
