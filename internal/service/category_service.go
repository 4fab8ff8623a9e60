package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// CategoryService handles category business logic. Categories are display
// metadata; deleting one leaves expenses and budgets that reference it by
// name untouched.
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CategoryInput holds the input for creating a category
type CategoryInput struct {
	Name  string
	Color string
	Icon  *string
}

// CreateCategory creates a new category with validation
func (s *CategoryService) CreateCategory(input CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxCategoryNameLength {
		return nil, domain.ErrNameRequired
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		return nil, domain.ErrColorRequired
	}

	return s.categoryRepo.Create(&domain.Category{
		Name:  name,
		Color: color,
		Icon:  input.Icon,
	})
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]*domain.Category, error) {
	return s.categoryRepo.GetAll()
}

// DeleteCategory removes a category without cascading to expenses or budgets
func (s *CategoryService) DeleteCategory(id uuid.UUID) error {
	return s.categoryRepo.Delete(id)
}
