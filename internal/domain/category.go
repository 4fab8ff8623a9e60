package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category is display metadata only. Expenses and budgets reference it by
// name, not by id, and deleting a category does not cascade.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      *string   `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id uuid.UUID) (*Category, error)
	GetAll() ([]*Category, error)
	Delete(id uuid.UUID) error
}
