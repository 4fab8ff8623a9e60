package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, color, icon, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		c    domain.Category
		icon pgtype.Text
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Icon = pgTextToStringPtr(icon)
	return &c, nil
}

// Create persists a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, color, icon)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		category.Name, category.Color, stringPtrToPgText(category.Icon))

	return scanCategory(row)
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(id uuid.UUID) (*domain.Category, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// GetAll retrieves all categories
func (r *CategoryRepository) GetAll() ([]*domain.Category, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Delete hard-deletes a category. Expenses and budgets referencing the
// category by name are left untouched.
func (r *CategoryRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
