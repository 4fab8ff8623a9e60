package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// uniqueViolation is the Postgres error code raised when the budgets
// category uniqueness constraint is hit
const uniqueViolation = "23505"

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, category, amount, spent, timeframe, created_at, updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		b      domain.Budget
		amount pgtype.Numeric
		spent  pgtype.Numeric
	)
	if err := row.Scan(&b.ID, &b.Category, &amount, &spent, &b.Timeframe, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.Amount = pgNumericToDecimal(amount)
	b.Spent = pgNumericToDecimal(spent)
	return &b, nil
}

// Create persists a new budget; exactly one budget may exist per category
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO budgets (category, amount, timeframe)
		VALUES ($1, $2, $3)
		RETURNING `+budgetColumns,
		budget.Category, amount, string(budget.Timeframe))

	created, err := scanBudget(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrBudgetCategoryExists
		}
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a budget by its ID
func (r *BudgetRepository) GetByID(id uuid.UUID) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetByCategory retrieves the budget matching the exact category string
func (r *BudgetRepository) GetByCategory(category string) (*domain.Budget, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE category = $1`, category)

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// GetAll retrieves all budgets
func (r *BudgetRepository) GetAll() ([]*domain.Budget, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := make([]*domain.Budget, 0)
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update applies a full update to a budget
func (r *BudgetRepository) Update(id uuid.UUID, data *domain.UpdateBudgetData) (*domain.Budget, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE budgets
		SET category = $2, amount = $3, timeframe = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+budgetColumns,
		id, data.Category, amount, string(data.Timeframe))

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrBudgetCategoryExists
		}
		return nil, err
	}
	return budget, nil
}

// UpdateSpent overwrites the denormalized spent total for a category.
// Returns ErrBudgetNotFound when no budget exists for the category.
func (r *BudgetRepository) UpdateSpent(category string, spent decimal.Decimal) error {
	ctx := context.Background()

	num, err := decimalToPgNumeric(spent)
	if err != nil {
		return fmt.Errorf("invalid spent total: %w", err)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE budgets SET spent = $2, updated_at = now() WHERE category = $1`,
		category, num)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// Delete hard-deletes a budget
func (r *BudgetRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}
