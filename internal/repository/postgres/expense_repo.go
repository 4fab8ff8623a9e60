package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(pool *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{pool: pool}
}

const expenseColumns = `id, amount, category, description, date, receipt_path, created_at, updated_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e           domain.Expense
		amount      pgtype.Numeric
		receiptPath pgtype.Text
	)
	if err := row.Scan(&e.ID, &amount, &e.Category, &e.Description, &e.Date, &receiptPath, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Amount = pgNumericToDecimal(amount)
	e.ReceiptPath = pgTextToStringPtr(receiptPath)
	return &e, nil
}

// Create persists a new expense and returns it with store-assigned fields
func (r *ExpenseRepository) Create(expense *domain.Expense) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO expenses (amount, category, description, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+expenseColumns,
		amount, expense.Category, expense.Description, expense.Date)

	return scanExpense(row)
}

// GetByID retrieves an expense by its ID
func (r *ExpenseRepository) GetByID(id uuid.UUID) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, id)

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// GetAll retrieves all expenses sorted by date descending
func (r *ExpenseRepository) GetAll() ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

// GetRecent retrieves the most recent expenses by date
func (r *ExpenseRepository) GetRecent(limit int32) ([]*domain.Expense, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]*domain.Expense, error) {
	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// Update applies a full update to an expense
func (r *ExpenseRepository) Update(id uuid.UUID, data *domain.UpdateExpenseData) (*domain.Expense, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(data.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses
		SET amount = $2, category = $3, description = $4, date = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+expenseColumns,
		id, amount, data.Category, data.Description, data.Date)

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}

// Delete hard-deletes an expense
func (r *ExpenseRepository) Delete(id uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// SumAmountByCategory sums amounts over all expenses with the exact category
func (r *ExpenseRepository) SumAmountByCategory(category string) (decimal.Decimal, error) {
	ctx := context.Background()

	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE category = $1`, category).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(sum), nil
}

// SetReceiptPath attaches or clears the stored receipt object path
func (r *ExpenseRepository) SetReceiptPath(id uuid.UUID, path *string) (*domain.Expense, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE expenses SET receipt_path = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+expenseColumns,
		id, stringPtrToPgText(path))

	expense, err := scanExpense(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return expense, nil
}
