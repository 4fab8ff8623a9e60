package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// ActivityRepository implements domain.ActivityRepository using PostgreSQL
type ActivityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

const activityColumns = `id, expense_id, description, category, amount, date, type, created_at`

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var (
		a      domain.Activity
		amount pgtype.Numeric
	)
	if err := row.Scan(&a.ID, &a.ExpenseID, &a.Description, &a.Category, &amount, &a.Date, &a.Type, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Amount = pgNumericToDecimal(amount)
	return &a, nil
}

// Create inserts a new activity row
func (r *ActivityRepository) Create(activity *domain.Activity) (*domain.Activity, error) {
	ctx := context.Background()

	amount, err := decimalToPgNumeric(activity.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO recent_activities (expense_id, description, category, amount, date, type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+activityColumns,
		activity.ExpenseID, activity.Description, activity.Category, amount, activity.Date, string(activity.Type))

	return scanActivity(row)
}

// GetRecent retrieves the newest activities, newest first
func (r *ActivityRepository) GetRecent(limit int32) ([]*domain.Activity, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT `+activityColumns+` FROM recent_activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]*domain.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// Count returns the total number of activity rows
func (r *ActivityRepository) Count() (int64, error) {
	ctx := context.Background()

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recent_activities`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// NthNewestCreatedAt returns the created_at of the nth newest row (1-based)
func (r *ActivityRepository) NthNewestCreatedAt(n int32) (time.Time, error) {
	ctx := context.Background()

	var createdAt time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT created_at FROM recent_activities ORDER BY created_at DESC OFFSET $1 LIMIT 1`, n-1).Scan(&createdAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return time.Time{}, domain.ErrActivityNotFound
		}
		return time.Time{}, err
	}
	return createdAt, nil
}

// DeleteOlderThan removes rows with created_at strictly before the cutoff
func (r *ActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM recent_activities WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
