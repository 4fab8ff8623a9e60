package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
)

// ActivityService maintains the trailing-window activity log: every expense
// mutation appends a row, and only the most recent rows are retained.
type ActivityService struct {
	activityRepo domain.ActivityRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(activityRepo domain.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// Log appends an activity row snapshotting the expense, then trims the log
// to the retention bound. A trim failure does not fail the insert; the next
// insert trims again.
func (s *ActivityService) Log(expense *domain.Expense, activityType domain.ActivityType) (*domain.Activity, error) {
	created, err := s.activityRepo.Create(&domain.Activity{
		ExpenseID:   expense.ID,
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      expense.Amount,
		Date:        time.Now().UTC(),
		Type:        activityType,
	})
	if err != nil {
		return nil, err
	}

	if err := s.trim(); err != nil {
		log.Warn().
			Err(err).
			Str("activity_id", created.ID.String()).
			Msg("Failed to trim activity log")
	}

	return created, nil
}

// trim deletes rows strictly older than the Nth-newest row's created_at.
// On timestamp collision the strict comparison deletes fewer rows than the
// bound implies, which can never remove a just-inserted row.
func (s *ActivityService) trim() error {
	count, err := s.activityRepo.Count()
	if err != nil {
		return err
	}
	if count <= domain.MaxRecentActivities {
		return nil
	}

	cutoff, err := s.activityRepo.NthNewestCreatedAt(domain.MaxRecentActivities)
	if err != nil {
		return err
	}

	_, err = s.activityRepo.DeleteOlderThan(cutoff)
	return err
}

// GetRecent returns the retained activities, newest first
func (s *ActivityService) GetRecent() ([]*domain.Activity, error) {
	return s.activityRepo.GetRecent(domain.MaxRecentActivities)
}
