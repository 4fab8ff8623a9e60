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

func sampleExpense(description string) *domain.Expense {
	return &domain.Expense{
		ID:          uuid.New(),
		Amount:      decimal.NewFromInt(10),
		Category:    "Food",
		Description: description,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestLog_SnapshotsExpense(t *testing.T) {
	activityRepo := testutil.NewMockActivityRepository()
	activityService := NewActivityService(activityRepo)

	expense := sampleExpense("Lunch")
	activity, err := activityService.Log(expense, domain.ActivityTypeAdd)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if activity.ExpenseID != expense.ID {
		t.Errorf("Expected expense ID %s, got %s", expense.ID, activity.ExpenseID)
	}
	if activity.Description != "Lunch" {
		t.Errorf("Expected description 'Lunch', got %s", activity.Description)
	}
	if activity.Category != "Food" {
		t.Errorf("Expected category 'Food', got %s", activity.Category)
	}
	if !activity.Amount.Equal(expense.Amount) {
		t.Errorf("Expected amount %s, got %s", expense.Amount, activity.Amount)
	}
	if activity.Type != domain.ActivityTypeAdd {
		t.Errorf("Expected type 'add', got %s", activity.Type)
	}
}

func TestLog_RetentionBound(t *testing.T) {
	activityRepo := testutil.NewMockActivityRepository()
	activityService := NewActivityService(activityRepo)

	for i := 0; i < 12; i++ {
		if _, err := activityService.Log(sampleExpense("Entry"), domain.ActivityTypeAdd); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		count, _ := activityRepo.Count()
		if count > domain.MaxRecentActivities {
			t.Fatalf("Retention bound exceeded after insert %d: %d rows", i+1, count)
		}
	}

	count, _ := activityRepo.Count()
	if count != domain.MaxRecentActivities {
		t.Errorf("Expected %d retained rows, got %d", domain.MaxRecentActivities, count)
	}
}

func TestLog_TrimKeepsNewest(t *testing.T) {
	activityRepo := testutil.NewMockActivityRepository()
	activityService := NewActivityService(activityRepo)

	descriptions := []string{"one", "two", "three", "four", "five", "six", "seven"}
	for _, description := range descriptions {
		if _, err := activityService.Log(sampleExpense(description), domain.ActivityTypeAdd); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	recent, err := activityService.GetRecent()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(recent) != domain.MaxRecentActivities {
		t.Fatalf("Expected %d entries, got %d", domain.MaxRecentActivities, len(recent))
	}

	// Newest first: seven, six, five, four, three
	expected := []string{"seven", "six", "five", "four", "three"}
	for i, want := range expected {
		if recent[i].Description != want {
			t.Errorf("Position %d: expected %q, got %q", i, want, recent[i].Description)
		}
	}
}

func TestLog_TrimTieIsConservative(t *testing.T) {
	activityRepo := testutil.NewMockActivityRepository()
	activityService := NewActivityService(activityRepo)

	// Seed six rows where the rows at the retention boundary share a
	// timestamp. The strict cutoff comparison must keep both rather than
	// over-delete.
	base := time.Unix(1600000000, 0)
	seed := func(createdAt time.Time) {
		activityRepo.Activities = append(activityRepo.Activities, &domain.Activity{
			ID:          uuid.New(),
			ExpenseID:   uuid.New(),
			Description: "seeded",
			Category:    "Food",
			Amount:      decimal.NewFromInt(1),
			Type:        domain.ActivityTypeAdd,
			CreatedAt:   createdAt,
		})
	}
	seed(base.Add(5 * time.Second))
	seed(base.Add(4 * time.Second))
	seed(base.Add(3 * time.Second))
	seed(base.Add(2 * time.Second)) // tied pair
	seed(base.Add(2 * time.Second))
	seed(base.Add(1 * time.Second))

	if _, err := activityService.Log(sampleExpense("new"), domain.ActivityTypeAdd); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	count, _ := activityRepo.Count()
	// 7 rows, the cutoff lands on one of the tied pair: only rows strictly
	// older are deleted, so the tied sibling survives
	if count != 6 {
		t.Errorf("Expected 6 rows after conservative trim, got %d", count)
	}
}

func TestLog_CreateFailurePropagates(t *testing.T) {
	activityRepo := testutil.NewMockActivityRepository()
	activityService := NewActivityService(activityRepo)

	activityRepo.CreateFn = func(activity *domain.Activity) (*domain.Activity, error) {
		return nil, errActivityProbe
	}

	if _, err := activityService.Log(sampleExpense("Entry"), domain.ActivityTypeAdd); !errors.Is(err, errActivityProbe) {
		t.Errorf("Expected errActivityProbe, got %v", err)
	}
}

var errActivityProbe = errors.New("probe")
