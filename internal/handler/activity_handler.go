package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
)

// ActivityHandler handles activity feed HTTP requests
type ActivityHandler struct {
	activityService *service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ActivityResponse represents an activity entry in API responses
type ActivityResponse struct {
	ID          string `json:"id"`
	ExpenseID   string `json:"expenseId"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	CreatedAt   string `json:"createdAt"`
}

// GetRecentActivities godoc
// @Summary List recent activities
// @Description Get the retained activity entries, newest first
// @Tags activities
// @Produce json
// @Success 200 {array} ActivityResponse
// @Router /recent-activities [get]
func (h *ActivityHandler) GetRecentActivities(c echo.Context) error {
	activities, err := h.activityService.GetRecent()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get recent activities")
		return NewInternalError(c, "Failed to get recent activities")
	}

	response := make([]ActivityResponse, len(activities))
	for i, activity := range activities {
		response[i] = toActivityResponse(activity)
	}
	return c.JSON(http.StatusOK, response)
}

// Helper function to convert domain.Activity to ActivityResponse
func toActivityResponse(activity *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          activity.ID.String(),
		ExpenseID:   activity.ExpenseID.String(),
		Description: activity.Description,
		Category:    activity.Category,
		Amount:      activity.Amount.StringFixed(2),
		Date:        activity.Date.Format(time.RFC3339),
		Type:        string(activity.Type),
		CreatedAt:   activity.CreatedAt.Format(time.RFC3339),
	}
}
