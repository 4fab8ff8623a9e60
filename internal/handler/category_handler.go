package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/domain"
	"github.com/yagneshreddykoramoni/Expense-tracker-with-Budget-Management/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create category request body
type CategoryRequest struct {
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Icon      *string `json:"icon,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// CreateCategory godoc
// @Summary Create a category
// @Description Create a new display category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CategoryRequest true "Category creation request"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [post]
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CategoryInput{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required and must be 100 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrColorRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "color", Message: "Color is required"},
			})
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	log.Info().Str("category_id", category.ID.String()).Str("name", category.Name).Msg("Category created")
	return c.JSON(http.StatusCreated, toCategoryResponse(category))
}

// GetCategories godoc
// @Summary List categories
// @Description Get all categories
// @Tags categories
// @Produce json
// @Success 200 {array} CategoryResponse
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get categories")
		return NewInternalError(c, "Failed to get categories")
	}

	response := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		response[i] = toCategoryResponse(category)
	}
	return c.JSON(http.StatusOK, response)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Delete a category; expenses and budgets keep the name
// @Tags categories
// @Param id path string true "Category ID"
// @Success 204 "No Content"
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		log.Error().Err(err).Str("category_id", id.String()).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	log.Info().Str("category_id", id.String()).Msg("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

// Helper function to convert domain.Category to CategoryResponse
func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
	}
}
