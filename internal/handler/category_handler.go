package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the create/update category request body
type CategoryRequest struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	FixedCost bool   `json:"fixedCost"`
}

// CreateCategory handles POST /api/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(service.CategoryInput{
		Name:      req.Name,
		Kind:      domain.CategoryKind(req.Kind),
		FixedCost: req.FixedCost,
	})
	if err != nil {
		if mapped := mapCategoryValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Msg("Failed to create category")
		return NewInternalError(c, "Failed to create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /api/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list categories")
		return NewInternalError(c, "Failed to list categories")
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /api/categories/:id
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.UpdateCategory(id, service.CategoryInput{
		Name:      req.Name,
		Kind:      domain.CategoryKind(req.Kind),
		FixedCost: req.FixedCost,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if mapped := mapCategoryValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to update category")
		return NewInternalError(c, "Failed to update category")
	}

	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid category ID", nil)
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return NewNotFoundError(c, "Category not found")
		}
		if errors.Is(err, domain.ErrCategoryInUse) {
			return NewConflictError(c, "Category is referenced by transactions, budgets or recurring rules")
		}
		log.Error().Err(err).Int64("category_id", id).Msg("Failed to delete category")
		return NewInternalError(c, "Failed to delete category")
	}

	return c.NoContent(http.StatusNoContent)
}

func mapCategoryValidation(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidKind):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "kind", Message: "Kind must be INCOME or EXPENSE"},
		})
	}
	return nil
}
