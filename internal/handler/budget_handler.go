package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update budget request body
type BudgetRequest struct {
	CategoryID    int64           `json:"categoryId"`
	Amount        decimal.Decimal `json:"amount"`
	Period        string          `json:"period"`
	EffectiveFrom string          `json:"effectiveFrom"`
	EffectiveTo   *string         `json:"effectiveTo"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID            int64           `json:"id"`
	CategoryID    int64           `json:"categoryId"`
	Amount        decimal.Decimal `json:"amount"`
	Period        string          `json:"period"`
	EffectiveFrom string          `json:"effectiveFrom"`
	EffectiveTo   *string         `json:"effectiveTo,omitempty"`
}

func toBudgetResponse(budget *domain.Budget) BudgetResponse {
	resp := BudgetResponse{
		ID:            budget.ID,
		CategoryID:    budget.CategoryID,
		Amount:        budget.Amount,
		Period:        string(budget.Period),
		EffectiveFrom: util.FormatDate(budget.EffectiveFrom),
	}
	if budget.EffectiveTo != nil {
		to := util.FormatDate(*budget.EffectiveTo)
		resp.EffectiveTo = &to
	}
	return resp
}

func (h *BudgetHandler) bindBudgetInput(c echo.Context) (*service.BudgetInput, error) {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	input := &service.BudgetInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     domain.BudgetPeriod(req.Period),
	}
	if req.EffectiveFrom != "" {
		from, err := util.ParseDate(req.EffectiveFrom)
		if err != nil {
			return nil, NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "effectiveFrom", Message: "Effective-from date must be in YYYY-MM-DD format"},
			})
		}
		input.EffectiveFrom = from
	}
	if req.EffectiveTo != nil {
		to, err := util.ParseDate(*req.EffectiveTo)
		if err != nil {
			return nil, NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "effectiveTo", Message: "Effective-to date must be in YYYY-MM-DD format"},
			})
		}
		input.EffectiveTo = &to
	}
	return input, nil
}

// CreateBudget handles POST /api/budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	input, errResp := h.bindBudgetInput(c)
	if errResp != nil {
		return errResp
	}

	budget, err := h.budgetService.CreateBudget(*input)
	if err != nil {
		if mapped := mapBudgetValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Msg("Failed to create budget")
		return NewInternalError(c, "Failed to create budget")
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /api/budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets, err := h.budgetService.ListBudgets()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list budgets")
		return NewInternalError(c, "Failed to list budgets")
	}

	response := make([]BudgetResponse, len(budgets))
	for i, budget := range budgets {
		response[i] = toBudgetResponse(budget)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateBudget handles PUT /api/budgets/:id
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	input, errResp := h.bindBudgetInput(c)
	if errResp != nil {
		return errResp
	}

	budget, err := h.budgetService.UpdateBudget(id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		if mapped := mapBudgetValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Int64("budget_id", id).Msg("Failed to update budget")
		return NewInternalError(c, "Failed to update budget")
	}

	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /api/budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid budget ID", nil)
	}

	if err := h.budgetService.DeleteBudget(id); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return NewNotFoundError(c, "Budget not found")
		}
		log.Error().Err(err).Int64("budget_id", id).Msg("Failed to delete budget")
		return NewInternalError(c, "Failed to delete budget")
	}

	return c.NoContent(http.StatusNoContent)
}

func mapBudgetValidation(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "period", Message: "Only MONTHLY budgets are supported"},
		})
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "effectiveFrom", Message: "Effective-from date is required"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "effectiveTo", Message: "Effective-to must not be before effective-from"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category does not exist"},
		})
	}
	return nil
}
