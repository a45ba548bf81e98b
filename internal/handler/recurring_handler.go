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

// RecurringHandler handles recurring rule HTTP requests
type RecurringHandler struct {
	recurringService *service.RecurringService
}

// NewRecurringHandler creates a new RecurringHandler
func NewRecurringHandler(recurringService *service.RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringService: recurringService}
}

// RecurringRuleRequest represents the create/update rule request body
type RecurringRuleRequest struct {
	AccountID  int64           `json:"accountId"`
	CategoryID *int64          `json:"categoryId"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  string          `json:"direction"`
	Period     string          `json:"period"`
	StartDate  string          `json:"startDate"`
	EndDate    *string         `json:"endDate"`
	AutoPost   bool            `json:"autoPost"`
	Note       *string         `json:"note"`
}

// RecurringRuleResponse represents a rule in API responses
type RecurringRuleResponse struct {
	ID         int64           `json:"id"`
	AccountID  int64           `json:"accountId"`
	CategoryID *int64          `json:"categoryId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  string          `json:"direction"`
	Period     string          `json:"period"`
	StartDate  string          `json:"startDate"`
	EndDate    *string         `json:"endDate,omitempty"`
	AutoPost   bool            `json:"autoPost"`
	Note       *string         `json:"note,omitempty"`
}

func toRuleResponse(rule *domain.RecurringRule) RecurringRuleResponse {
	resp := RecurringRuleResponse{
		ID:         rule.ID,
		AccountID:  rule.AccountID,
		CategoryID: rule.CategoryID,
		Amount:     rule.Amount,
		Direction:  string(rule.Direction),
		Period:     string(rule.Period),
		StartDate:  util.FormatDate(rule.StartDate),
		AutoPost:   rule.AutoPost,
		Note:       rule.Note,
	}
	if rule.EndDate != nil {
		end := util.FormatDate(*rule.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func (h *RecurringHandler) bindRuleInput(c echo.Context) (*service.RecurringRuleInput, error) {
	var req RecurringRuleRequest
	if err := c.Bind(&req); err != nil {
		return nil, NewValidationError(c, "Invalid request body", nil)
	}

	input := &service.RecurringRuleInput{
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Direction:  domain.RuleDirection(req.Direction),
		Period:     domain.RecurringPeriod(req.Period),
		AutoPost:   req.AutoPost,
		Note:       req.Note,
	}
	if req.StartDate != "" {
		start, err := util.ParseDate(req.StartDate)
		if err != nil {
			return nil, NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "startDate", Message: "Start date must be in YYYY-MM-DD format"},
			})
		}
		input.StartDate = start
	}
	if req.EndDate != nil {
		end, err := util.ParseDate(*req.EndDate)
		if err != nil {
			return nil, NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "endDate", Message: "End date must be in YYYY-MM-DD format"},
			})
		}
		input.EndDate = &end
	}
	return input, nil
}

// CreateRule handles POST /api/recurring-rules
func (h *RecurringHandler) CreateRule(c echo.Context) error {
	input, errResp := h.bindRuleInput(c)
	if errResp != nil {
		return errResp
	}

	rule, err := h.recurringService.CreateRule(*input)
	if err != nil {
		if mapped := mapRuleValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Msg("Failed to create recurring rule")
		return NewInternalError(c, "Failed to create recurring rule")
	}

	log.Info().Int64("rule_id", rule.ID).Str("period", string(rule.Period)).Msg("Recurring rule created")

	return c.JSON(http.StatusCreated, toRuleResponse(rule))
}

// GetRules handles GET /api/recurring-rules
func (h *RecurringHandler) GetRules(c echo.Context) error {
	rules, err := h.recurringService.ListRules()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recurring rules")
		return NewInternalError(c, "Failed to list recurring rules")
	}

	response := make([]RecurringRuleResponse, len(rules))
	for i, rule := range rules {
		response[i] = toRuleResponse(rule)
	}
	return c.JSON(http.StatusOK, response)
}

// GetRule handles GET /api/recurring-rules/:id
func (h *RecurringHandler) GetRule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	rule, err := h.recurringService.GetRule(id)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Recurring rule not found")
		}
		log.Error().Err(err).Int64("rule_id", id).Msg("Failed to get recurring rule")
		return NewInternalError(c, "Failed to get recurring rule")
	}

	return c.JSON(http.StatusOK, toRuleResponse(rule))
}

// UpdateRule handles PUT /api/recurring-rules/:id
func (h *RecurringHandler) UpdateRule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	input, errResp := h.bindRuleInput(c)
	if errResp != nil {
		return errResp
	}

	rule, err := h.recurringService.UpdateRule(id, *input)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Recurring rule not found")
		}
		if mapped := mapRuleValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Int64("rule_id", id).Msg("Failed to update recurring rule")
		return NewInternalError(c, "Failed to update recurring rule")
	}

	return c.JSON(http.StatusOK, toRuleResponse(rule))
}

// DeleteRule handles DELETE /api/recurring-rules/:id
func (h *RecurringHandler) DeleteRule(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	if err := h.recurringService.DeleteRule(id); err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Recurring rule not found")
		}
		log.Error().Err(err).Int64("rule_id", id).Msg("Failed to delete recurring rule")
		return NewInternalError(c, "Failed to delete recurring rule")
	}

	return c.NoContent(http.StatusNoContent)
}

// GenerateNext handles POST /api/recurring-rules/:id/generate-next.
// Responds 204 whether an occurrence was posted or the rule had nothing due;
// the caller re-reads the ledger either way.
func (h *RecurringHandler) GenerateNext(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid rule ID", nil)
	}

	force := c.QueryParam("force") == "true"

	tx, err := h.recurringService.GenerateNext(id, util.Today(), force)
	if err != nil {
		if errors.Is(err, domain.ErrRuleNotFound) {
			return NewNotFoundError(c, "Recurring rule not found")
		}
		if errors.Is(err, domain.ErrRuleExhausted) {
			return c.NoContent(http.StatusNoContent)
		}
		log.Error().Err(err).Int64("rule_id", id).Msg("Failed to generate occurrence")
		return NewInternalError(c, "Failed to generate occurrence")
	}

	log.Info().Int64("rule_id", id).Int64("transaction_id", tx.ID).Str("date", util.FormatDate(tx.Date)).Msg("Occurrence posted")

	return c.NoContent(http.StatusNoContent)
}

func mapRuleValidation(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	case errors.Is(err, domain.ErrInvalidDirection):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "direction", Message: "Direction must be INCOME or EXPENSE"},
		})
	case errors.Is(err, domain.ErrInvalidPeriod):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "period", Message: "Period must be DAILY, WEEKLY, MONTHLY or YEARLY"},
		})
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "startDate", Message: "Start date is required"},
		})
	case errors.Is(err, domain.ErrInvalidDateRange):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "endDate", Message: "End date must not be before start date"},
		})
	case errors.Is(err, domain.ErrAccountNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "accountId", Message: "Account does not exist"},
		})
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category does not exist"},
		})
	}
	return nil
}
