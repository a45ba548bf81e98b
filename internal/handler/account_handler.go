package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// AccountRequest represents the create/update account request body
type AccountRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Archived       bool            `json:"archived"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Archived       bool            `json:"archived"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:             account.ID,
		Name:           account.Name,
		Type:           account.Type,
		InitialBalance: account.InitialBalance,
		Archived:       account.Archived,
	}
}

// CreateAccount handles POST /api/accounts
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.CreateAccount(service.AccountInput{
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		Archived:       req.Archived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to create account")
		return NewInternalError(c, "Failed to create account")
	}

	log.Info().Int64("account_id", account.ID).Str("name", account.Name).Msg("Account created")

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// GetAccounts handles GET /api/accounts
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	includeArchived := c.QueryParam("includeArchived") == "true"

	accounts, err := h.accountService.ListAccounts(includeArchived)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list accounts")
		return NewInternalError(c, "Failed to list accounts")
	}

	response := make([]AccountResponse, len(accounts))
	for i, account := range accounts {
		response[i] = toAccountResponse(account)
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateAccount handles PUT /api/accounts/:id
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid account ID", nil)
	}

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	account, err := h.accountService.UpdateAccount(id, service.AccountInput{
		Name:           req.Name,
		Type:           req.Type,
		InitialBalance: req.InitialBalance,
		Archived:       req.Archived,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return NewNotFoundError(c, "Account not found")
		}
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name is required"},
			})
		}
		if errors.Is(err, domain.ErrNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "name", Message: "Name must be 255 characters or less"},
			})
		}
		log.Error().Err(err).Int64("account_id", id).Msg("Failed to update account")
		return NewInternalError(c, "Failed to update account")
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}
