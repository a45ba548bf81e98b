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

// TransactionHandler handles ledger HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// TransactionRequest represents the create transaction request body
type TransactionRequest struct {
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
	AccountID  int64           `json:"accountId"`
	CategoryID *int64          `json:"categoryId"`
	Notes      *string         `json:"notes"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              int64           `json:"id"`
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	AccountID       int64           `json:"accountId"`
	CategoryID      *int64          `json:"categoryId,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	RecurringRuleID *int64          `json:"recurringRuleId,omitempty"`
}

func toTransactionResponse(tx *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:              tx.ID,
		Date:            util.FormatDate(tx.Date),
		Amount:          tx.Amount,
		Type:            string(tx.Type),
		AccountID:       tx.AccountID,
		CategoryID:      tx.CategoryID,
		Notes:           tx.Notes,
		RecurringRuleID: tx.RecurringRuleID,
	}
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.TransactionInput{
		Amount:     req.Amount,
		Type:       domain.TransactionType(req.Type),
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Notes:      req.Notes,
	}
	if req.Date != "" {
		date, err := util.ParseDate(req.Date)
		if err != nil {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "date", Message: "Date must be in YYYY-MM-DD format"},
			})
		}
		input.Date = date
	}

	tx, err := h.transactionService.CreateTransaction(input)
	if err != nil {
		if mapped := mapTransactionValidation(c, err); mapped != nil {
			return mapped
		}
		log.Error().Err(err).Msg("Failed to create transaction")
		return NewInternalError(c, "Failed to create transaction")
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// GetTransactions handles GET /api/transactions?from=&to=
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	from, err := util.ParseDate(c.QueryParam("from"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "from", Message: "From date must be in YYYY-MM-DD format"},
		})
	}
	to, err := util.ParseDate(c.QueryParam("to"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "to", Message: "To date must be in YYYY-MM-DD format"},
		})
	}

	transactions, err := h.transactionService.ListTransactions(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "From date must not be after to date", nil)
		}
		log.Error().Err(err).Msg("Failed to list transactions")
		return NewInternalError(c, "Failed to list transactions")
	}

	response := make([]TransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = toTransactionResponse(tx)
	}
	return c.JSON(http.StatusOK, response)
}

// GetTransaction handles GET /api/transactions/:id
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	tx, err := h.transactionService.GetTransaction(id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to get transaction")
		return NewInternalError(c, "Failed to get transaction")
	}

	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// DeleteTransaction handles DELETE /api/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NewValidationError(c, "Invalid transaction ID", nil)
	}

	if err := h.transactionService.DeleteTransaction(id); err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return NewNotFoundError(c, "Transaction not found")
		}
		log.Error().Err(err).Int64("transaction_id", id).Msg("Failed to delete transaction")
		return NewInternalError(c, "Failed to delete transaction")
	}

	return c.NoContent(http.StatusNoContent)
}

func mapTransactionValidation(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrZeroAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "amount", Message: "Amount must not be zero"},
		})
	case errors.Is(err, domain.ErrInvalidType):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "type", Message: "Unknown transaction type"},
		})
	case errors.Is(err, domain.ErrDateRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "date", Message: "Date is required"},
		})
	case errors.Is(err, domain.ErrCategoryRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Category is required for non-transfer transactions"},
		})
	case errors.Is(err, domain.ErrCategoryNotAllowed):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "categoryId", Message: "Transfers must not carry a category"},
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
