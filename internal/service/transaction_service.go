package service

import (
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionService handles ledger posting business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	categoryRepo domain.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

// TransactionInput holds the input for creating a transaction
type TransactionInput struct {
	Date       time.Time
	Amount     decimal.Decimal
	Type       domain.TransactionType
	AccountID  int64
	CategoryID *int64
	Notes      *string
}

// CreateTransaction validates and posts a ledger entry. Amounts keep the
// caller-supplied sign; transfers must not carry a category, everything else
// must.
func (s *TransactionService) CreateTransaction(input TransactionInput) (*domain.Transaction, error) {
	if input.Amount.IsZero() {
		return nil, domain.ErrZeroAmount
	}
	if !domain.ValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidType
	}
	if input.Date.IsZero() {
		return nil, domain.ErrDateRequired
	}

	if input.Type == domain.TransactionTypeTransfer {
		if input.CategoryID != nil {
			return nil, domain.ErrCategoryNotAllowed
		}
	} else if input.CategoryID == nil {
		return nil, domain.ErrCategoryRequired
	}

	if _, err := s.accountRepo.GetByID(input.AccountID); err != nil {
		return nil, domain.ErrAccountNotFound
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return nil, domain.ErrCategoryNotFound
		}
	}

	return s.transactionRepo.Create(&domain.Transaction{
		Date:       input.Date,
		Amount:     input.Amount,
		Type:       input.Type,
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
		Notes:      input.Notes,
	})
}

// ListTransactions retrieves transactions in the inclusive date range
func (s *TransactionService) ListTransactions(from, to time.Time) ([]*domain.Transaction, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}
	return s.transactionRepo.ListByDateRange(from, to)
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(id int64) (*domain.Transaction, error) {
	return s.transactionRepo.GetByID(id)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(id int64) error {
	return s.transactionRepo.Delete(id)
}
