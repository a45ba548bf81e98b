package service

import (
	"strings"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountService handles account business logic
type AccountService struct {
	accountRepo domain.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo domain.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// AccountInput holds the input for creating or updating an account
type AccountInput struct {
	Name           string
	Type           string
	InitialBalance decimal.Decimal
	Archived       bool
}

// CreateAccount creates a new account
func (s *AccountService) CreateAccount(input AccountInput) (*domain.Account, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Name:           name,
		Type:           strings.TrimSpace(input.Type),
		InitialBalance: input.InitialBalance,
		Archived:       input.Archived,
	}
	if account.Type == "" {
		account.Type = "checking"
	}
	return s.accountRepo.Create(account)
}

// ListAccounts retrieves accounts; archived ones only when asked for
func (s *AccountService) ListAccounts(includeArchived bool) ([]*domain.Account, error) {
	return s.accountRepo.List(includeArchived)
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(id int64) (*domain.Account, error) {
	return s.accountRepo.GetByID(id)
}

// UpdateAccount updates an account. Archiving happens here: accounts are
// never deleted, so the archived flag is the only way to retire one.
func (s *AccountService) UpdateAccount(id int64, input AccountInput) (*domain.Account, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Type = strings.TrimSpace(input.Type)
	existing.InitialBalance = input.InitialBalance
	existing.Archived = input.Archived
	if existing.Type == "" {
		existing.Type = "checking"
	}
	return s.accountRepo.Update(existing)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return "", domain.ErrNameTooLong
	}
	return name, nil
}
