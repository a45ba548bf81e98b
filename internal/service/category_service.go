package service

import (
	"github.com/rooty/finance/finance-backend/internal/domain"
)

// CategoryService handles category business logic, including the deletion
// guard against dangling references.
type CategoryService struct {
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	budgetRepo      domain.BudgetRepository
	ruleRepo        domain.RecurringRuleRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(
	categoryRepo domain.CategoryRepository,
	transactionRepo domain.TransactionRepository,
	budgetRepo domain.BudgetRepository,
	ruleRepo domain.RecurringRuleRepository,
) *CategoryService {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		ruleRepo:        ruleRepo,
	}
}

// CategoryInput holds the input for creating or updating a category
type CategoryInput struct {
	Name      string
	Kind      domain.CategoryKind
	FixedCost bool
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(input CategoryInput) (*domain.Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Kind != domain.CategoryKindIncome && input.Kind != domain.CategoryKindExpense {
		return nil, domain.ErrInvalidKind
	}

	return s.categoryRepo.Create(&domain.Category{
		Name:      name,
		Kind:      input.Kind,
		FixedCost: input.FixedCost,
	})
}

// ListCategories retrieves all categories
func (s *CategoryService) ListCategories() ([]*domain.Category, error) {
	return s.categoryRepo.List()
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(id int64, input CategoryInput) (*domain.Category, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Kind != domain.CategoryKindIncome && input.Kind != domain.CategoryKindExpense {
		return nil, domain.ErrInvalidKind
	}

	existing, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	existing.Kind = input.Kind
	existing.FixedCost = input.FixedCost
	return s.categoryRepo.Update(existing)
}

// DeleteCategory removes a category unless a transaction, budget or
// recurring rule still references it, in which case ErrCategoryInUse is
// returned and nothing is deleted.
func (s *CategoryService) DeleteCategory(id int64) error {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		return err
	}

	transactions, err := s.transactionRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	budgets, err := s.budgetRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	rules, err := s.ruleRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if transactions > 0 || budgets > 0 || rules > 0 {
		return domain.ErrCategoryInUse
	}

	return s.categoryRepo.Delete(id)
}
