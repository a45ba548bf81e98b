package service

import (
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo   domain.BudgetRepository
	categoryRepo domain.CategoryRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgetRepo domain.BudgetRepository, categoryRepo domain.CategoryRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
	}
}

// BudgetInput holds the input for creating or updating a budget
type BudgetInput struct {
	CategoryID    int64
	Amount        decimal.Decimal
	Period        domain.BudgetPeriod
	EffectiveFrom time.Time
	EffectiveTo   *time.Time
}

// CreateBudget creates a new budget
func (s *BudgetService) CreateBudget(input BudgetInput) (*domain.Budget, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	return s.budgetRepo.Create(&domain.Budget{
		CategoryID:    input.CategoryID,
		Amount:        input.Amount.Abs(),
		Period:        input.Period,
		EffectiveFrom: input.EffectiveFrom,
		EffectiveTo:   input.EffectiveTo,
	})
}

// ListBudgets retrieves all budgets
func (s *BudgetService) ListBudgets() ([]*domain.Budget, error) {
	return s.budgetRepo.List()
}

// UpdateBudget updates an existing budget
func (s *BudgetService) UpdateBudget(id int64, input BudgetInput) (*domain.Budget, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	existing, err := s.budgetRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.CategoryID = input.CategoryID
	existing.Amount = input.Amount.Abs()
	existing.Period = input.Period
	existing.EffectiveFrom = input.EffectiveFrom
	existing.EffectiveTo = input.EffectiveTo
	return s.budgetRepo.Update(existing)
}

// DeleteBudget removes a budget
func (s *BudgetService) DeleteBudget(id int64) error {
	return s.budgetRepo.Delete(id)
}

func (s *BudgetService) validate(input *BudgetInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.Period == "" {
		input.Period = domain.BudgetPeriodMonthly
	}
	if input.Period != domain.BudgetPeriodMonthly {
		return domain.ErrInvalidPeriod
	}
	if input.EffectiveFrom.IsZero() {
		return domain.ErrDateRequired
	}
	if input.EffectiveTo != nil && input.EffectiveTo.Before(input.EffectiveFrom) {
		return domain.ErrInvalidDateRange
	}
	if _, err := s.categoryRepo.GetByID(input.CategoryID); err != nil {
		return domain.ErrCategoryNotFound
	}
	return nil
}
