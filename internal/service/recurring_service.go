package service

import (
	"sync"
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// RecurringService handles recurring rule business logic, including
// occurrence generation.
type RecurringService struct {
	ruleRepo        domain.RecurringRuleRepository
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository

	// Generation is serialized per rule id so a manual generate and the
	// auto-post sweep cannot both post the same occurrence.
	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

// NewRecurringService creates a new RecurringService
func NewRecurringService(
	ruleRepo domain.RecurringRuleRepository,
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	categoryRepo domain.CategoryRepository,
) *RecurringService {
	return &RecurringService{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		locks:           make(map[int64]*sync.Mutex),
	}
}

// RecurringRuleInput holds the input for creating or updating a rule
type RecurringRuleInput struct {
	AccountID  int64
	CategoryID *int64
	Amount     decimal.Decimal
	Direction  domain.RuleDirection
	Period     domain.RecurringPeriod
	StartDate  time.Time
	EndDate    *time.Time
	AutoPost   bool
	Note       *string
}

// CreateRule creates a new recurring rule
func (s *RecurringService) CreateRule(input RecurringRuleInput) (*domain.RecurringRule, error) {
	if err := s.validateRule(&input); err != nil {
		return nil, err
	}

	rule := &domain.RecurringRule{
		AccountID:  input.AccountID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount.Abs(),
		Direction:  input.Direction,
		Period:     input.Period,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		AutoPost:   input.AutoPost,
		Note:       input.Note,
	}
	return s.ruleRepo.Create(rule)
}

// ListRules retrieves all recurring rules
func (s *RecurringService) ListRules() ([]*domain.RecurringRule, error) {
	return s.ruleRepo.List()
}

// GetRule retrieves a recurring rule by ID
func (s *RecurringService) GetRule(id int64) (*domain.RecurringRule, error) {
	return s.ruleRepo.GetByID(id)
}

// UpdateRule updates an existing recurring rule
func (s *RecurringService) UpdateRule(id int64, input RecurringRuleInput) (*domain.RecurringRule, error) {
	if err := s.validateRule(&input); err != nil {
		return nil, err
	}

	existing, err := s.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.AccountID = input.AccountID
	existing.CategoryID = input.CategoryID
	existing.Amount = input.Amount.Abs()
	existing.Direction = input.Direction
	existing.Period = input.Period
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.AutoPost = input.AutoPost
	existing.Note = input.Note

	return s.ruleRepo.Update(existing)
}

// DeleteRule removes a recurring rule
func (s *RecurringService) DeleteRule(id int64) error {
	return s.ruleRepo.Delete(id)
}

// GenerateNext materializes the next due occurrence of a rule as a
// transaction, exactly once per computed date. The last posted date is
// derived from the rule's existing transactions, so repeated calls before
// the next due date are no-ops. With force set, the next occurrence is
// posted even when it is not yet due.
func (s *RecurringService) GenerateNext(ruleID int64, today time.Time, force bool) (*domain.Transaction, error) {
	rule, err := s.ruleRepo.GetByID(ruleID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockRule(ruleID)
	defer unlock()

	last, err := s.transactionRepo.LastDateForRule(ruleID)
	if err != nil {
		return nil, err
	}

	next, err := NextOccurrenceDate(rule, last)
	if err != nil {
		return nil, err
	}
	if !force && next.After(today) {
		return nil, domain.ErrRuleExhausted
	}

	occurrence := buildOccurrence(rule, next)
	created, ok, err := s.transactionRepo.CreateOccurrence(occurrence)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent writer got there first.
		return nil, domain.ErrRuleExhausted
	}
	return created, nil
}

// buildOccurrence turns a rule into the transaction for one occurrence date.
// Income rules post INCOME transactions; expense rules post FIXED_COST ones,
// since recurring expenses are by definition non-discretionary.
func buildOccurrence(rule *domain.RecurringRule, date time.Time) *domain.Transaction {
	amount := rule.Amount.Abs()
	txType := domain.TransactionTypeIncome
	if rule.Direction != domain.DirectionIncome {
		amount = amount.Neg()
		txType = domain.TransactionTypeFixedCost
	}

	ruleID := rule.ID
	return &domain.Transaction{
		Date:            date,
		Amount:          amount,
		Type:            txType,
		AccountID:       rule.AccountID,
		CategoryID:      rule.CategoryID,
		Notes:           rule.Note,
		RecurringRuleID: &ruleID,
	}
}

func (s *RecurringService) validateRule(input *RecurringRuleInput) error {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if input.Direction != domain.DirectionIncome && input.Direction != domain.DirectionExpense {
		return domain.ErrInvalidDirection
	}
	if !domain.ValidRecurringPeriod(input.Period) {
		return domain.ErrInvalidPeriod
	}
	if input.StartDate.IsZero() {
		return domain.ErrDateRequired
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return domain.ErrInvalidDateRange
	}

	if _, err := s.accountRepo.GetByID(input.AccountID); err != nil {
		return domain.ErrAccountNotFound
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*input.CategoryID); err != nil {
			return domain.ErrCategoryNotFound
		}
	}
	return nil
}

func (s *RecurringService) lockRule(ruleID int64) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[ruleID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[ruleID] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}
