package service

import (
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Monthly-equivalent factors for recurring-cost estimation. Weekly uses the
// average number of weeks per month; the result is an estimate, not an
// exact calendar computation.
var (
	dailyPerMonth  = decimal.NewFromInt(30)
	weeklyPerMonth = decimal.NewFromFloat(4.345)
	monthsPerYear  = decimal.NewFromInt(12)
)

// AnalyticsService computes read-side aggregates over the ledger. Every
// method is a pure function of the stored data and its explicit inputs; the
// settings value carries the fiscal month anchor so no ambient state is
// consulted.
type AnalyticsService struct {
	transactionRepo domain.TransactionRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
	budgetRepo      domain.BudgetRepository
	ruleRepo        domain.RecurringRuleRepository
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(
	transactionRepo domain.TransactionRepository,
	accountRepo domain.AccountRepository,
	categoryRepo domain.CategoryRepository,
	budgetRepo domain.BudgetRepository,
	ruleRepo domain.RecurringRuleRepository,
) *AnalyticsService {
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		budgetRepo:      budgetRepo,
		ruleRepo:        ruleRepo,
	}
}

// MonthSummary partitions the fiscal month's transactions into income,
// fixed costs, variable expenses and savings, and closes with the
// end-of-month balance across all accounts.
func (s *AnalyticsService) MonthSummary(year int, month time.Month, settings *domain.AppSettings) (*domain.MonthSummary, error) {
	start, end := util.MonthBounds(year, month, settings.FirstDayOfMonth)

	transactions, err := s.transactionRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	fixedByCategory, err := s.fixedCostCategories()
	if err != nil {
		return nil, err
	}

	totalIncome := decimal.Zero
	fixedCosts := decimal.Zero
	variableExpenses := decimal.Zero

	for _, tx := range transactions {
		switch tx.Type {
		case domain.TransactionTypeIncome:
			if tx.Amount.IsPositive() {
				totalIncome = totalIncome.Add(tx.Amount)
			}
		case domain.TransactionTypeFixedCost:
			fixedCosts = fixedCosts.Add(tx.Amount.Abs())
		case domain.TransactionTypeExpense, domain.TransactionTypeVariableExpense:
			// Spend on a fixed-cost category counts as fixed even when the
			// transaction itself was typed as a plain expense.
			if tx.CategoryID != nil && fixedByCategory[*tx.CategoryID] {
				fixedCosts = fixedCosts.Add(tx.Amount.Abs())
			} else {
				variableExpenses = variableExpenses.Add(tx.Amount.Abs())
			}
		}
	}

	savings := totalIncome.Sub(fixedCosts).Sub(variableExpenses)

	endBalance, err := s.balanceThrough(end)
	if err != nil {
		return nil, err
	}

	return &domain.MonthSummary{
		TotalIncome:       totalIncome,
		FixedCosts:        fixedCosts,
		VariableExpenses:  variableExpenses,
		Savings:           savings,
		EndOfMonthBalance: endBalance,
	}, nil
}

// CategoryBreakdown sums expense activity per category for the fiscal
// month. Categories with no activity are absent; ordering is left to the
// rendering layer.
func (s *AnalyticsService) CategoryBreakdown(year int, month time.Month, settings *domain.AppSettings) ([]*domain.CategoryAmount, error) {
	start, end := util.MonthBounds(year, month, settings.FirstDayOfMonth)

	transactions, err := s.transactionRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames()
	if err != nil {
		return nil, err
	}

	totals := make(map[int64]decimal.Decimal)
	for _, tx := range transactions {
		if tx.CategoryID == nil || !tx.Amount.IsNegative() {
			continue
		}
		// Stale category references are excluded rather than failing the
		// whole aggregate.
		if _, ok := names[*tx.CategoryID]; !ok {
			continue
		}
		totals[*tx.CategoryID] = totals[*tx.CategoryID].Add(tx.Amount.Abs())
	}

	breakdown := make([]*domain.CategoryAmount, 0, len(totals))
	for categoryID, amount := range totals {
		breakdown = append(breakdown, &domain.CategoryAmount{
			CategoryID:   categoryID,
			CategoryName: names[categoryID],
			Amount:       amount,
		})
	}
	return breakdown, nil
}

// NetWorthTrend samples the cumulative balance at monthly points across
// [from, to]. The running total is carried forward between points, so
// stretches without transactions come out flat instead of being re-derived.
func (s *AnalyticsService) NetWorthTrend(from, to time.Time) ([]*domain.NetWorthPoint, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}

	initial, err := s.accountRepo.SumInitialBalances()
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.ListThrough(to)
	if err != nil {
		return nil, err
	}

	var points []*domain.NetWorthPoint
	running := initial
	idx := 0

	sample := func(at time.Time) {
		for idx < len(transactions) && !transactions[idx].Date.After(at) {
			running = running.Add(transactions[idx].Amount)
			idx++
		}
		points = append(points, &domain.NetWorthPoint{Date: at, Value: running})
	}

	cursor := from
	for !cursor.After(to) {
		sample(cursor)
		cursor = util.AddMonthClamped(cursor)
	}
	if last := points[len(points)-1]; !last.Date.Equal(to) {
		sample(to)
	}
	return points, nil
}

// BudgetVsActual pairs each category's active budget for the month with its
// realized spend. Categories without an active budget are omitted; when
// budgets overlap, the one with the most recent effectiveFrom wins.
func (s *AnalyticsService) BudgetVsActual(year int, month time.Month, settings *domain.AppSettings) ([]*domain.BudgetVsActual, error) {
	start, end := util.MonthBounds(year, month, settings.FirstDayOfMonth)

	budgets, err := s.budgetRepo.List()
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames()
	if err != nil {
		return nil, err
	}

	active := make(map[int64]*domain.Budget)
	for _, budget := range budgets {
		if budget.Period != domain.BudgetPeriodMonthly || !budget.ActiveOn(start) {
			continue
		}
		if _, ok := names[budget.CategoryID]; !ok {
			continue
		}
		current, ok := active[budget.CategoryID]
		if !ok || budget.EffectiveFrom.After(current.EffectiveFrom) {
			active[budget.CategoryID] = budget
		}
	}
	if len(active) == 0 {
		return []*domain.BudgetVsActual{}, nil
	}

	transactions, err := s.transactionRepo.ListByDateRange(start, end)
	if err != nil {
		return nil, err
	}
	actuals := make(map[int64]decimal.Decimal)
	for _, tx := range transactions {
		if tx.CategoryID == nil || !tx.Amount.IsNegative() {
			continue
		}
		actuals[*tx.CategoryID] = actuals[*tx.CategoryID].Add(tx.Amount.Abs())
	}

	result := make([]*domain.BudgetVsActual, 0, len(active))
	for categoryID, budget := range active {
		result = append(result, &domain.BudgetVsActual{
			CategoryID:   categoryID,
			CategoryName: names[categoryID],
			BudgetAmount: budget.Amount,
			ActualAmount: actuals[categoryID],
		})
	}
	return result, nil
}

// RecurringCosts estimates the monthly total of active auto-post rules,
// normalizing each rule's amount to a monthly equivalent.
func (s *AnalyticsService) RecurringCosts(today time.Time) (*domain.RecurringCosts, error) {
	rules, err := s.ruleRepo.ListAutoPost()
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, rule := range rules {
		if rule.EndDate != nil && today.After(*rule.EndDate) {
			continue
		}
		amount := rule.Amount.Abs()
		switch rule.Period {
		case domain.PeriodDaily:
			total = total.Add(amount.Mul(dailyPerMonth))
		case domain.PeriodWeekly:
			total = total.Add(amount.Mul(weeklyPerMonth))
		case domain.PeriodMonthly:
			total = total.Add(amount)
		case domain.PeriodYearly:
			total = total.Add(amount.Div(monthsPerYear))
		}
	}
	return &domain.RecurringCosts{MonthlyTotal: total}, nil
}

func (s *AnalyticsService) balanceThrough(date time.Time) (decimal.Decimal, error) {
	initial, err := s.accountRepo.SumInitialBalances()
	if err != nil {
		return decimal.Zero, err
	}
	movements, err := s.transactionRepo.SumAmountsThrough(date)
	if err != nil {
		return decimal.Zero, err
	}
	return initial.Add(movements), nil
}

func (s *AnalyticsService) fixedCostCategories() (map[int64]bool, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	fixed := make(map[int64]bool, len(categories))
	for _, category := range categories {
		if category.FixedCost {
			fixed[category.ID] = true
		}
	}
	return fixed, nil
}

func (s *AnalyticsService) categoryNames() (map[int64]string, error) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}
	return names, nil
}
