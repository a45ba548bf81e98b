package service

import (
	"testing"
	"time"

	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/testutil"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type analyticsFixture struct {
	service         *AnalyticsService
	transactionRepo *testutil.MockTransactionRepository
	accountRepo     *testutil.MockAccountRepository
	categoryRepo    *testutil.MockCategoryRepository
	budgetRepo      *testutil.MockBudgetRepository
	ruleRepo        *testutil.MockRecurringRuleRepository
}

func setupAnalyticsTest() *analyticsFixture {
	f := &analyticsFixture{
		transactionRepo: testutil.NewMockTransactionRepository(),
		accountRepo:     testutil.NewMockAccountRepository(),
		categoryRepo:    testutil.NewMockCategoryRepository(),
		budgetRepo:      testutil.NewMockBudgetRepository(),
		ruleRepo:        testutil.NewMockRecurringRuleRepository(),
	}
	f.service = NewAnalyticsService(f.transactionRepo, f.accountRepo, f.categoryRepo, f.budgetRepo, f.ruleRepo)
	return f
}

func (f *analyticsFixture) addTransaction(id int64, date time.Time, amount float64, txType domain.TransactionType, categoryID *int64) {
	f.transactionRepo.AddTransaction(&domain.Transaction{
		ID:         id,
		Date:       date,
		Amount:     decimal.NewFromFloat(amount),
		Type:       txType,
		AccountID:  1,
		CategoryID: categoryID,
	})
}

func int64Ptr(v int64) *int64 { return &v }

func TestMonthSummary_PartitionsIncomeAndExpenses(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Rent", Kind: domain.CategoryKindExpense, FixedCost: true})

	f.addTransaction(1, util.Date(2024, time.March, 5), 2000, domain.TransactionTypeIncome, nil)
	f.addTransaction(2, util.Date(2024, time.March, 10), -500, domain.TransactionTypeExpense, int64Ptr(1))

	summary, err := f.service.MonthSummary(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)

	// The expense lands on a fixed-cost category, so it counts as fixed even
	// though it was entered as a plain expense.
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(2000)), "income: %s", summary.TotalIncome)
	assert.True(t, summary.FixedCosts.Equal(decimal.NewFromInt(500)), "fixed: %s", summary.FixedCosts)
	assert.True(t, summary.VariableExpenses.IsZero(), "variable: %s", summary.VariableExpenses)
	assert.True(t, summary.Savings.Equal(decimal.NewFromInt(1500)), "savings: %s", summary.Savings)
}

func TestMonthSummary_IgnoresTransfersAndOtherMonths(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})

	f.addTransaction(1, util.Date(2024, time.March, 5), 3000, domain.TransactionTypeIncome, nil)
	f.addTransaction(2, util.Date(2024, time.March, 12), -120, domain.TransactionTypeVariableExpense, int64Ptr(1))
	f.addTransaction(3, util.Date(2024, time.March, 15), -400, domain.TransactionTypeTransfer, nil)
	f.addTransaction(4, util.Date(2024, time.April, 1), -999, domain.TransactionTypeExpense, int64Ptr(1))

	summary, err := f.service.MonthSummary(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)

	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(3000)))
	assert.True(t, summary.FixedCosts.IsZero())
	assert.True(t, summary.VariableExpenses.Equal(decimal.NewFromInt(120)))
	assert.True(t, summary.Savings.Equal(decimal.NewFromInt(2880)))
}

func TestMonthSummary_EndOfMonthBalanceIncludesInitialBalances(t *testing.T) {
	f := setupAnalyticsTest()
	f.accountRepo.AddAccount(&domain.Account{ID: 1, Name: "Checking", InitialBalance: decimal.NewFromInt(1000)})

	f.addTransaction(1, util.Date(2024, time.February, 10), -300, domain.TransactionTypeExpense, nil)
	f.addTransaction(2, util.Date(2024, time.March, 10), 500, domain.TransactionTypeIncome, nil)

	summary, err := f.service.MonthSummary(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)

	// 1000 initial - 300 (prior month) + 500 (this month) through March 31.
	assert.True(t, summary.EndOfMonthBalance.Equal(decimal.NewFromInt(1200)), "balance: %s", summary.EndOfMonthBalance)
}

func TestMonthSummary_FiscalMonthAnchor(t *testing.T) {
	f := setupAnalyticsTest()

	// With the fiscal month starting on the 25th, March 2024 runs
	// Mar 25 .. Apr 24.
	settings := &domain.AppSettings{ID: 1, CurrencyCode: "EUR", FirstDayOfMonth: 25, FirstDayOfWeek: 1}

	f.addTransaction(1, util.Date(2024, time.March, 24), 100, domain.TransactionTypeIncome, nil)
	f.addTransaction(2, util.Date(2024, time.March, 25), 200, domain.TransactionTypeIncome, nil)
	f.addTransaction(3, util.Date(2024, time.April, 24), 400, domain.TransactionTypeIncome, nil)
	f.addTransaction(4, util.Date(2024, time.April, 25), 800, domain.TransactionTypeIncome, nil)

	summary, err := f.service.MonthSummary(2024, time.March, settings)
	require.NoError(t, err)
	assert.True(t, summary.TotalIncome.Equal(decimal.NewFromInt(600)), "income: %s", summary.TotalIncome)
}

func TestCategoryBreakdown_GroupsNegativeAmountsByCategory(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	f.categoryRepo.AddCategory(&domain.Category{ID: 2, Name: "Transport", Kind: domain.CategoryKindExpense})

	f.addTransaction(1, util.Date(2024, time.March, 3), -40, domain.TransactionTypeExpense, int64Ptr(1))
	f.addTransaction(2, util.Date(2024, time.March, 8), -60, domain.TransactionTypeExpense, int64Ptr(1))
	f.addTransaction(3, util.Date(2024, time.March, 12), -25, domain.TransactionTypeExpense, int64Ptr(2))
	// Positive and uncategorized rows never appear in the breakdown.
	f.addTransaction(4, util.Date(2024, time.March, 15), 2000, domain.TransactionTypeIncome, int64Ptr(1))
	f.addTransaction(5, util.Date(2024, time.March, 18), -99, domain.TransactionTypeExpense, nil)

	breakdown, err := f.service.CategoryBreakdown(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	byID := make(map[int64]*domain.CategoryAmount)
	for _, entry := range breakdown {
		byID[entry.CategoryID] = entry
	}
	assert.True(t, byID[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Food", byID[1].CategoryName)
	assert.True(t, byID[2].Amount.Equal(decimal.NewFromInt(25)))
}

func TestNetWorthTrend_FlatWithoutTransactions(t *testing.T) {
	f := setupAnalyticsTest()
	f.accountRepo.AddAccount(&domain.Account{ID: 1, Name: "Checking", InitialBalance: decimal.NewFromInt(5000)})

	points, err := f.service.NetWorthTrend(util.Date(2024, time.January, 1), util.Date(2024, time.April, 1))
	require.NoError(t, err)
	require.Len(t, points, 4)
	for _, point := range points {
		assert.True(t, point.Value.Equal(decimal.NewFromInt(5000)), "point %s: %s", point.Date, point.Value)
	}
}

func TestNetWorthTrend_CarriesRunningTotalForward(t *testing.T) {
	f := setupAnalyticsTest()
	f.accountRepo.AddAccount(&domain.Account{ID: 1, Name: "Checking", InitialBalance: decimal.NewFromInt(1000)})

	f.addTransaction(1, util.Date(2024, time.January, 15), 500, domain.TransactionTypeIncome, nil)
	f.addTransaction(2, util.Date(2024, time.February, 20), -200, domain.TransactionTypeExpense, nil)

	points, err := f.service.NetWorthTrend(util.Date(2024, time.January, 1), util.Date(2024, time.March, 1))
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(1000)))
	assert.True(t, points[1].Value.Equal(decimal.NewFromInt(1500)))
	assert.True(t, points[2].Value.Equal(decimal.NewFromInt(1300)))
}

func TestNetWorthTrend_FinalPointOnUnalignedRange(t *testing.T) {
	f := setupAnalyticsTest()

	f.addTransaction(1, util.Date(2024, time.March, 10), 750, domain.TransactionTypeIncome, nil)

	points, err := f.service.NetWorthTrend(util.Date(2024, time.January, 1), util.Date(2024, time.March, 15))
	require.NoError(t, err)
	// Jan 1, Feb 1, Mar 1, plus a closing sample at Mar 15.
	require.Len(t, points, 4)
	assert.True(t, points[3].Date.Equal(util.Date(2024, time.March, 15)))
	assert.True(t, points[2].Value.IsZero())
	assert.True(t, points[3].Value.Equal(decimal.NewFromInt(750)))
}

func TestNetWorthTrend_RejectsInvertedRange(t *testing.T) {
	f := setupAnalyticsTest()
	_, err := f.service.NetWorthTrend(util.Date(2024, time.March, 1), util.Date(2024, time.January, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestBudgetVsActual_ActiveBudgetWithSpend(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	f.budgetRepo.AddBudget(&domain.Budget{
		ID:            1,
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		Period:        domain.BudgetPeriodMonthly,
		EffectiveFrom: util.Date(2024, time.January, 1),
	})

	f.addTransaction(1, util.Date(2024, time.March, 5), -80, domain.TransactionTypeExpense, int64Ptr(1))
	f.addTransaction(2, util.Date(2024, time.March, 20), -45, domain.TransactionTypeExpense, int64Ptr(1))

	result, err := f.service.BudgetVsActual(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].BudgetAmount.Equal(decimal.NewFromInt(300)))
	assert.True(t, result[0].ActualAmount.Equal(decimal.NewFromInt(125)))
}

func TestBudgetVsActual_ExcludesExpiredBudget(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	expired := util.Date(2024, time.February, 29)
	f.budgetRepo.AddBudget(&domain.Budget{
		ID:            1,
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		Period:        domain.BudgetPeriodMonthly,
		EffectiveFrom: util.Date(2024, time.January, 1),
		EffectiveTo:   &expired,
	})

	result, err := f.service.BudgetVsActual(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestBudgetVsActual_MostRecentBudgetWins(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	f.budgetRepo.AddBudget(&domain.Budget{
		ID:            1,
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		Period:        domain.BudgetPeriodMonthly,
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	f.budgetRepo.AddBudget(&domain.Budget{
		ID:            2,
		CategoryID:    1,
		Amount:        decimal.NewFromInt(350),
		Period:        domain.BudgetPeriodMonthly,
		EffectiveFrom: util.Date(2024, time.February, 1),
	})

	result, err := f.service.BudgetVsActual(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].BudgetAmount.Equal(decimal.NewFromInt(350)))
}

func TestBudgetVsActual_ZeroActualForUnspentCategory(t *testing.T) {
	f := setupAnalyticsTest()
	f.categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	f.budgetRepo.AddBudget(&domain.Budget{
		ID:            1,
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		Period:        domain.BudgetPeriodMonthly,
		EffectiveFrom: util.Date(2024, time.January, 1),
	})

	result, err := f.service.BudgetVsActual(2024, time.March, domain.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, result[0].ActualAmount.IsZero())
}

func TestRecurringCosts_NormalizesToMonthlyEquivalents(t *testing.T) {
	f := setupAnalyticsTest()
	f.ruleRepo.AddRule(&domain.RecurringRule{
		ID: 1, AccountID: 1, Amount: decimal.NewFromInt(2),
		Direction: domain.DirectionExpense, Period: domain.PeriodDaily,
		StartDate: util.Date(2024, time.January, 1), AutoPost: true,
	})
	f.ruleRepo.AddRule(&domain.RecurringRule{
		ID: 2, AccountID: 1, Amount: decimal.NewFromInt(10),
		Direction: domain.DirectionExpense, Period: domain.PeriodWeekly,
		StartDate: util.Date(2024, time.January, 1), AutoPost: true,
	})
	f.ruleRepo.AddRule(&domain.RecurringRule{
		ID: 3, AccountID: 1, Amount: decimal.NewFromInt(900),
		Direction: domain.DirectionExpense, Period: domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 1), AutoPost: true,
	})
	f.ruleRepo.AddRule(&domain.RecurringRule{
		ID: 4, AccountID: 1, Amount: decimal.NewFromInt(120),
		Direction: domain.DirectionExpense, Period: domain.PeriodYearly,
		StartDate: util.Date(2024, time.January, 1), AutoPost: true,
	})

	costs, err := f.service.RecurringCosts(util.Date(2024, time.June, 1))
	require.NoError(t, err)

	// 2*30 + 10*4.345 + 900 + 120/12 = 1013.45
	expected := decimal.NewFromFloat(1013.45)
	assert.True(t, costs.MonthlyTotal.Equal(expected), "total: %s", costs.MonthlyTotal)
}

func TestRecurringCosts_SkipsEndedRules(t *testing.T) {
	f := setupAnalyticsTest()
	ended := util.Date(2024, time.March, 31)
	f.ruleRepo.AddRule(&domain.RecurringRule{
		ID: 1, AccountID: 1, Amount: decimal.NewFromInt(900),
		Direction: domain.DirectionExpense, Period: domain.PeriodMonthly,
		StartDate: util.Date(2024, time.January, 1), EndDate: &ended, AutoPost: true,
	})

	costs, err := f.service.RecurringCosts(util.Date(2024, time.June, 1))
	require.NoError(t, err)
	assert.True(t, costs.MonthlyTotal.IsZero())
}
