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

func setupBudgetServiceTest() (*BudgetService, *testutil.MockBudgetRepository) {
	budgetRepo := testutil.NewMockBudgetRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Food", Kind: domain.CategoryKindExpense})
	return NewBudgetService(budgetRepo, categoryRepo), budgetRepo
}

func TestCreateBudget(t *testing.T) {
	service, _ := setupBudgetServiceTest()

	budget, err := service.CreateBudget(BudgetInput{
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BudgetPeriodMonthly, budget.Period)
	assert.True(t, budget.Amount.Equal(decimal.NewFromInt(300)))
}

func TestCreateBudget_RejectsNonPositiveAmount(t *testing.T) {
	service, _ := setupBudgetServiceTest()

	_, err := service.CreateBudget(BudgetInput{
		CategoryID:    1,
		Amount:        decimal.NewFromInt(-300),
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateBudget_RejectsNonMonthlyPeriod(t *testing.T) {
	service, _ := setupBudgetServiceTest()

	_, err := service.CreateBudget(BudgetInput{
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		Period:        "WEEKLY",
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestCreateBudget_EffectiveToBeforeFrom(t *testing.T) {
	service, _ := setupBudgetServiceTest()
	to := util.Date(2023, time.December, 31)

	_, err := service.CreateBudget(BudgetInput{
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		EffectiveFrom: util.Date(2024, time.January, 1),
		EffectiveTo:   &to,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestCreateBudget_UnknownCategory(t *testing.T) {
	service, _ := setupBudgetServiceTest()

	_, err := service.CreateBudget(BudgetInput{
		CategoryID:    99,
		Amount:        decimal.NewFromInt(300),
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestUpdateBudget_NotFound(t *testing.T) {
	service, _ := setupBudgetServiceTest()

	_, err := service.UpdateBudget(42, BudgetInput{
		CategoryID:    1,
		Amount:        decimal.NewFromInt(300),
		EffectiveFrom: util.Date(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, domain.ErrBudgetNotFound)
}

func TestBudgetActiveOn(t *testing.T) {
	to := util.Date(2024, time.June, 30)
	budget := &domain.Budget{
		EffectiveFrom: util.Date(2024, time.January, 1),
		EffectiveTo:   &to,
	}

	assert.False(t, budget.ActiveOn(util.Date(2023, time.December, 31)))
	assert.True(t, budget.ActiveOn(util.Date(2024, time.January, 1)))
	assert.True(t, budget.ActiveOn(util.Date(2024, time.June, 30)))
	assert.False(t, budget.ActiveOn(util.Date(2024, time.July, 1)))

	openEnded := &domain.Budget{EffectiveFrom: util.Date(2024, time.January, 1)}
	assert.True(t, openEnded.ActiveOn(util.Date(2030, time.January, 1)))
}
