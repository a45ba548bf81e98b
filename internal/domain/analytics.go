package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary partitions one fiscal month of activity. Savings is income
// minus fixed and variable spend; EndOfMonthBalance includes every account's
// initial balance plus all postings through the month's last day.
type MonthSummary struct {
	TotalIncome       decimal.Decimal `json:"totalIncome"`
	FixedCosts        decimal.Decimal `json:"fixedCosts"`
	VariableExpenses  decimal.Decimal `json:"variableExpenses"`
	Savings           decimal.Decimal `json:"savings"`
	EndOfMonthBalance decimal.Decimal `json:"endOfMonthBalance"`
}

// CategoryAmount is one slice of the category breakdown.
type CategoryAmount struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Amount       decimal.Decimal `json:"amount"`
}

// NetWorthPoint is one sample of the net-worth trend.
type NetWorthPoint struct {
	Date  time.Time       `json:"-"`
	Value decimal.Decimal `json:"value"`
}

// BudgetVsActual pairs a category's active budget with realized spend.
type BudgetVsActual struct {
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
}

// RecurringCosts is the monthly-normalized total of active auto-post rules.
type RecurringCosts struct {
	MonthlyTotal decimal.Decimal `json:"monthlyTotal"`
}
