package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type RecurringPeriod string

const (
	PeriodDaily   RecurringPeriod = "DAILY"
	PeriodWeekly  RecurringPeriod = "WEEKLY"
	PeriodMonthly RecurringPeriod = "MONTHLY"
	PeriodYearly  RecurringPeriod = "YEARLY"
)

// ValidRecurringPeriod reports whether p is one of the known periods.
func ValidRecurringPeriod(p RecurringPeriod) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

type RuleDirection string

const (
	DirectionIncome  RuleDirection = "INCOME"
	DirectionExpense RuleDirection = "EXPENSE"
)

// RecurringRule describes a periodic posting. Amount is an unsigned
// magnitude; Direction decides the sign of generated transactions. The rule
// carries no generation cursor: the last posted date is derived from the
// transactions that reference the rule, so the rule row stays immutable
// during generation.
type RecurringRule struct {
	ID         int64           `json:"id"`
	AccountID  int64           `json:"accountId"`
	CategoryID *int64          `json:"categoryId,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  RuleDirection   `json:"direction"`
	Period     RecurringPeriod `json:"period"`
	StartDate  time.Time       `json:"startDate"`
	EndDate    *time.Time      `json:"endDate,omitempty"`
	AutoPost   bool            `json:"autoPost"`
	Note       *string         `json:"note,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type RecurringRuleRepository interface {
	Create(rule *RecurringRule) (*RecurringRule, error)
	GetByID(id int64) (*RecurringRule, error)
	List() ([]*RecurringRule, error)
	ListAutoPost() ([]*RecurringRule, error)
	Update(rule *RecurringRule) (*RecurringRule, error)
	Delete(id int64) error
	CountByCategory(categoryID int64) (int64, error)
}
