package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "MONTHLY"
)

// Budget is a spending ceiling for a category. The budget is active for a
// month when [EffectiveFrom, EffectiveTo] contains the month's first day;
// a nil EffectiveTo means open-ended.
type Budget struct {
	ID            int64           `json:"id"`
	CategoryID    int64           `json:"categoryId"`
	Amount        decimal.Decimal `json:"amount"`
	Period        BudgetPeriod    `json:"period"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
	EffectiveTo   *time.Time      `json:"effectiveTo,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ActiveOn reports whether the budget covers the given date.
func (b *Budget) ActiveOn(date time.Time) bool {
	if date.Before(b.EffectiveFrom) {
		return false
	}
	return b.EffectiveTo == nil || !date.After(*b.EffectiveTo)
}

type BudgetRepository interface {
	Create(budget *Budget) (*Budget, error)
	GetByID(id int64) (*Budget, error)
	List() ([]*Budget, error)
	Update(budget *Budget) (*Budget, error)
	Delete(id int64) error
	CountByCategory(categoryID int64) (int64, error)
}
