package domain

import "time"

type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "INCOME"
	CategoryKindExpense CategoryKind = "EXPENSE"
)

// Category labels transactions and budgets. FixedCost marks
// non-discretionary expenses (rent, insurance) so the month summary can
// split fixed from variable spend.
type Category struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Kind      CategoryKind `json:"kind"`
	FixedCost bool         `json:"fixedCost"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type CategoryRepository interface {
	Create(category *Category) (*Category, error)
	GetByID(id int64) (*Category, error)
	List() ([]*Category, error)
	Update(category *Category) (*Category, error)
	Delete(id int64) error
}
