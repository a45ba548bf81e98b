package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bookkeeping account. Accounts are never deleted, only
// archived: archived accounts drop out of new-transaction pickers but keep
// contributing their history to balance computations.
type Account struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	Archived       bool            `json:"archived"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type AccountRepository interface {
	Create(account *Account) (*Account, error)
	GetByID(id int64) (*Account, error)
	List(includeArchived bool) ([]*Account, error)
	Update(account *Account) (*Account, error)
	SumInitialBalances() (decimal.Decimal, error)
}
