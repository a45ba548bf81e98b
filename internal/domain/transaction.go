package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome          TransactionType = "INCOME"
	TransactionTypeExpense         TransactionType = "EXPENSE"
	TransactionTypeFixedCost       TransactionType = "FIXED_COST"
	TransactionTypeVariableExpense TransactionType = "VARIABLE_EXPENSE"
	TransactionTypeTransfer        TransactionType = "TRANSFER"
)

// ValidTransactionType reports whether t is one of the known types.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeFixedCost,
		TransactionTypeVariableExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is a single ledger posting. Amounts are signed: income
// positive, expenses negative, transfers carry the caller-supplied sign.
// RecurringRuleID is set on occurrences generated from a recurring rule and
// doubles as the duplicate-generation guard together with Date.
type Transaction struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Type            TransactionType `json:"type"`
	AccountID       int64           `json:"accountId"`
	CategoryID      *int64          `json:"categoryId,omitempty"`
	Notes           *string         `json:"notes,omitempty"`
	RecurringRuleID *int64          `json:"recurringRuleId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	// CreateOccurrence inserts a rule-generated transaction unless one
	// already exists for the same rule and date. Returns false when the
	// occurrence was already present.
	CreateOccurrence(transaction *Transaction) (*Transaction, bool, error)
	GetByID(id int64) (*Transaction, error)
	ListByDateRange(from, to time.Time) ([]*Transaction, error)
	// ListThrough returns all transactions dated on or before the given
	// date, ordered by date ascending.
	ListThrough(date time.Time) ([]*Transaction, error)
	Delete(id int64) error
	// LastDateForRule returns the latest transaction date tied to the rule,
	// or nil when the rule has never posted.
	LastDateForRule(ruleID int64) (*time.Time, error)
	SumAmountsThrough(date time.Time) (decimal.Decimal, error)
	CountByCategory(categoryID int64) (int64, error)
}
