package domain

import "errors"

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrRuleNotFound        = errors.New("recurring rule not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrZeroAmount         = errors.New("amount must not be zero")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidKind        = errors.New("invalid category kind")
	ErrInvalidDirection   = errors.New("invalid direction")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
	ErrCategoryRequired   = errors.New("category is required")
	ErrCategoryNotAllowed = errors.New("transfers must not carry a category")
	ErrDateRequired       = errors.New("date is required")
	ErrInvalidCurrency    = errors.New("currency code must be a 3-letter ISO code")
	ErrInvalidDayOfMonth  = errors.New("first day of month must be between 1 and 31")
	ErrInvalidDayOfWeek   = errors.New("first day of week must be between 1 and 7")

	// ErrRuleExhausted means no further occurrence is due for a recurring
	// rule. Callers treat it as a no-op, not a failure.
	ErrRuleExhausted = errors.New("no further occurrence due for rule")

	// ErrCategoryInUse blocks category deletion while transactions, budgets
	// or recurring rules still reference it.
	ErrCategoryInUse = errors.New("category is referenced by existing records")

	ErrStoreUnavailable = errors.New("store unavailable")
)

// Validation constants
const (
	MaxNameLength = 255
)
