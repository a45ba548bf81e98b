package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO transactions (date, amount, type, account_id, category_id, notes, recurring_rule_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, date, amount, type, account_id, category_id, notes, recurring_rule_id, created_at`,
		pgDate(transaction.Date), amount, string(transaction.Type), transaction.AccountID,
		pgInt8(transaction.CategoryID), pgText(transaction.Notes), pgInt8(transaction.RecurringRuleID))

	return scanTransaction(row)
}

// CreateOccurrence inserts a rule-generated transaction unless one already
// exists for the same rule and date, relying on the partial unique index so a
// racing writer creates at most one row per computed occurrence date.
func (r *TransactionRepository) CreateOccurrence(transaction *domain.Transaction) (*domain.Transaction, bool, error) {
	amount, err := decimalToPgNumeric(transaction.Amount)
	if err != nil {
		return nil, false, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO transactions (date, amount, type, account_id, category_id, notes, recurring_rule_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (recurring_rule_id, date) WHERE recurring_rule_id IS NOT NULL DO NOTHING
		RETURNING id, date, amount, type, account_id, category_id, notes, recurring_rule_id, created_at`,
		pgDate(transaction.Date), amount, string(transaction.Type), transaction.AccountID,
		pgInt8(transaction.CategoryID), pgText(transaction.Notes), pgInt8(transaction.RecurringRuleID))

	created, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return created, true, nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(id int64) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, date, amount, type, account_id, category_id, notes, recurring_rule_id, created_at
		FROM transactions WHERE id = $1`, id)

	transaction, err := scanTransaction(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction, nil
}

// ListByDateRange retrieves transactions with date in [from, to]
func (r *TransactionRepository) ListByDateRange(from, to time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, date, amount, type, account_id, category_id, notes, recurring_rule_id, created_at
		FROM transactions
		WHERE date >= $1 AND date <= $2
		ORDER BY date, id`, pgDate(from), pgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// ListThrough retrieves all transactions dated on or before the given date,
// ordered by date ascending
func (r *TransactionRepository) ListThrough(date time.Time) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, date, amount, type, account_id, category_id, notes, recurring_rule_id, created_at
		FROM transactions
		WHERE date <= $1
		ORDER BY date, id`, pgDate(date))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// LastDateForRule returns the latest transaction date tied to the rule, or
// nil when the rule has never posted
func (r *TransactionRepository) LastDateForRule(ruleID int64) (*time.Time, error) {
	var last pgtype.Date
	err := r.pool.QueryRow(context.Background(),
		`SELECT MAX(date) FROM transactions WHERE recurring_rule_id = $1`, ruleID).Scan(&last)
	if err != nil {
		return nil, err
	}
	return datePtr(last), nil
}

// SumAmountsThrough returns the signed sum of all transaction amounts dated
// on or before the given date
func (r *TransactionRepository) SumAmountsThrough(date time.Time) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := r.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE date <= $1`, pgDate(date)).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(sum), nil
}

// CountByCategory counts transactions referencing the category
func (r *TransactionRepository) CountByCategory(categoryID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transactions WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var transactions []*domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var date pgtype.Date
	var amount pgtype.Numeric
	var txType string
	var categoryID, ruleID pgtype.Int8
	var notes pgtype.Text

	if err := row.Scan(&t.ID, &date, &amount, &txType, &t.AccountID, &categoryID, &notes, &ruleID, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Date = date.Time
	t.Amount = pgNumericToDecimal(amount)
	t.Type = domain.TransactionType(txType)
	t.CategoryID = int8Ptr(categoryID)
	t.Notes = textPtr(notes)
	t.RecurringRuleID = int8Ptr(ruleID)
	return &t, nil
}
