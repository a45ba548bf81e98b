package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create creates a new account
func (r *AccountRepository) Create(account *domain.Account) (*domain.Account, error) {
	ctx := context.Background()

	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (name, type, initial_balance, archived)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, type, initial_balance, archived, created_at, updated_at`,
		account.Name, account.Type, initialBalance, account.Archived)

	return scanAccount(row)
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id int64) (*domain.Account, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, name, type, initial_balance, archived, created_at, updated_at
		FROM accounts WHERE id = $1`, id)

	account, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// List retrieves all accounts, optionally including archived ones
func (r *AccountRepository) List(includeArchived bool) ([]*domain.Account, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, name, type, initial_balance, archived, created_at, updated_at
		FROM accounts
		WHERE $1 OR NOT archived
		ORDER BY id`, includeArchived)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// Update updates an account's name, type, balance and archived flag
func (r *AccountRepository) Update(account *domain.Account) (*domain.Account, error) {
	initialBalance, err := decimalToPgNumeric(account.InitialBalance)
	if err != nil {
		return nil, fmt.Errorf("invalid initial balance: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE accounts
		SET name = $2, type = $3, initial_balance = $4, archived = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, name, type, initial_balance, archived, created_at, updated_at`,
		account.ID, account.Name, account.Type, initialBalance, account.Archived)

	updated, err := scanAccount(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SumInitialBalances returns the sum of initial balances across all accounts,
// archived included: archived accounts still carry history.
func (r *AccountRepository) SumInitialBalances() (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := r.pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(initial_balance), 0) FROM accounts`).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return pgNumericToDecimal(sum), nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var balance pgtype.Numeric
	if err := row.Scan(&a.ID, &a.Name, &a.Type, &balance, &a.Archived, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.InitialBalance = pgNumericToDecimal(balance)
	return &a, nil
}
