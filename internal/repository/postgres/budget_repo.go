package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
)

// BudgetRepository implements domain.BudgetRepository using PostgreSQL
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, category_id, amount, period, effective_from, effective_to, created_at, updated_at`

// Create creates a new budget
func (r *BudgetRepository) Create(budget *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO budgets (category_id, amount, period, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+budgetColumns,
		budget.CategoryID, amount, string(budget.Period), pgDate(budget.EffectiveFrom), pgDatePtr(budget.EffectiveTo))

	return scanBudget(row)
}

// GetByID retrieves a budget by ID
func (r *BudgetRepository) GetByID(id int64) (*domain.Budget, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)

	budget, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return budget, nil
}

// List retrieves all budgets
func (r *BudgetRepository) List() ([]*domain.Budget, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+budgetColumns+` FROM budgets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

// Update updates an existing budget
func (r *BudgetRepository) Update(budget *domain.Budget) (*domain.Budget, error) {
	amount, err := decimalToPgNumeric(budget.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE budgets
		SET category_id = $2, amount = $3, period = $4, effective_from = $5, effective_to = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+budgetColumns,
		budget.ID, budget.CategoryID, amount, string(budget.Period),
		pgDate(budget.EffectiveFrom), pgDatePtr(budget.EffectiveTo))

	updated, err := scanBudget(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrBudgetNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a budget
func (r *BudgetRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

// CountByCategory counts budgets referencing the category
func (r *BudgetRepository) CountByCategory(categoryID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM budgets WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var amount pgtype.Numeric
	var period string
	var from, to pgtype.Date

	if err := row.Scan(&b.ID, &b.CategoryID, &amount, &period, &from, &to, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	b.Amount = pgNumericToDecimal(amount)
	b.Period = domain.BudgetPeriod(period)
	b.EffectiveFrom = from.Time
	b.EffectiveTo = datePtr(to)
	return &b, nil
}
