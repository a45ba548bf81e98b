package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
)

// RecurringRuleRepository implements domain.RecurringRuleRepository using PostgreSQL
type RecurringRuleRepository struct {
	pool *pgxpool.Pool
}

// NewRecurringRuleRepository creates a new RecurringRuleRepository
func NewRecurringRuleRepository(pool *pgxpool.Pool) *RecurringRuleRepository {
	return &RecurringRuleRepository{pool: pool}
}

const ruleColumns = `id, account_id, category_id, amount, direction, period, start_date, end_date, auto_post, note, created_at, updated_at`

// Create creates a new recurring rule
func (r *RecurringRuleRepository) Create(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	amount, err := decimalToPgNumeric(rule.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO recurring_rules (account_id, category_id, amount, direction, period, start_date, end_date, auto_post, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+ruleColumns,
		rule.AccountID, pgInt8(rule.CategoryID), amount, string(rule.Direction), string(rule.Period),
		pgDate(rule.StartDate), pgDatePtr(rule.EndDate), rule.AutoPost, pgText(rule.Note))

	return scanRule(row)
}

// GetByID retrieves a recurring rule by ID
func (r *RecurringRuleRepository) GetByID(id int64) (*domain.RecurringRule, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+ruleColumns+` FROM recurring_rules WHERE id = $1`, id)

	rule, err := scanRule(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

// List retrieves all recurring rules
func (r *RecurringRuleRepository) List() ([]*domain.RecurringRule, error) {
	return r.list(`SELECT ` + ruleColumns + ` FROM recurring_rules ORDER BY id`)
}

// ListAutoPost retrieves all rules flagged for automatic posting
func (r *RecurringRuleRepository) ListAutoPost() ([]*domain.RecurringRule, error) {
	return r.list(`SELECT ` + ruleColumns + ` FROM recurring_rules WHERE auto_post ORDER BY id`)
}

func (r *RecurringRuleRepository) list(query string) ([]*domain.RecurringRule, error) {
	rows, err := r.pool.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*domain.RecurringRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

// Update updates an existing recurring rule
func (r *RecurringRuleRepository) Update(rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	amount, err := decimalToPgNumeric(rule.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.pool.QueryRow(context.Background(), `
		UPDATE recurring_rules
		SET account_id = $2, category_id = $3, amount = $4, direction = $5, period = $6,
		    start_date = $7, end_date = $8, auto_post = $9, note = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+ruleColumns,
		rule.ID, rule.AccountID, pgInt8(rule.CategoryID), amount, string(rule.Direction),
		string(rule.Period), pgDate(rule.StartDate), pgDatePtr(rule.EndDate), rule.AutoPost, pgText(rule.Note))

	updated, err := scanRule(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRuleNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a recurring rule
func (r *RecurringRuleRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM recurring_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}

// CountByCategory counts recurring rules referencing the category
func (r *RecurringRuleRepository) CountByCategory(categoryID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM recurring_rules WHERE category_id = $1`, categoryID).Scan(&count)
	return count, err
}

func scanRule(row pgx.Row) (*domain.RecurringRule, error) {
	var rule domain.RecurringRule
	var categoryID pgtype.Int8
	var amount pgtype.Numeric
	var direction, period string
	var startDate, endDate pgtype.Date
	var note pgtype.Text

	if err := row.Scan(&rule.ID, &rule.AccountID, &categoryID, &amount, &direction, &period,
		&startDate, &endDate, &rule.AutoPost, &note, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return nil, err
	}

	rule.CategoryID = int8Ptr(categoryID)
	rule.Amount = pgNumericToDecimal(amount)
	rule.Direction = domain.RuleDirection(direction)
	rule.Period = domain.RecurringPeriod(period)
	rule.StartDate = startDate.Time
	rule.EndDate = datePtr(endDate)
	rule.Note = textPtr(note)
	return &rule, nil
}
