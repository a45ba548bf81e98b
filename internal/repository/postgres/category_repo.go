package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO categories (name, kind, fixed_cost)
		VALUES ($1, $2, $3)
		RETURNING id, name, kind, fixed_cost, created_at, updated_at`,
		category.Name, string(category.Kind), category.FixedCost)

	return scanCategory(row)
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id int64) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, name, kind, fixed_cost, created_at, updated_at
		FROM categories WHERE id = $1`, id)

	category, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

// List retrieves all categories
func (r *CategoryRepository) List() ([]*domain.Category, error) {
	rows, err := r.pool.Query(context.Background(), `
		SELECT id, name, kind, fixed_cost, created_at, updated_at
		FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// Update updates an existing category
func (r *CategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	row := r.pool.QueryRow(context.Background(), `
		UPDATE categories
		SET name = $2, kind = $3, fixed_cost = $4, updated_at = now()
		WHERE id = $1
		RETURNING id, name, kind, fixed_cost, created_at, updated_at`,
		category.ID, category.Name, string(category.Kind), category.FixedCost)

	updated, err := scanCategory(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a category. Reference checks happen in the service layer
// before this is called.
func (r *CategoryRepository) Delete(id int64) error {
	tag, err := r.pool.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	var kind string
	if err := row.Scan(&c.ID, &c.Name, &kind, &c.FixedCost, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Kind = domain.CategoryKind(kind)
	return &c, nil
}
