package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rooty/finance/finance-backend/internal/domain"
)

// AppSettingsRepository implements domain.AppSettingsRepository using PostgreSQL
type AppSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewAppSettingsRepository creates a new AppSettingsRepository
func NewAppSettingsRepository(pool *pgxpool.Pool) *AppSettingsRepository {
	return &AppSettingsRepository{pool: pool}
}

// Get returns the singleton settings row, creating it with defaults when missing
func (r *AppSettingsRepository) Get() (*domain.AppSettings, error) {
	settings, err := r.get()
	if err == nil {
		return settings, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	defaults := domain.DefaultSettings()
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO app_settings (id, currency_code, first_day_of_month, first_day_of_week)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET id = app_settings.id
		RETURNING id, currency_code, first_day_of_month, first_day_of_week`,
		defaults.ID, defaults.CurrencyCode, defaults.FirstDayOfMonth, defaults.FirstDayOfWeek)
	return scanSettings(row)
}

// Update persists the singleton settings row
func (r *AppSettingsRepository) Update(settings *domain.AppSettings) (*domain.AppSettings, error) {
	row := r.pool.QueryRow(context.Background(), `
		INSERT INTO app_settings (id, currency_code, first_day_of_month, first_day_of_week)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET currency_code = EXCLUDED.currency_code,
		    first_day_of_month = EXCLUDED.first_day_of_month,
		    first_day_of_week = EXCLUDED.first_day_of_week
		RETURNING id, currency_code, first_day_of_month, first_day_of_week`,
		domain.SettingsID, settings.CurrencyCode, settings.FirstDayOfMonth, settings.FirstDayOfWeek)
	return scanSettings(row)
}

func (r *AppSettingsRepository) get() (*domain.AppSettings, error) {
	row := r.pool.QueryRow(context.Background(), `
		SELECT id, currency_code, first_day_of_month, first_day_of_week
		FROM app_settings WHERE id = $1`, domain.SettingsID)
	return scanSettings(row)
}

func scanSettings(row pgx.Row) (*domain.AppSettings, error) {
	var s domain.AppSettings
	if err := row.Scan(&s.ID, &s.CurrencyCode, &s.FirstDayOfMonth, &s.FirstDayOfWeek); err != nil {
		return nil, err
	}
	return &s, nil
}
