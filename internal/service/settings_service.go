package service

import (
	"strings"

	"github.com/rooty/finance/finance-backend/internal/domain"
)

// SettingsService handles the singleton application settings
type SettingsService struct {
	settingsRepo domain.AppSettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo domain.AppSettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings returns the settings row, created with defaults on first read
func (s *SettingsService) GetSettings() (*domain.AppSettings, error) {
	return s.settingsRepo.Get()
}

// SettingsInput holds the input for updating settings
type SettingsInput struct {
	CurrencyCode    string
	FirstDayOfMonth int
	FirstDayOfWeek  int
}

// UpdateSettings persists the singleton settings row
func (s *SettingsService) UpdateSettings(input SettingsInput) (*domain.AppSettings, error) {
	currency := strings.ToUpper(strings.TrimSpace(input.CurrencyCode))
	if len(currency) != 3 {
		return nil, domain.ErrInvalidCurrency
	}
	if input.FirstDayOfMonth < 1 || input.FirstDayOfMonth > 31 {
		return nil, domain.ErrInvalidDayOfMonth
	}
	if input.FirstDayOfWeek < 1 || input.FirstDayOfWeek > 7 {
		return nil, domain.ErrInvalidDayOfWeek
	}

	return s.settingsRepo.Update(&domain.AppSettings{
		ID:              domain.SettingsID,
		CurrencyCode:    currency,
		FirstDayOfMonth: input.FirstDayOfMonth,
		FirstDayOfWeek:  input.FirstDayOfWeek,
	})
}
