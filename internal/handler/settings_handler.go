package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles app settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// SettingsRequest represents the update settings request body
type SettingsRequest struct {
	CurrencyCode    string `json:"currencyCode"`
	FirstDayOfMonth int    `json:"firstDayOfMonth"`
	FirstDayOfWeek  int    `json:"firstDayOfWeek"`
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load settings")
		return NewInternalError(c, "Failed to load settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	settings, err := h.settingsService.UpdateSettings(service.SettingsInput{
		CurrencyCode:    req.CurrencyCode,
		FirstDayOfMonth: req.FirstDayOfMonth,
		FirstDayOfWeek:  req.FirstDayOfWeek,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCurrency):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "currencyCode", Message: "Currency code must be a 3-letter ISO code"},
			})
		case errors.Is(err, domain.ErrInvalidDayOfMonth):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "firstDayOfMonth", Message: "First day of month must be between 1 and 31"},
			})
		case errors.Is(err, domain.ErrInvalidDayOfWeek):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "firstDayOfWeek", Message: "First day of week must be between 1 and 7"},
			})
		}
		log.Error().Err(err).Msg("Failed to update settings")
		return NewInternalError(c, "Failed to update settings")
	}

	return c.JSON(http.StatusOK, settings)
}
