package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rooty/finance/finance-backend/internal/domain"
	"github.com/rooty/finance/finance-backend/internal/service"
	"github.com/rooty/finance/finance-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// AnalyticsHandler handles read-side aggregate HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	settingsService  *service.SettingsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService, settingsService *service.SettingsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		settingsService:  settingsService,
	}
}

// NetWorthPointResponse represents one trend sample in API responses
type NetWorthPointResponse struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

func (h *AnalyticsHandler) yearMonth(c echo.Context) (int, time.Month, error) {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil || year < 1 {
		return 0, 0, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "year", Message: "Year must be a positive integer"},
		})
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "month", Message: "Month must be between 1 and 12"},
		})
	}
	return year, time.Month(month), nil
}

// GetMonthSummary handles GET /api/analytics/month-summary?year=&month=
func (h *AnalyticsHandler) GetMonthSummary(c echo.Context) error {
	year, month, errResp := h.yearMonth(c)
	if errResp != nil {
		return errResp
	}

	settings, err := h.settingsService.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load settings")
		return NewInternalError(c, "Failed to load settings")
	}

	summary, err := h.analyticsService.MonthSummary(year, month, settings)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", int(month)).Msg("Failed to compute month summary")
		return NewInternalError(c, "Failed to compute month summary")
	}

	return c.JSON(http.StatusOK, summary)
}

// GetCategoryBreakdown handles GET /api/analytics/category-breakdown?year=&month=
func (h *AnalyticsHandler) GetCategoryBreakdown(c echo.Context) error {
	year, month, errResp := h.yearMonth(c)
	if errResp != nil {
		return errResp
	}

	settings, err := h.settingsService.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load settings")
		return NewInternalError(c, "Failed to load settings")
	}

	breakdown, err := h.analyticsService.CategoryBreakdown(year, month, settings)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", int(month)).Msg("Failed to compute category breakdown")
		return NewInternalError(c, "Failed to compute category breakdown")
	}

	return c.JSON(http.StatusOK, breakdown)
}

// GetNetWorthTrend handles GET /api/analytics/net-worth-trend?from=&to=
func (h *AnalyticsHandler) GetNetWorthTrend(c echo.Context) error {
	from, err := util.ParseDate(c.QueryParam("from"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "from", Message: "From date must be in YYYY-MM-DD format"},
		})
	}
	to, err := util.ParseDate(c.QueryParam("to"))
	if err != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "to", Message: "To date must be in YYYY-MM-DD format"},
		})
	}

	points, err := h.analyticsService.NetWorthTrend(from, to)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return NewValidationError(c, "From date must not be after to date", nil)
		}
		log.Error().Err(err).Msg("Failed to compute net worth trend")
		return NewInternalError(c, "Failed to compute net worth trend")
	}

	response := make([]NetWorthPointResponse, len(points))
	for i, point := range points {
		response[i] = NetWorthPointResponse{
			Date:  util.FormatDate(point.Date),
			Value: point.Value,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// GetBudgetVsActual handles GET /api/analytics/budget-vs-actual?year=&month=
func (h *AnalyticsHandler) GetBudgetVsActual(c echo.Context) error {
	year, month, errResp := h.yearMonth(c)
	if errResp != nil {
		return errResp
	}

	settings, err := h.settingsService.GetSettings()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load settings")
		return NewInternalError(c, "Failed to load settings")
	}

	result, err := h.analyticsService.BudgetVsActual(year, month, settings)
	if err != nil {
		log.Error().Err(err).Int("year", year).Int("month", int(month)).Msg("Failed to compute budget vs actual")
		return NewInternalError(c, "Failed to compute budget vs actual")
	}

	return c.JSON(http.StatusOK, result)
}

// GetRecurringCosts handles GET /api/analytics/recurring-costs
func (h *AnalyticsHandler) GetRecurringCosts(c echo.Context) error {
	costs, err := h.analyticsService.RecurringCosts(util.Today())
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute recurring costs")
		return NewInternalError(c, "Failed to compute recurring costs")
	}

	return c.JSON(http.StatusOK, costs)
}
