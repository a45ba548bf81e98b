package domain

// SettingsID is the primary key of the singleton settings row.
const SettingsID int64 = 1

// AppSettings is process-wide read-mostly configuration. FirstDayOfMonth
// anchors the fiscal month boundary used by the analytics bucketing; it is
// passed explicitly into aggregation calls rather than read ambiently.
type AppSettings struct {
	ID              int64  `json:"id"`
	CurrencyCode    string `json:"currencyCode"`
	FirstDayOfMonth int    `json:"firstDayOfMonth"`
	FirstDayOfWeek  int    `json:"firstDayOfWeek"`
}

// DefaultSettings returns the settings row created on first read.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		ID:              SettingsID,
		CurrencyCode:    "EUR",
		FirstDayOfMonth: 1,
		FirstDayOfWeek:  1,
	}
}

type AppSettingsRepository interface {
	// Get returns the singleton settings row, creating it with defaults
	// when missing.
	Get() (*AppSettings, error)
	Update(settings *AppSettings) (*AppSettings, error)
}
