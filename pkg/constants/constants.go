// Package constants provides shared constants for the personal-finance engine.
package constants

// Calendar-average pay period constants. These are the only conversion
// factors used between pay frequencies; see package payperiod.
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// WeeksPerYear is the number of weekly pay periods in a year
	WeeksPerYear = 52

	// BiWeeklyPeriodsPerYear is the number of bi-weekly pay periods in a year
	BiWeeklyPeriodsPerYear = 26

	// WeeksPerMonth is the calendar-average number of weeks in a month (52/12, truncated)
	WeeksPerMonth = 4.33

	// BiWeeklyPeriodsPerMonth is the calendar-average number of bi-weekly periods
	// in a month (26/12, truncated)
	BiWeeklyPeriodsPerMonth = 2.165

	// WeeksPerBiWeeklyPeriod is the number of weeks in a bi-weekly period
	WeeksPerBiWeeklyPeriod = 2
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyPlaces is the number of decimal places used for currency
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// MaxAmortizationMonths caps a simulated amortization schedule (30 years)
	MaxAmortizationMonths = 360

	// MaxProjectionYears bounds any growth projection horizon
	MaxProjectionYears = 100

	// DefaultGrowthRatePercent is the annual growth rate assumed for an account
	// without an explicit rate
	DefaultGrowthRatePercent = 7.0

	// DefaultHorizonYears is the projection horizon assumed for an account
	// without an explicit horizon
	DefaultHorizonYears = 30

	// HousingGuidelinePercent is the recommended ceiling for housing costs as a
	// share of gross monthly income
	HousingGuidelinePercent = 30.0

	// DebtToIncomeGuidelinePercent is the recommended ceiling for total debt as
	// a share of gross annual income
	DebtToIncomeGuidelinePercent = 35.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default profile file name
	DefaultConfigFile = "profile.yaml"

	// ExampleConfigFile is the example profile file name
	ExampleConfigFile = "profile.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML profiles (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultRequestsPerSecond is the default steady-state request rate for the API
	DefaultRequestsPerSecond = 10.0

	// DefaultRequestBurst is the default request burst size for the API
	DefaultRequestBurst = 30

	// DefaultCacheTTLSeconds is how long a computed report stays cached
	DefaultCacheTTLSeconds = 600
)
