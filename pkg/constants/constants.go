// Package constants provides shared constants for the costengine application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultRequestFile is the default quote request file name
	DefaultRequestFile = "request.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the quote API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodyBytes is the default maximum request body size (256 KB)
	DefaultMaxBodyBytes int64 = 256 * 1024
)

// Validation limits
const (
	// MinHoldingPeriodYears is the shortest supported ownership projection
	MinHoldingPeriodYears = 1

	// MaxHoldingPeriodYears is the longest supported ownership projection
	MaxHoldingPeriodYears = 10

	// MinDriverAgeYears is the youngest insurable driver age
	MinDriverAgeYears = 18
)
