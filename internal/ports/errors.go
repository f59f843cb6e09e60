package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrTimeout            = errors.New("operation timed out")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Import/Export Errors
	ErrEmptyCSV        = errors.New("CSV file appears empty or invalid")
	ErrNoValidTrades   = errors.New("no valid trades found in CSV")
	ErrNothingToExport = errors.New("no trades to export")

	// Analysis Errors
	ErrMissingCredential = errors.New("analysis API key is missing")
	ErrNoTrades          = errors.New("no trades available to analyze")
	ErrEmptyAnalysis     = errors.New("analysis returned no content")
	ErrAnalysisFailed    = errors.New("trade analysis failed")
	ErrRateLimited       = errors.New("analysis rate limit exceeded")
)
