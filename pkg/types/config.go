package types

import "errors"

// Config holds backend selection and parameters for Store.Open.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	LoanDays int    `json:"loan_days" yaml:"loan_days"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// DefaultLoanDays is the loan period applied when Config.LoanDays is unset.
const DefaultLoanDays = 14

// Config validation errors.
var (
	ErrBackendEmpty    = errors.New("backend must not be empty")
	ErrBackendUnknown  = errors.New("unknown backend")
	ErrLoanDaysInvalid = errors.New("loan days must not be negative")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.LoanDays < 0 {
		return ErrLoanDaysInvalid
	}
	return nil
}

// GetLoanDays returns the configured loan period in days, falling back to
// DefaultLoanDays when the field is zero.
func (c Config) GetLoanDays() int {
	if c.LoanDays <= 0 {
		return DefaultLoanDays
	}
	return c.LoanDays
}
