package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/faultline/faultline/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	DefaultCacheTTL    = 5 * time.Minute
	DefaultTopWorst    = 20
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat is used for day-granularity filter bounds.
const DateOnlyFormat = "2006-01-02"

// Config holds the runtime configuration for a run.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath     string
	ReferenceTime time.Time // pinned once at the entry point, threaded everywhere

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	UseColors   bool
	Width       int // Terminal width override (0 = auto-detect)

	// Recurrence view filters
	SearchQuery string
	Reasons     []schema.RecurrenceReason

	// MTBF view filter
	Tiers []schema.StabilityTier

	// Global table filters, applied before any analyzer runs
	Countries []string
	Clients   []string
	FromDate  time.Time
	ToDate    time.Time

	// Policy parameters
	MonthThreshold     int     // recurrence criterion A / daily alert threshold
	TrimesterThreshold int     // recurrence criterion B threshold
	SLABudgetMinutes   float64 // monthly downtime allowance
	SecondsCutoff      float64 // median above this means the downtime column is in seconds

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Input              string  `mapstructure:"input"`
	Now                string  `mapstructure:"now"`
	Limit              int     `mapstructure:"limit"`
	Precision          int     `mapstructure:"precision"`
	Output             string  `mapstructure:"output"`
	OutputFile         string  `mapstructure:"output-file"`
	Color              string  `mapstructure:"color"`
	Width              int     `mapstructure:"width"`
	Search             string  `mapstructure:"search"`
	Reason             string  `mapstructure:"reason"`
	Tier               string  `mapstructure:"tier"`
	Country            string  `mapstructure:"country"`
	Client             string  `mapstructure:"client"`
	From               string  `mapstructure:"from"`
	To                 string  `mapstructure:"to"`
	MonthThreshold     int     `mapstructure:"month-threshold"`
	TrimesterThreshold int     `mapstructure:"trimester-threshold"`
	SLABudget          float64 `mapstructure:"sla-budget"`
	SecondsCutoff      float64 `mapstructure:"seconds-cutoff"`
	CacheBackend       string  `mapstructure:"cache-backend"`
	CacheDBConnect     string  `mapstructure:"cache-db-connect"`
	CacheTTL           string  `mapstructure:"cache-ttl"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Reasons = append([]schema.RecurrenceReason(nil), c.Reasons...)
	clone.Tiers = append([]schema.StabilityTier(nil), c.Tiers...)
	clone.Countries = append([]string(nil), c.Countries...)
	clone.Clients = append([]string(nil), c.Clients...)
	return &clone
}

// Filter builds the immutable per-run filter criteria from the validated config.
func (c *Config) Filter() schema.FilterCriteria {
	return schema.FilterCriteria{
		Countries: c.Countries,
		Clients:   c.Clients,
		From:      c.FromDate,
		To:        c.ToDate,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. The wall clock is read exactly
// once, by the caller, and handed in as now.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processReferenceTime(cfg, input, now); err != nil {
		return err
	}
	if err := processFilters(cfg, input); err != nil {
		return err
	}
	if err := processPolicy(cfg, input); err != nil {
		return err
	}
	return validateBackendConfig(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = input.Input
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SearchQuery = input.Search

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processReferenceTime resolves --now into the pinned reference time.
func processReferenceTime(cfg *Config, input *ConfigRawInput, now time.Time) error {
	ref, err := ParseReferenceTime(input.Now, now)
	if err != nil {
		return fmt.Errorf("invalid --now value: %w", err)
	}
	cfg.ReferenceTime = ref
	return nil
}

// processFilters parses the list-valued and date-range filters.
func processFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.Countries = splitList(input.Country)
	cfg.Clients = splitList(input.Client)

	for _, raw := range splitList(input.Reason) {
		r := schema.RecurrenceReason(raw)
		if _, ok := schema.ValidRecurrenceReasons[r]; !ok {
			return fmt.Errorf("invalid reason '%s'. must be one of: %q, %q, %q",
				raw, schema.ReasonMonthOnly, schema.ReasonTrimesterOnly, schema.ReasonBoth)
		}
		cfg.Reasons = append(cfg.Reasons, r)
	}

	for _, raw := range splitList(input.Tier) {
		switch t := schema.StabilityTier(raw); t {
		case schema.StableTier, schema.ModerateTier, schema.UnstableTier, schema.CriticalMTBF:
			cfg.Tiers = append(cfg.Tiers, t)
		default:
			return fmt.Errorf("invalid tier '%s'. must be Stable, Moderate, Unstable, Critical", raw)
		}
	}

	if input.From != "" {
		t, err := time.Parse(DateOnlyFormat, input.From)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		cfg.FromDate = t
	}
	if input.To != "" {
		t, err := time.Parse(DateOnlyFormat, input.To)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		cfg.ToDate = t
	}
	if !cfg.FromDate.IsZero() && !cfg.ToDate.IsZero() && cfg.ToDate.Before(cfg.FromDate) {
		return fmt.Errorf("--to (%s) is before --from (%s)", input.To, input.From)
	}
	return nil
}

// processPolicy validates the reliability policy parameters.
func processPolicy(cfg *Config, input *ConfigRawInput) error {
	if input.MonthThreshold < 0 {
		return fmt.Errorf("month-threshold cannot be negative (received %d)", input.MonthThreshold)
	}
	cfg.MonthThreshold = input.MonthThreshold

	if input.TrimesterThreshold < 0 {
		return fmt.Errorf("trimester-threshold cannot be negative (received %d)", input.TrimesterThreshold)
	}
	cfg.TrimesterThreshold = input.TrimesterThreshold

	if input.SLABudget <= 0 {
		return fmt.Errorf("sla-budget must be positive (received %v)", input.SLABudget)
	}
	cfg.SLABudgetMinutes = input.SLABudget

	if input.SecondsCutoff <= 0 {
		return fmt.Errorf("seconds-cutoff must be positive (received %v)", input.SecondsCutoff)
	}
	cfg.SecondsCutoff = input.SecondsCutoff

	if input.CacheTTL != "" {
		ttl, err := time.ParseDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		if ttl < 0 {
			return fmt.Errorf("cache-ttl cannot be negative")
		}
		cfg.CacheTTL = ttl
	} else {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return nil
}

// validateBackendConfig validates the cache backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// splitList splits a comma-separated flag value, trimming blanks.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
