package schema

import (
	"fmt"
	"strings"
	"time"
)

// ServiceRecurrence is the per-service recurrence classification. One record
// exists for every service with at least one qualifying ticket in any of the
// three windows; counts are zero-filled for windows the service missed.
type ServiceRecurrence struct {
	ServiceID   string           `json:"service_id"`
	Client      string           `json:"client,omitempty"`
	CountMonth  int              `json:"count_month"`
	Count30d    int              `json:"count_30d"`
	Count90d    int              `json:"count_90d"`
	IsRecurrent bool             `json:"is_recurrent"`
	Reason      RecurrenceReason `json:"reason,omitempty"` // empty for non-recurrent services
}

// ServiceMTBF is the per-service mean time between failures over the
// trailing 30 days. Services with fewer than two qualifying incidents have
// no record at all; MTBF is undefined below two events.
type ServiceMTBF struct {
	ServiceID string        `json:"service_id"`
	Client    string        `json:"client,omitempty"`
	MTBFDays  float64       `json:"mtbf_days"` // mean gap in whole days, rounded to 1 decimal
	Failures  int           `json:"failures"`  // incident count inside the window
	Tier      StabilityTier `json:"tier"`
}

// ServiceAvailability is the per-service SLA consumption for the current
// calendar month. One record exists per service with at least one ticket in
// the month window.
type ServiceAvailability struct {
	ServiceID       string   `json:"service_id"`
	Client          string   `json:"client,omitempty"`
	DowntimeMinutes float64  `json:"downtime_minutes"` // summed, unit-corrected
	Tickets         int      `json:"tickets"`
	SLAConsumption  float64  `json:"sla_consumption"` // percent, clamped to [0,100]
	Tier            RiskTier `json:"tier"`
}

// ServiceAlert is one row of the daily alert list: a service that already
// exceeded the monthly incident threshold.
type ServiceAlert struct {
	ServiceID  string `json:"service_id"`
	Client     string `json:"client,omitempty"`
	CountMonth int    `json:"count_month"`
}

// SchemaError reports that an analyzer declined to compute because required
// canonical columns were absent from the source. Recoverable: other
// analyzers may still run.
type SchemaError struct {
	Analyzer string
	Missing  []Column
}

// Error names the missing capability so the caller can warn the user.
func (e *SchemaError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("%s analysis requires columns: %s", e.Analyzer, strings.Join(names, ", "))
}

// CacheStatus carries status information about the ingestion cache store.
type CacheStatus struct {
	Backend         string
	Connected       bool
	TotalEntries    int
	LastEntryTime   time.Time
	OldestEntryTime time.Time
	TableSizeBytes  int64
}

// CountStabilityTiers tallies MTBF records per tier.
func CountStabilityTiers(records []ServiceMTBF) map[StabilityTier]int {
	counts := make(map[StabilityTier]int)
	for _, r := range records {
		counts[r.Tier]++
	}
	return counts
}

// CountRiskTiers tallies availability records per tier.
func CountRiskTiers(records []ServiceAvailability) map[RiskTier]int {
	counts := make(map[RiskTier]int)
	for _, r := range records {
		counts[r.Tier]++
	}
	return counts
}
