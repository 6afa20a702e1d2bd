package schema

// Custom string types for type safety.
type (
	// Column represents a canonical column name in the normalized ticket table.
	Column string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for ingestion caching.
	DatabaseBackend string

	// StabilityTier classifies a service by its mean time between failures.
	StabilityTier string

	// RiskTier classifies a service by its SLA consumption.
	RiskTier string

	// RecurrenceReason tags why a service was flagged as recurrent.
	RecurrenceReason string
)

// Canonical column names. Downstream code must check presence via
// TicketTable.HasColumns rather than assume a column exists.
const (
	ColTicketID    Column = "ticket_id"
	ColServiceID   Column = "service_id"
	ColClient      Column = "client"
	ColCreatedAt   Column = "created_at"
	ColResolvedAt  Column = "resolved_at"
	ColRestoredAt  Column = "restored_at"
	ColDowntimeMin Column = "attributable_minutes"
	ColCountry     Column = "country"
	ColPriority    Column = "priority"
	ColServiceType Column = "service_type"
	ColTitle       Column = "title"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Stability tiers by MTBF in days. Stable requires strictly more than 30;
// the 15 and 7 boundaries belong to the higher tier (exactly 15 is
// Moderate, exactly 7 is Unstable).
const (
	StableTier   StabilityTier = "Stable"   // MTBF > 30d
	ModerateTier StabilityTier = "Moderate" // 15d <= MTBF <= 30d
	UnstableTier StabilityTier = "Unstable" // 7d <= MTBF < 15d
	CriticalMTBF StabilityTier = "Critical" // MTBF < 7d
)

// Risk tiers by SLA consumption percentage.
const (
	SafeTier      RiskTier = "Safe"      // < 60%
	AttentionTier RiskTier = "Attention" // 60% <= c < 80%
	RiskHighTier  RiskTier = "Risk"      // 80% <= c < 95%
	CriticalSLA   RiskTier = "Critical"  // >= 95%
)

// Recurrence reasons. A recurrent service carries exactly one of these;
// when both criteria fire the tag is always ReasonBoth.
const (
	ReasonMonthOnly     RecurrenceReason = "criterion_a only"
	ReasonTrimesterOnly RecurrenceReason = "criterion_b only"
	ReasonBoth          RecurrenceReason = "both"
)

// AllRecurrenceReasons returns a list of all recurrence reason tags.
var AllRecurrenceReasons = []RecurrenceReason{ReasonMonthOnly, ReasonTrimesterOnly, ReasonBoth}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRecurrenceReasons lists all valid reason tags.
var ValidRecurrenceReasons = map[RecurrenceReason]struct{}{
	ReasonMonthOnly:     {},
	ReasonTrimesterOnly: {},
	ReasonBoth:          {},
}
