// Package schema has configs, models and shared constants for all parts of faultline.
package schema

import "time"

// Ticket represents a single incident ticket after normalization.
// Optional timestamps use the zero time to mean "missing"; downtime that
// could not be parsed is 0, never an error.
type Ticket struct {
	TicketID            string            // Opaque identifier; duplicates possible upstream
	ServiceID           string            // Monitored service; empty means the ticket is excluded from analysis
	Client              string            // Display attribute, resolved first-seen per service
	CreatedAt           time.Time         // Incident creation time (zero = missing)
	ResolvedAt          time.Time         // Resolution time, detail views only (zero = missing)
	RestoredAt          time.Time         // Service restoration time, detail views only (zero = missing)
	AttributableMinutes float64           // Downtime attributable to the provider; may arrive in seconds
	Country             string            // Descriptive, filtering only
	Priority            string            // Descriptive, filtering only
	ServiceType         string            // Descriptive, filtering only
	Title               string            // Descriptive, display only
	Extra               map[string]string // Unrecognized source columns, passed through unchanged
}

// TicketTable is a normalized snapshot of incident tickets. Columns records
// which canonical columns the source actually carried, so analyzers can
// check presence instead of assuming it.
type TicketTable struct {
	Columns map[Column]bool
	Tickets []Ticket
}

// HasColumns reports whether every given canonical column was present in the source.
func (t TicketTable) HasColumns(cols ...Column) bool {
	for _, c := range cols {
		if !t.Columns[c] {
			return false
		}
	}
	return true
}

// MissingColumns returns the subset of the given columns absent from the source,
// in the order requested.
func (t TicketTable) MissingColumns(cols ...Column) []Column {
	var missing []Column
	for _, c := range cols {
		if !t.Columns[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// Len returns the number of tickets in the table.
func (t TicketTable) Len() int { return len(t.Tickets) }

// Clone returns a deep copy of the table. Analyzers never mutate their
// input; filtering always works on a copy.
func (t TicketTable) Clone() TicketTable {
	cols := make(map[Column]bool, len(t.Columns))
	for c, ok := range t.Columns {
		cols[c] = ok
	}
	tickets := make([]Ticket, len(t.Tickets))
	copy(tickets, t.Tickets)
	return TicketTable{Columns: cols, Tickets: tickets}
}

// FilterCriteria narrows the ticket table before analysis. It is built once
// per run and passed by value; analyzers never read ambient filter state.
// Empty slices and zero times mean "no restriction".
type FilterCriteria struct {
	Countries []string  // Allowed values of the country column
	Clients   []string  // Allowed values of the client column
	From      time.Time // Inclusive lower bound on the created-at date (day granularity)
	To        time.Time // Inclusive upper bound on the created-at date (day granularity)
}

// IsZero reports whether the criteria restrict nothing.
func (f FilterCriteria) IsZero() bool {
	return len(f.Countries) == 0 && len(f.Clients) == 0 && f.From.IsZero() && f.To.IsZero()
}

// Summary holds the headline counts shown above every report.
type Summary struct {
	TotalTickets     int `json:"total_tickets"`
	TicketsThisMonth int `json:"tickets_this_month"`
	UniqueServices   int `json:"unique_services"`
	UniqueClients    int `json:"unique_clients"`
}
