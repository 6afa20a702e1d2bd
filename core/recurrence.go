package core

import (
	"sort"
	"strings"
	"time"

	"github.com/faultline/faultline/schema"
)

// DefaultIncidentThreshold is the incident count a service must exceed to
// trip either recurrence criterion or the daily alert filter.
const DefaultIncidentThreshold = 2

var recurrenceColumns = []schema.Column{schema.ColCreatedAt, schema.ColServiceID}

type windowCounts struct {
	month, d30, d90 int
}

// AnalyzeRecurrence classifies every service seen in any analysis window.
// Criterion A: more than monthThreshold incidents in the current calendar
// month. Criterion B: more than trimesterThreshold incidents in the
// trailing 90 days combined with at least one in the current month. When
// both fire, the reason is always ReasonBoth.
//
// Results are sorted by monthly count descending, service id ascending, so
// repeated runs over the same table and reference time are identical.
func AnalyzeRecurrence(table schema.TicketTable, now time.Time, monthThreshold, trimesterThreshold int) ([]schema.ServiceRecurrence, error) {
	if missing := table.MissingColumns(recurrenceColumns...); len(missing) > 0 {
		return nil, &schema.SchemaError{Analyzer: "recurrence", Missing: missing}
	}

	w := NewWindows(now)
	counts := make(map[string]*windowCounts)
	for _, t := range table.Tickets {
		if !qualifies(t) {
			continue
		}
		inMonth, in30, in90 := w.InMonth(t.CreatedAt), w.In30d(t.CreatedAt), w.In90d(t.CreatedAt)
		if !inMonth && !in30 && !in90 {
			continue
		}
		c := counts[t.ServiceID]
		if c == nil {
			c = &windowCounts{}
			counts[t.ServiceID] = c
		}
		if inMonth {
			c.month++
		}
		if in30 {
			c.d30++
		}
		if in90 {
			c.d90++
		}
	}

	clients := firstClients(table)
	records := make([]schema.ServiceRecurrence, 0, len(counts))
	for svc, c := range counts {
		critA := c.month > monthThreshold
		critB := c.d90 > trimesterThreshold && c.month >= 1
		rec := schema.ServiceRecurrence{
			ServiceID:   svc,
			Client:      clients[svc],
			CountMonth:  c.month,
			Count30d:    c.d30,
			Count90d:    c.d90,
			IsRecurrent: critA || critB,
		}
		switch {
		case critA && critB:
			rec.Reason = schema.ReasonBoth
		case critA:
			rec.Reason = schema.ReasonMonthOnly
		case critB:
			rec.Reason = schema.ReasonTrimesterOnly
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CountMonth != records[j].CountMonth {
			return records[i].CountMonth > records[j].CountMonth
		}
		return records[i].ServiceID < records[j].ServiceID
	})
	return records, nil
}

// PartitionRecurrence splits records into the recurrent and stable subsets,
// preserving order.
func PartitionRecurrence(records []schema.ServiceRecurrence) (recurrent, stable []schema.ServiceRecurrence) {
	for _, r := range records {
		if r.IsRecurrent {
			recurrent = append(recurrent, r)
		} else {
			stable = append(stable, r)
		}
	}
	return recurrent, stable
}

// FilterRecurrence narrows records by a case-insensitive substring match
// against service or client name, and by reason tag. An empty query or an
// empty reason list leaves that dimension unrestricted.
func FilterRecurrence(records []schema.ServiceRecurrence, query string, reasons []schema.RecurrenceReason) []schema.ServiceRecurrence {
	query = strings.ToLower(strings.TrimSpace(query))
	allowed := make(map[schema.RecurrenceReason]bool, len(reasons))
	for _, r := range reasons {
		allowed[r] = true
	}

	out := make([]schema.ServiceRecurrence, 0, len(records))
	for _, r := range records {
		if query != "" &&
			!strings.Contains(strings.ToLower(r.ServiceID), query) &&
			!strings.Contains(strings.ToLower(r.Client), query) {
			continue
		}
		if len(reasons) > 0 && !allowed[r.Reason] {
			continue
		}
		out = append(out, r)
	}
	return out
}
