package core

import (
	"time"

	"github.com/faultline/faultline/schema"
)

// ApplyFilter returns a new table containing only tickets matching the
// criteria. The input table is never mutated. A criterion tied to an absent
// column is skipped, matching the behavior of the upstream dashboard's
// sidebar filters.
func ApplyFilter(table schema.TicketTable, fc schema.FilterCriteria) schema.TicketTable {
	if fc.IsZero() {
		return table.Clone()
	}

	countries := toSet(fc.Countries)
	clients := toSet(fc.Clients)
	filterCountry := len(countries) > 0 && table.HasColumns(schema.ColCountry)
	filterClient := len(clients) > 0 && table.HasColumns(schema.ColClient)
	filterDates := (!fc.From.IsZero() || !fc.To.IsZero()) && table.HasColumns(schema.ColCreatedAt)

	out := table.Clone()
	out.Tickets = out.Tickets[:0]
	for _, t := range table.Tickets {
		if filterCountry && !countries[t.Country] {
			continue
		}
		if filterClient && !clients[t.Client] {
			continue
		}
		if filterDates && !inDateRange(t.CreatedAt, fc.From, fc.To) {
			continue
		}
		out.Tickets = append(out.Tickets, t)
	}
	return out
}

// inDateRange compares at day granularity; tickets with a missing creation
// time never match an active date filter.
func inDateRange(t, from, to time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	if !from.IsZero() && day.Before(time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, t.Location())) {
		return false
	}
	if !to.IsZero() && day.After(time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, t.Location())) {
		return false
	}
	return true
}

func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

// Summarize computes the headline counts shown above every report.
func Summarize(table schema.TicketTable, now time.Time) schema.Summary {
	w := NewWindows(now)
	s := schema.Summary{TotalTickets: table.Len()}

	services := make(map[string]bool)
	clientNames := make(map[string]bool)
	for _, t := range table.Tickets {
		if t.ServiceID != "" {
			services[t.ServiceID] = true
		}
		if t.Client != "" {
			clientNames[t.Client] = true
		}
		if w.InMonth(t.CreatedAt) {
			s.TicketsThisMonth++
		}
	}
	s.UniqueServices = len(services)
	s.UniqueClients = len(clientNames)
	return s
}
