package core

import (
	"math"
	"sort"
	"time"

	"github.com/faultline/faultline/schema"
)

// Availability policy defaults. The 87.6-minute budget is the monthly
// downtime allowance used operationally for a 99.8% target; it is a policy
// parameter, not a derived value, and deliberately differs from the
// 30*24*60*0.002 = 86.4 arithmetic.
const (
	DefaultSLABudgetMinutes = 87.6

	// DefaultSecondsCutoff drives unit detection: when the median downtime
	// value in the month sample exceeds it, the column is assumed to be in
	// seconds and divided by 60.
	DefaultSecondsCutoff = 10000
)

var availabilityColumns = []schema.Column{schema.ColDowntimeMin, schema.ColCreatedAt, schema.ColServiceID}

// RiskTierFor maps an SLA consumption percentage onto its risk tier.
func RiskTierFor(consumption float64) schema.RiskTier {
	switch {
	case consumption < 60:
		return schema.SafeTier
	case consumption < 80:
		return schema.AttentionTier
	case consumption < 95:
		return schema.RiskHighTier
	default:
		return schema.CriticalSLA
	}
}

// AnalyzeAvailability computes per-service SLA consumption for the current
// calendar month. Downtime is unit-corrected for the whole sample before
// summing, consumption is rounded to one decimal and clamped to [0,100],
// and results are ranked by consumption descending, service id ascending.
// The top-N worst view is a plain slice of this ranking.
func AnalyzeAvailability(table schema.TicketTable, now time.Time, budgetMinutes, secondsCutoff float64) ([]schema.ServiceAvailability, error) {
	if missing := table.MissingColumns(availabilityColumns...); len(missing) > 0 {
		return nil, &schema.SchemaError{Analyzer: "availability", Missing: missing}
	}

	w := NewWindows(now)
	type monthTicket struct {
		service string
		minutes float64
	}
	var sample []monthTicket
	for _, t := range table.Tickets {
		if !qualifies(t) || !w.InMonth(t.CreatedAt) {
			continue
		}
		sample = append(sample, monthTicket{service: t.ServiceID, minutes: t.AttributableMinutes})
	}

	// Unit correction applies to the whole column at once: a sample whose
	// central tendency exceeds the cutoff is taken to be seconds.
	values := make([]float64, len(sample))
	for i, mt := range sample {
		values[i] = mt.minutes
	}
	if median(values) > secondsCutoff {
		for i := range sample {
			sample[i].minutes /= 60
		}
	}

	type acc struct {
		downtime float64
		tickets  int
	}
	sums := make(map[string]*acc)
	for _, mt := range sample {
		a := sums[mt.service]
		if a == nil {
			a = &acc{}
			sums[mt.service] = a
		}
		a.downtime += mt.minutes
		a.tickets++
	}

	clients := firstClients(table)
	records := make([]schema.ServiceAvailability, 0, len(sums))
	for svc, a := range sums {
		consumption := math.Round(a.downtime/budgetMinutes*100*10) / 10
		consumption = math.Min(math.Max(consumption, 0), 100)
		records = append(records, schema.ServiceAvailability{
			ServiceID:       svc,
			Client:          clients[svc],
			DowntimeMinutes: a.downtime,
			Tickets:         a.tickets,
			SLAConsumption:  consumption,
			Tier:            RiskTierFor(consumption),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].SLAConsumption != records[j].SLAConsumption {
			return records[i].SLAConsumption > records[j].SLAConsumption
		}
		return records[i].ServiceID < records[j].ServiceID
	})
	return records, nil
}

// TopWorst returns the first n records of an availability ranking.
func TopWorst(records []schema.ServiceAvailability, n int) []schema.ServiceAvailability {
	if n < len(records) {
		return records[:n]
	}
	return records
}

// median returns the middle value of the sample (mean of the two middle
// values for even lengths), or 0 for an empty sample.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
