package core

import (
	"math"
	"sort"
	"time"

	"github.com/faultline/faultline/schema"
)

var mtbfColumns = []schema.Column{schema.ColCreatedAt, schema.ColServiceID}

// StabilityTierFor maps an MTBF value in days onto its stability tier.
// Stable requires strictly more than 30 days; exactly 15 is Moderate and
// exactly 7 is Unstable.
func StabilityTierFor(mtbfDays float64) schema.StabilityTier {
	switch {
	case mtbfDays > 30:
		return schema.StableTier
	case mtbfDays >= 15:
		return schema.ModerateTier
	case mtbfDays >= 7:
		return schema.UnstableTier
	default:
		return schema.CriticalMTBF
	}
}

// AnalyzeMTBF computes the mean time between failures per service over the
// trailing 30-day window. Services with fewer than two qualifying
// timestamps are omitted entirely: MTBF is undefined below two events, and
// absence must not be confused with zero.
//
// Gaps are measured in whole days between consecutive incidents sorted
// ascending; the mean is rounded to one decimal. Results are sorted by
// MTBF ascending (least stable first), service id ascending.
func AnalyzeMTBF(table schema.TicketTable, now time.Time) ([]schema.ServiceMTBF, error) {
	if missing := table.MissingColumns(mtbfColumns...); len(missing) > 0 {
		return nil, &schema.SchemaError{Analyzer: "mtbf", Missing: missing}
	}

	w := NewWindows(now)
	stamps := make(map[string][]time.Time)
	for _, t := range table.Tickets {
		if !qualifies(t) || !w.In30d(t.CreatedAt) {
			continue
		}
		stamps[t.ServiceID] = append(stamps[t.ServiceID], t.CreatedAt)
	}

	clients := firstClients(table)
	records := make([]schema.ServiceMTBF, 0, len(stamps))
	for svc, ts := range stamps {
		if len(ts) < 2 {
			continue
		}
		sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })

		sum := 0
		for i := 1; i < len(ts); i++ {
			sum += int(ts[i].Sub(ts[i-1]) / (24 * time.Hour))
		}
		mtbf := math.Round(float64(sum)/float64(len(ts)-1)*10) / 10

		records = append(records, schema.ServiceMTBF{
			ServiceID: svc,
			Client:    clients[svc],
			MTBFDays:  mtbf,
			Failures:  len(ts),
			Tier:      StabilityTierFor(mtbf),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].MTBFDays != records[j].MTBFDays {
			return records[i].MTBFDays < records[j].MTBFDays
		}
		return records[i].ServiceID < records[j].ServiceID
	})
	return records, nil
}

// FilterMTBFByTier keeps only records in the given tiers. An empty tier
// list leaves the records unrestricted.
func FilterMTBFByTier(records []schema.ServiceMTBF, tiers []schema.StabilityTier) []schema.ServiceMTBF {
	if len(tiers) == 0 {
		return records
	}
	allowed := make(map[schema.StabilityTier]bool, len(tiers))
	for _, t := range tiers {
		allowed[t] = true
	}
	out := make([]schema.ServiceMTBF, 0, len(records))
	for _, r := range records {
		if allowed[r.Tier] {
			out = append(out, r)
		}
	}
	return out
}
