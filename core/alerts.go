package core

import (
	"sort"
	"time"

	"github.com/faultline/faultline/schema"
)

var alertColumns = []schema.Column{schema.ColCreatedAt, schema.ColServiceID}

// DailyAlerts lists services whose current-month incident count already
// exceeds the threshold, sorted by count descending. This is a deliberately
// coarser view than the recurrence classification: one condition, no
// trailing-90-day consideration, meant for a daily operational report.
func DailyAlerts(table schema.TicketTable, now time.Time, threshold int) ([]schema.ServiceAlert, error) {
	if missing := table.MissingColumns(alertColumns...); len(missing) > 0 {
		return nil, &schema.SchemaError{Analyzer: "alerts", Missing: missing}
	}

	w := NewWindows(now)
	counts := make(map[string]int)
	for _, t := range table.Tickets {
		if qualifies(t) && w.InMonth(t.CreatedAt) {
			counts[t.ServiceID]++
		}
	}

	clients := firstClients(table)
	alerts := make([]schema.ServiceAlert, 0)
	for svc, n := range counts {
		if n > threshold {
			alerts = append(alerts, schema.ServiceAlert{ServiceID: svc, Client: clients[svc], CountMonth: n})
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].CountMonth != alerts[j].CountMonth {
			return alerts[i].CountMonth > alerts[j].CountMonth
		}
		return alerts[i].ServiceID < alerts[j].ServiceID
	})
	return alerts, nil
}
