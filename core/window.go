package core

import (
	"time"

	"github.com/faultline/faultline/schema"
)

// Windows holds the three analysis window starts derived from a single
// reference instant. All windows are left-closed and open-ended: a ticket
// qualifies when its creation time is at or after the start. Future
// timestamps pass through; this is aggregation, not validation.
type Windows struct {
	Now        time.Time
	MonthStart time.Time // first instant of the calendar month containing Now
	Start30d   time.Time // Now minus 30 days
	Start90d   time.Time // Now minus 90 days
}

// NewWindows computes the analysis windows for a reference time. Callers
// must pin the reference time themselves; the core never reads the wall
// clock.
func NewWindows(now time.Time) Windows {
	return Windows{
		Now:        now,
		MonthStart: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		Start30d:   now.Add(-30 * 24 * time.Hour),
		Start90d:   now.Add(-90 * 24 * time.Hour),
	}
}

// InMonth reports whether a creation time falls in the current calendar month window.
func (w Windows) InMonth(t time.Time) bool { return inWindow(t, w.MonthStart) }

// In30d reports whether a creation time falls in the trailing 30-day window.
func (w Windows) In30d(t time.Time) bool { return inWindow(t, w.Start30d) }

// In90d reports whether a creation time falls in the trailing 90-day window.
func (w Windows) In90d(t time.Time) bool { return inWindow(t, w.Start90d) }

// inWindow treats the zero time as missing; missing dates never qualify.
func inWindow(t, start time.Time) bool {
	return !t.IsZero() && !t.Before(start)
}

// qualifies reports whether a ticket carries the fields every time-based
// analyzer needs: a service identity and a creation time.
func qualifies(t schema.Ticket) bool {
	return t.ServiceID != "" && !t.CreatedAt.IsZero()
}

// firstClients resolves the display client for each service as the first
// observed value across the whole filtered table, not window-restricted.
func firstClients(table schema.TicketTable) map[string]string {
	clients := make(map[string]string)
	if !table.HasColumns(schema.ColClient) {
		return clients
	}
	for _, t := range table.Tickets {
		if t.ServiceID == "" || t.Client == "" {
			continue
		}
		if _, seen := clients[t.ServiceID]; !seen {
			clients[t.ServiceID] = t.Client
		}
	}
	return clients
}
