package core

import (
	"strconv"
	"strings"
	"time"

	"github.com/faultline/faultline/schema"
)

// RawTable is the untyped table handed over by an ingestion collaborator:
// source-defined headers plus string cells, one row per ticket.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// sourceHeaderMap maps the known headers of the upstream incident export to
// canonical column names. Unrecognized headers pass through into Ticket.Extra.
var sourceHeaderMap = map[string]schema.Column{
	"Id de Ticket":                           schema.ColTicketID,
	"Fecha y Hora de creación":               schema.ColCreatedAt,
	"Fecha de restablecimiento del servicio": schema.ColRestoredAt,
	"Fecha estado resuelto":                  schema.ColResolvedAt,
	"Cliente Customer":                       schema.ColClient,
	"Servicio afectado":                      schema.ColServiceID,
	"País Origen":                            schema.ColCountry,
	"Prioridad":                              schema.ColPriority,
	"Tiempo imputable a Ufinet":              schema.ColDowntimeMin,
	"Título de la Incidencia":                schema.ColTitle,
	"Tipo de Incidencia":                     schema.ColServiceType,
}

// Canonical names are accepted as-is so pre-normalized exports round-trip.
func canonicalColumn(header string) (schema.Column, bool) {
	if col, ok := sourceHeaderMap[header]; ok {
		return col, true
	}
	switch c := schema.Column(header); c {
	case schema.ColTicketID, schema.ColServiceID, schema.ColClient,
		schema.ColCreatedAt, schema.ColResolvedAt, schema.ColRestoredAt,
		schema.ColDowntimeMin, schema.ColCountry, schema.ColPriority,
		schema.ColServiceType, schema.ColTitle:
		return c, true
	}
	return "", false
}

// dateLayouts are tried in order when parsing date cells. The source mixes
// day-first and ISO styles depending on the exporting locale.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate parses a date cell leniently. Unparseable values become the
// zero time, never an error; downstream windowing drops them.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseDowntime coerces a downtime cell to a non-negative number of minutes
// (or seconds; unit correction happens later, per run). Unparseable values
// become 0 so the ticket still counts toward recurrence and MTBF.
func ParseDowntime(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// Normalize maps a raw source table onto the canonical ticket schema.
// Columns absent from the source stay absent in the result; downstream
// analyzers check presence instead of assuming it.
func Normalize(raw RawTable) schema.TicketTable {
	cols := make(map[schema.Column]bool)
	canonical := make([]schema.Column, len(raw.Headers))
	for i, h := range raw.Headers {
		h = strings.TrimSpace(h)
		raw.Headers[i] = h
		if col, ok := canonicalColumn(h); ok {
			canonical[i] = col
			cols[col] = true
		}
	}

	tickets := make([]schema.Ticket, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		var t schema.Ticket
		for i, cell := range row {
			if i >= len(raw.Headers) {
				break
			}
			cell = strings.TrimSpace(cell)
			switch canonical[i] {
			case schema.ColTicketID:
				t.TicketID = cell
			case schema.ColServiceID:
				t.ServiceID = cell
			case schema.ColClient:
				t.Client = cell
			case schema.ColCreatedAt:
				t.CreatedAt = ParseDate(cell)
			case schema.ColResolvedAt:
				t.ResolvedAt = ParseDate(cell)
			case schema.ColRestoredAt:
				t.RestoredAt = ParseDate(cell)
			case schema.ColDowntimeMin:
				t.AttributableMinutes = ParseDowntime(cell)
			case schema.ColCountry:
				t.Country = cell
			case schema.ColPriority:
				t.Priority = cell
			case schema.ColServiceType:
				t.ServiceType = cell
			case schema.ColTitle:
				t.Title = cell
			default:
				if cell != "" {
					if t.Extra == nil {
						t.Extra = make(map[string]string)
					}
					t.Extra[raw.Headers[i]] = cell
				}
			}
		}
		tickets = append(tickets, t)
	}

	return schema.TicketTable{Columns: cols, Tickets: tickets}
}
