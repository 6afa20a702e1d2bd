package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
	"github.com/stretchr/testify/assert"
)

func writerTestConfig() *contract.Config {
	return &contract.Config{
		ResultLimit:  contract.DefaultResultLimit,
		Precision:    contract.DefaultPrecision,
		Output:       schema.TextOut,
		UseColors:    false,
		Width:        120,
		CacheBackend: schema.NoneBackend,
	}
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 20))
	assert.Equal(t, "exactly-ten", truncateName("exactly-ten", 11))
	assert.Equal(t, "a-very-lo...", truncateName("a-very-long-service-name", 12))
	// Width at or below the ellipsis length leaves the name alone
	assert.Equal(t, "abcdef", truncateName("abcdef", 3))
}

func TestGetMaxTableNameWidth(t *testing.T) {
	cfg := writerTestConfig()

	// (120 - 45) / 2 = 37
	assert.Equal(t, 37, getMaxTableNameWidth(cfg))

	cfg.Width = 60 // (60-45)/2 = 7, clamped up
	assert.Equal(t, 15, getMaxTableNameWidth(cfg))

	cfg.Width = 400 // clamped down
	assert.Equal(t, 60, getMaxTableNameWidth(cfg))
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(1)
	assert.Equal(t, "5.0", fmtFloat(5))
	assert.Equal(t, "43.8", fmtFloat(43.8))
	assert.Equal(t, "%d", intFmt)

	fmtFloat2, _ := createFormatters(2)
	assert.Equal(t, "43.80", fmtFloat2(43.8))
}

func TestWriteRecurrenceCSV(t *testing.T) {
	records := []schema.ServiceRecurrence{
		{ServiceID: "svc-1", Client: "Acme", CountMonth: 3, Count30d: 3, Count90d: 5, IsRecurrent: true, Reason: schema.ReasonBoth},
	}

	var buf bytes.Buffer
	err := writeRecurrenceCSV(&buf, records)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Rank,Service,Client,Reason,Incidents This Month,Incidents Last 30d,Incidents Last 90d", lines[0])
	assert.Equal(t, "1,svc-1,Acme,both,3,3,5", lines[1])
}

func TestWriteRecurrenceJSON(t *testing.T) {
	records := []schema.ServiceRecurrence{
		{ServiceID: "svc-1", CountMonth: 3, IsRecurrent: true, Reason: schema.ReasonMonthOnly},
		{ServiceID: "svc-2", CountMonth: 3, IsRecurrent: true, Reason: schema.ReasonBoth},
	}

	var buf bytes.Buffer
	err := writeRecurrenceJSON(&buf, records)
	assert.NoError(t, err)

	var decoded []map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, float64(1), decoded[0]["rank"])
	assert.Equal(t, "criterion_a only", decoded[0]["reason"])
	assert.Equal(t, float64(2), decoded[1]["rank"])
}

func TestWriteRecurrenceTableFooter(t *testing.T) {
	records := []schema.ServiceRecurrence{
		{ServiceID: "svc-1", Client: "Acme", CountMonth: 3, Count30d: 3, Count90d: 5, IsRecurrent: true, Reason: schema.ReasonBoth},
	}

	var buf bytes.Buffer
	err := writeRecurrenceTable(&buf, records, 1, 3, writerTestConfig(), 5*time.Millisecond)
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "svc-1")
	assert.Contains(t, out, "1 recurrent / 3 stable services (25.0% recurrence)")
	assert.Contains(t, out, "Cache backend: none")
}

func TestWriteMTBFCSV(t *testing.T) {
	records := []schema.ServiceMTBF{
		{ServiceID: "svc-1", Client: "Acme", MTBFDays: 5, Failures: 2, Tier: schema.CriticalMTBF},
	}

	var buf bytes.Buffer
	err := writeMTBFCSV(&buf, records, 1)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Rank,Service,Client,MTBF Days,Failures Last 30d,Stability Tier", lines[0])
	assert.Equal(t, "1,svc-1,Acme,5.0,2,Critical", lines[1])
}

func TestWriteAvailabilityCSV(t *testing.T) {
	records := []schema.ServiceAvailability{
		{ServiceID: "svc-1", Client: "Acme", DowntimeMinutes: 43.8, Tickets: 1, SLAConsumption: 50, Tier: schema.SafeTier},
	}

	var buf bytes.Buffer
	err := writeAvailabilityCSV(&buf, records, 1)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "1,svc-1,Acme,43.8,1,50.0,Safe", lines[1])
}

func TestWriteAlertsCSV(t *testing.T) {
	alerts := []schema.ServiceAlert{
		{ServiceID: "svc-1", Client: "Acme", CountMonth: 4},
	}

	var buf bytes.Buffer
	err := writeAlertsCSV(&buf, alerts)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Rank,Service,Client,Incidents This Month", lines[0])
	assert.Equal(t, "1,svc-1,Acme,4", lines[1])
}

func TestWriteAlertsTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := writeAlertsTable(&buf, nil, writerTestConfig(), time.Millisecond)
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No services over the monthly incident threshold.")
}

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	err := writeSummaryText(&buf, schema.Summary{TotalTickets: 10, TicketsThisMonth: 4, UniqueServices: 3, UniqueClients: 2})
	assert.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Total tickets")
	assert.Contains(t, out, "10")
	assert.Contains(t, out, "Tickets this month")
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeSummaryCSV(&buf, schema.Summary{TotalTickets: 10, TicketsThisMonth: 4, UniqueServices: 3, UniqueClients: 2})
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "Total Tickets,Tickets This Month,Unique Services,Unique Clients", lines[0])
	assert.Equal(t, "10,4,3,2", lines[1])
}
