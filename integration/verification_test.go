//go:build basic

// Package integration contains integration tests for faultline.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or use: make test-integration
package integration

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The fixture snapshot has three services under the pinned reference time:
// fiber-lima-01 with three August incidents, metro-bogota-02 with two August
// incidents plus one in June, and edge-quito-03 with a single incident.

func TestRecurrenceCSVOutput(t *testing.T) {
	output, err := runFaultline(t, "recurrence", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Rank,Service,Client,Reason,Incidents This Month,Incidents Last 30d,Incidents Last 90d", lines[0])
	assert.Equal(t, "1,fiber-lima-01,Acme Telecom,both,3,3,3", lines[1])
	assert.Equal(t, "2,metro-bogota-02,Globex SA,criterion_b only,2,2,3", lines[2])
}

func TestRecurrenceCountryFilter(t *testing.T) {
	output, err := runFaultline(t, "recurrence", "--output", "csv", "--country", "Peru")
	require.NoError(t, err)

	assert.Contains(t, output, "fiber-lima-01")
	assert.NotContains(t, output, "metro-bogota-02")
}

func TestMTBFCSVOutput(t *testing.T) {
	output, err := runFaultline(t, "mtbf", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Rank,Service,Client,MTBF Days,Failures Last 30d,Stability Tier", lines[0])
	assert.Equal(t, "1,fiber-lima-01,Acme Telecom,5.0,3,Critical", lines[1])
	assert.Equal(t, "2,metro-bogota-02,Globex SA,14.0,2,Unstable", lines[2])
}

func TestAvailabilityCSVOutput(t *testing.T) {
	output, err := runFaultline(t, "availability", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Rank,Service,Client,Downtime Minutes,Tickets This Month,SLA Consumption Percent,Risk Tier", lines[0])
	assert.Equal(t, "1,fiber-lima-01,Acme Telecom,90.0,3,100.0,Critical", lines[1])
	assert.Equal(t, "2,metro-bogota-02,Globex SA,20.0,2,22.8,Safe", lines[2])
	assert.Equal(t, "3,edge-quito-03,Initech,15.0,1,17.1,Safe", lines[3])
}

func TestAlertsCSVOutput(t *testing.T) {
	output, err := runFaultline(t, "alerts", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Rank,Service,Client,Incidents This Month", lines[0])
	assert.Equal(t, "1,fiber-lima-01,Acme Telecom,3", lines[1])
}

func TestSummaryCSVOutput(t *testing.T) {
	output, err := runFaultline(t, "summary", "--output", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Total Tickets,Tickets This Month,Unique Services,Unique Clients", lines[0])
	assert.Equal(t, "7,6,3,3", lines[1])
}

func TestTextOutputFooters(t *testing.T) {
	output, err := runFaultline(t, "recurrence")
	require.NoError(t, err)

	assert.Contains(t, output, "2 recurrent / 1 stable services")
	assert.Contains(t, output, "Cache backend: none")
}

func TestRaisedThresholdSilencesAlerts(t *testing.T) {
	output, err := runFaultline(t, "alerts", "--month-threshold", "5")
	require.NoError(t, err)

	assert.Contains(t, output, "No services over the monthly incident threshold.")
}
