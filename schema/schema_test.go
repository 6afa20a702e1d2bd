package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTicketTableColumns(t *testing.T) {
	table := TicketTable{Columns: map[Column]bool{ColServiceID: true, ColCreatedAt: true}}

	assert.True(t, table.HasColumns(ColServiceID))
	assert.True(t, table.HasColumns(ColServiceID, ColCreatedAt))
	assert.False(t, table.HasColumns(ColServiceID, ColDowntimeMin))

	missing := table.MissingColumns(ColDowntimeMin, ColCreatedAt, ColClient)
	assert.Equal(t, []Column{ColDowntimeMin, ColClient}, missing)

	assert.Nil(t, table.MissingColumns(ColServiceID))
}

func TestTicketTableClone(t *testing.T) {
	table := TicketTable{
		Columns: map[Column]bool{ColServiceID: true},
		Tickets: []Ticket{{ServiceID: "svc-1", CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}},
	}

	clone := table.Clone()
	clone.Tickets[0].ServiceID = "mutated"
	clone.Columns[ColClient] = true

	assert.Equal(t, "svc-1", table.Tickets[0].ServiceID)
	assert.False(t, table.Columns[ColClient])
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Analyzer: "availability", Missing: []Column{ColDowntimeMin, ColCreatedAt}}
	assert.Equal(t, "availability analysis requires columns: attributable_minutes, created_at", err.Error())
}

func TestCountTiers(t *testing.T) {
	mtbf := []ServiceMTBF{
		{Tier: CriticalMTBF}, {Tier: CriticalMTBF}, {Tier: StableTier},
	}
	counts := CountStabilityTiers(mtbf)
	assert.Equal(t, 2, counts[CriticalMTBF])
	assert.Equal(t, 1, counts[StableTier])
	assert.Equal(t, 0, counts[ModerateTier])

	avail := []ServiceAvailability{{Tier: SafeTier}, {Tier: CriticalSLA}}
	riskCounts := CountRiskTiers(avail)
	assert.Equal(t, 1, riskCounts[SafeTier])
	assert.Equal(t, 1, riskCounts[CriticalSLA])
}

func TestFilterCriteriaIsZero(t *testing.T) {
	assert.True(t, FilterCriteria{}.IsZero())
	assert.False(t, FilterCriteria{Countries: []string{"Peru"}}.IsZero())
	assert.False(t, FilterCriteria{From: time.Now()}.IsZero())
}
