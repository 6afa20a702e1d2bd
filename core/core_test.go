package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func orchestrationConfig() *contract.Config {
	return &contract.Config{
		ReferenceTime:      testNow,
		ResultLimit:        contract.DefaultResultLimit,
		MonthThreshold:     2,
		TrimesterThreshold: 2,
		SLABudgetMinutes:   DefaultSLABudgetMinutes,
		SecondsCutoff:      DefaultSecondsCutoff,
	}
}

func TestGetRecurrenceResults(t *testing.T) {
	ctx := context.Background()

	// Create mock source
	src := &contract.MockTicketSource{}
	table := ticketTable(recurrenceTestCols,
		monthTicketAt("svc-1", 3), monthTicketAt("svc-1", 10), monthTicketAt("svc-1", 15),
		monthTicketAt("svc-2", 4),
	)
	src.On("Load", ctx).Return(table, nil)

	// Execute
	records, err := GetRecurrenceResults(ctx, orchestrationConfig(), src)

	// Assert
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "svc-1", records[0].ServiceID)
	assert.True(t, records[0].IsRecurrent)
	assert.False(t, records[1].IsRecurrent)

	src.AssertExpectations(t)
}

func TestGetRecurrenceResultsAppliesViewFilters(t *testing.T) {
	ctx := context.Background()

	src := &contract.MockTicketSource{}
	table := ticketTable(recurrenceTestCols,
		monthTicketAt("fiber-1", 3), monthTicketAt("fiber-1", 10), monthTicketAt("fiber-1", 15),
		monthTicketAt("mpls-2", 3), monthTicketAt("mpls-2", 10), monthTicketAt("mpls-2", 15),
	)
	src.On("Load", ctx).Return(table, nil)

	cfg := orchestrationConfig()
	cfg.SearchQuery = "fiber"

	records, err := GetRecurrenceResults(ctx, cfg, src)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "fiber-1", records[0].ServiceID)
}

func TestGetMTBFResults(t *testing.T) {
	ctx := context.Background()

	src := &contract.MockTicketSource{}
	table := ticketTable(mtbfTestCols,
		schema.Ticket{ServiceID: "svc-1", CreatedAt: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)},
		schema.Ticket{ServiceID: "svc-1", CreatedAt: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)},
	)
	src.On("Load", ctx).Return(table, nil)

	records, err := GetMTBFResults(ctx, orchestrationConfig(), src)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 5.0, records[0].MTBFDays)
}

func TestGetAvailabilityResults(t *testing.T) {
	ctx := context.Background()

	src := &contract.MockTicketSource{}
	table := ticketTable(availTestCols, downtimeTicket("svc-1", 5, 43.8))
	src.On("Load", ctx).Return(table, nil)

	records, err := GetAvailabilityResults(ctx, orchestrationConfig(), src)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, 50.0, records[0].SLAConsumption)
}

func TestGetAlertResults(t *testing.T) {
	ctx := context.Background()

	src := &contract.MockTicketSource{}
	table := ticketTable(recurrenceTestCols,
		monthTicketAt("svc-1", 3), monthTicketAt("svc-1", 10), monthTicketAt("svc-1", 15),
	)
	src.On("Load", ctx).Return(table, nil)

	alerts, err := GetAlertResults(ctx, orchestrationConfig(), src)
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)
	assert.Equal(t, 3, alerts[0].CountMonth)
}

func TestGetResultsLoadFailureIsTerminal(t *testing.T) {
	ctx := context.Background()

	src := &contract.MockTicketSource{}
	src.On("Load", ctx).Return(schema.TicketTable{}, errors.New("corrupt snapshot"))

	_, err := GetRecurrenceResults(ctx, orchestrationConfig(), src)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corrupt snapshot")
}

func TestGetResultsSchemaGapSurfaces(t *testing.T) {
	ctx := context.Background()

	// Downtime column absent: availability declines, recurrence still works.
	src := &contract.MockTicketSource{}
	table := ticketTable([]schema.Column{schema.ColServiceID, schema.ColCreatedAt},
		monthTicketAt("svc-1", 3),
	)
	src.On("Load", mock.Anything).Return(table, nil)

	_, err := GetAvailabilityResults(ctx, orchestrationConfig(), src)
	var gap *schema.SchemaError
	assert.True(t, errors.As(err, &gap))

	_, err = GetRecurrenceResults(ctx, orchestrationConfig(), src)
	assert.NoError(t, err)
}
