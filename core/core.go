// Package core has the reliability analyzers: recurrence, MTBF,
// availability and the daily alert filter. Everything here is a pure
// function of (ticket table, reference time); I/O lives in the ingestion
// collaborator behind contract.TicketSource.
package core

import (
	"context"
	"time"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/internal/outwriter"
	"github.com/faultline/faultline/schema"
)

// fetchFiltered loads the snapshot and applies the per-run filter criteria.
// An ingestion failure is terminal; nothing downstream runs on partial data.
func fetchFiltered(ctx context.Context, cfg *contract.Config, src contract.TicketSource) (schema.TicketTable, error) {
	table, err := src.Load(ctx)
	if err != nil {
		return schema.TicketTable{}, err
	}
	return ApplyFilter(table, cfg.Filter()), nil
}

// GetRecurrenceResults computes the recurrence classification with the
// configured view filters applied. Exposed for the CLI and MCP surfaces.
func GetRecurrenceResults(ctx context.Context, cfg *contract.Config, src contract.TicketSource) ([]schema.ServiceRecurrence, error) {
	table, err := fetchFiltered(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	records, err := AnalyzeRecurrence(table, cfg.ReferenceTime, cfg.MonthThreshold, cfg.TrimesterThreshold)
	if err != nil {
		return nil, err
	}
	return FilterRecurrence(records, cfg.SearchQuery, cfg.Reasons), nil
}

// GetMTBFResults computes the MTBF ranking with the configured tier filter applied.
func GetMTBFResults(ctx context.Context, cfg *contract.Config, src contract.TicketSource) ([]schema.ServiceMTBF, error) {
	table, err := fetchFiltered(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	records, err := AnalyzeMTBF(table, cfg.ReferenceTime)
	if err != nil {
		return nil, err
	}
	return FilterMTBFByTier(records, cfg.Tiers), nil
}

// GetAvailabilityResults computes the SLA consumption ranking.
func GetAvailabilityResults(ctx context.Context, cfg *contract.Config, src contract.TicketSource) ([]schema.ServiceAvailability, error) {
	table, err := fetchFiltered(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return AnalyzeAvailability(table, cfg.ReferenceTime, cfg.SLABudgetMinutes, cfg.SecondsCutoff)
}

// GetAlertResults computes the daily alert list.
func GetAlertResults(ctx context.Context, cfg *contract.Config, src contract.TicketSource) ([]schema.ServiceAlert, error) {
	table, err := fetchFiltered(ctx, cfg, src)
	if err != nil {
		return nil, err
	}
	return DailyAlerts(table, cfg.ReferenceTime, cfg.MonthThreshold)
}

// ExecuteRecurrence runs the recurrence analysis and writes the recurrent
// services. It serves as the main entry point for the 'recurrence' command.
func ExecuteRecurrence(ctx context.Context, cfg *contract.Config, src contract.TicketSource) error {
	start := time.Now()
	records, err := GetRecurrenceResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	recurrent, stable := PartitionRecurrence(records)
	shown := recurrent
	if len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}
	return outwriter.WriteRecurrence(shown, len(recurrent), len(stable), cfg, time.Since(start))
}

// ExecuteMTBF runs the MTBF analysis and writes the ranking, least stable first.
func ExecuteMTBF(ctx context.Context, cfg *contract.Config, src contract.TicketSource) error {
	start := time.Now()
	records, err := GetMTBFResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	tierCounts := schema.CountStabilityTiers(records)
	if len(records) > cfg.ResultLimit {
		records = records[:cfg.ResultLimit]
	}
	return outwriter.WriteMTBF(records, tierCounts, cfg, time.Since(start))
}

// ExecuteAvailability runs the SLA consumption analysis and writes the
// worst consumers first. The top-N view is a plain slice of the ranking.
func ExecuteAvailability(ctx context.Context, cfg *contract.Config, src contract.TicketSource) error {
	start := time.Now()
	records, err := GetAvailabilityResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	tierCounts := schema.CountRiskTiers(records)
	shown := TopWorst(records, cfg.ResultLimit)
	return outwriter.WriteAvailability(shown, tierCounts, cfg, time.Since(start))
}

// ExecuteAlerts runs the daily alert filter and writes the alert list.
func ExecuteAlerts(ctx context.Context, cfg *contract.Config, src contract.TicketSource) error {
	start := time.Now()
	alerts, err := GetAlertResults(ctx, cfg, src)
	if err != nil {
		return err
	}
	if len(alerts) > cfg.ResultLimit {
		alerts = alerts[:cfg.ResultLimit]
	}
	return outwriter.WriteAlerts(alerts, cfg, time.Since(start))
}

// ExecuteSummary writes the headline counts for the filtered snapshot.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, src contract.TicketSource) error {
	table, err := fetchFiltered(ctx, cfg, src)
	if err != nil {
		return err
	}
	return outwriter.WriteSummary(Summarize(table, cfg.ReferenceTime), cfg)
}
