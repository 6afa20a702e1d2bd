// Package parquet provides data structures and functions for exporting
// reliability analysis data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/faultline/faultline/schema"
	"github.com/parquet-go/parquet-go"
)

// RecurrenceRow is the Parquet row shape for the recurrence report.
type RecurrenceRow struct {
	Rank       int32  `parquet:"rank,snappy"`
	ServiceID  string `parquet:"service_id,snappy"`
	Client     string `parquet:"client,snappy"`
	CountMonth int32  `parquet:"count_month,snappy"`
	Count30d   int32  `parquet:"count_30d,snappy"`
	Count90d   int32  `parquet:"count_90d,snappy"`
	Reason     string `parquet:"reason,snappy"`
}

// MTBFRow is the Parquet row shape for the stability ranking.
type MTBFRow struct {
	Rank      int32   `parquet:"rank,snappy"`
	ServiceID string  `parquet:"service_id,snappy"`
	Client    string  `parquet:"client,snappy"`
	MTBFDays  float64 `parquet:"mtbf_days,snappy"`
	Failures  int32   `parquet:"failures,snappy"`
	Tier      string  `parquet:"tier,snappy"`
}

// AvailabilityRow is the Parquet row shape for the SLA consumption ranking.
type AvailabilityRow struct {
	Rank            int32   `parquet:"rank,snappy"`
	ServiceID       string  `parquet:"service_id,snappy"`
	Client          string  `parquet:"client,snappy"`
	DowntimeMinutes float64 `parquet:"downtime_minutes,snappy"`
	Tickets         int32   `parquet:"tickets,snappy"`
	SLAConsumption  float64 `parquet:"sla_consumption,snappy"`
	Tier            string  `parquet:"tier,snappy"`
}

// AlertRow is the Parquet row shape for the daily alert list.
type AlertRow struct {
	Rank       int32  `parquet:"rank,snappy"`
	ServiceID  string `parquet:"service_id,snappy"`
	Client     string `parquet:"client,snappy"`
	CountMonth int32  `parquet:"count_month,snappy"`
}

// writeParquet writes rows to outputPath using struct schema inference.
// The schema is automatically derived from the row struct tags.
func writeParquet[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteRecurrence exports the recurrence report to a Parquet file.
func WriteRecurrence(records []schema.ServiceRecurrence, outputPath string) error {
	rows := make([]RecurrenceRow, len(records))
	for i, r := range records {
		rows[i] = RecurrenceRow{
			Rank:       int32(i + 1),
			ServiceID:  r.ServiceID,
			Client:     r.Client,
			CountMonth: int32(r.CountMonth),
			Count30d:   int32(r.Count30d),
			Count90d:   int32(r.Count90d),
			Reason:     string(r.Reason),
		}
	}
	return writeParquet(rows, outputPath)
}

// WriteMTBF exports the stability ranking to a Parquet file.
func WriteMTBF(records []schema.ServiceMTBF, outputPath string) error {
	rows := make([]MTBFRow, len(records))
	for i, r := range records {
		rows[i] = MTBFRow{
			Rank:      int32(i + 1),
			ServiceID: r.ServiceID,
			Client:    r.Client,
			MTBFDays:  r.MTBFDays,
			Failures:  int32(r.Failures),
			Tier:      string(r.Tier),
		}
	}
	return writeParquet(rows, outputPath)
}

// WriteAvailability exports the SLA consumption ranking to a Parquet file.
func WriteAvailability(records []schema.ServiceAvailability, outputPath string) error {
	rows := make([]AvailabilityRow, len(records))
	for i, r := range records {
		rows[i] = AvailabilityRow{
			Rank:            int32(i + 1),
			ServiceID:       r.ServiceID,
			Client:          r.Client,
			DowntimeMinutes: r.DowntimeMinutes,
			Tickets:         int32(r.Tickets),
			SLAConsumption:  r.SLAConsumption,
			Tier:            string(r.Tier),
		}
	}
	return writeParquet(rows, outputPath)
}

// WriteAlerts exports the daily alert list to a Parquet file.
func WriteAlerts(alerts []schema.ServiceAlert, outputPath string) error {
	rows := make([]AlertRow, len(alerts))
	for i, a := range alerts {
		rows[i] = AlertRow{
			Rank:       int32(i + 1),
			ServiceID:  a.ServiceID,
			Client:     a.Client,
			CountMonth: int32(a.CountMonth),
		}
	}
	return writeParquet(rows, outputPath)
}
