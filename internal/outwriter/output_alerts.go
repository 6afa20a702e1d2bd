package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/internal/parquet"
	"github.com/faultline/faultline/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteAlerts outputs the daily alert list of services over the monthly
// incident threshold.
func WriteAlerts(alerts []schema.ServiceAlert, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertsJSON(w, alerts)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertsCSV(w, alerts)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteAlerts(alerts, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAlertsTable(w, alerts, cfg, duration)
		}, "Wrote table")
	}
}

func writeAlertsTable(w io.Writer, alerts []schema.ServiceAlert, cfg *contract.Config, duration time.Duration) error {
	if len(alerts) == 0 {
		_, err := fmt.Fprintln(w, "No services over the monthly incident threshold.")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Service", "Client", "Incidents This Month"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, a := range alerts {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(a.ServiceID, nameWidth),
			truncateName(a.Client, nameWidth),
			strconv.Itoa(a.CountMonth),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d services over threshold\n", len(alerts)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeAlertsCSV(w io.Writer, alerts []schema.ServiceAlert) error {
	header := []string{"Rank", "Service", "Client", "Incidents This Month"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, a := range alerts {
			rec := []string{
				strconv.Itoa(i + 1),
				a.ServiceID,
				a.Client,
				strconv.Itoa(a.CountMonth),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAlertsJSON(w io.Writer, alerts []schema.ServiceAlert) error {
	type jsonRecord struct {
		Rank int `json:"rank"`
		schema.ServiceAlert
	}
	output := make([]jsonRecord, len(alerts))
	for i, a := range alerts {
		output[i] = jsonRecord{Rank: i + 1, ServiceAlert: a}
	}
	return writeJSON(w, output)
}
