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

// WriteRecurrence outputs the recurrent-service report, dispatching based
// on the configured output format. totalRecurrent and totalStable cover the
// full classification, before the display limit was applied.
func WriteRecurrence(records []schema.ServiceRecurrence, totalRecurrent, totalStable int, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecurrenceJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecurrenceCSV(w, records)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteRecurrence(records, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecurrenceTable(w, records, totalRecurrent, totalStable, cfg, duration)
		}, "Wrote table")
	}
}

func writeRecurrenceTable(w io.Writer, records []schema.ServiceRecurrence, totalRecurrent, totalStable int, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Service", "Client", "Reason", "Month", "30d", "90d"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(r.ServiceID, nameWidth),
			truncateName(r.Client, nameWidth),
			contract.ReasonLabel(r.Reason, cfg.UseColors),
			strconv.Itoa(r.CountMonth),
			strconv.Itoa(r.Count30d),
			strconv.Itoa(r.Count90d),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	total := totalRecurrent + totalStable
	pct := 0.0
	if total > 0 {
		pct = float64(totalRecurrent) / float64(total) * 100
	}
	if _, err := fmt.Fprintf(w, "%d recurrent / %d stable services (%.1f%% recurrence)\n", totalRecurrent, totalStable, pct); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeRecurrenceCSV(w io.Writer, records []schema.ServiceRecurrence) error {
	header := []string{
		"Rank",
		"Service",
		"Client",
		"Reason",
		"Incidents This Month",
		"Incidents Last 30d",
		"Incidents Last 90d",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range records {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ServiceID,
				r.Client,
				string(r.Reason),
				strconv.Itoa(r.CountMonth),
				strconv.Itoa(r.Count30d),
				strconv.Itoa(r.Count90d),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeRecurrenceJSON(w io.Writer, records []schema.ServiceRecurrence) error {
	type jsonRecord struct {
		Rank int `json:"rank"`
		schema.ServiceRecurrence
	}
	output := make([]jsonRecord, len(records))
	for i, r := range records {
		output[i] = jsonRecord{Rank: i + 1, ServiceRecurrence: r}
	}
	return writeJSON(w, output)
}
