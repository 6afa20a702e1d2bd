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

// WriteAvailability outputs the SLA consumption ranking, worst consumers
// first. tierCounts covers the full ranking, before the top-N slice.
func WriteAvailability(records []schema.ServiceAvailability, tierCounts map[schema.RiskTier]int, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAvailabilityJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAvailabilityCSV(w, records, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteAvailability(records, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAvailabilityTable(w, records, tierCounts, cfg, duration)
		}, "Wrote table")
	}
}

func writeAvailabilityTable(w io.Writer, records []schema.ServiceAvailability, tierCounts map[schema.RiskTier]int, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Service", "Client", "Downtime (min)", "Tickets", "SLA Used (%)", "Tier"})
	table.Configure(func(tc *tablewriter.Config) {
		tc.Row.Alignment.Global = tw.AlignRight
	})

	fmtFloat, _ := createFormatters(cfg.Precision)
	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for i, r := range records {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(r.ServiceID, nameWidth),
			truncateName(r.Client, nameWidth),
			fmtFloat(r.DowntimeMinutes),
			strconv.Itoa(r.Tickets),
			fmtFloat(r.SLAConsumption),
			contract.RiskLabel(r.Tier, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Tiers: %d critical, %d risk, %d attention, %d safe\n",
		tierCounts[schema.CriticalSLA], tierCounts[schema.RiskHighTier],
		tierCounts[schema.AttentionTier], tierCounts[schema.SafeTier]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeAvailabilityCSV(w io.Writer, records []schema.ServiceAvailability, precision int) error {
	header := []string{
		"Rank",
		"Service",
		"Client",
		"Downtime Minutes",
		"Tickets This Month",
		"SLA Consumption Percent",
		"Risk Tier",
	}
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range records {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ServiceID,
				r.Client,
				fmtFloat(r.DowntimeMinutes),
				strconv.Itoa(r.Tickets),
				fmtFloat(r.SLAConsumption),
				string(r.Tier),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAvailabilityJSON(w io.Writer, records []schema.ServiceAvailability) error {
	type jsonRecord struct {
		Rank int `json:"rank"`
		schema.ServiceAvailability
	}
	output := make([]jsonRecord, len(records))
	for i, r := range records {
		output[i] = jsonRecord{Rank: i + 1, ServiceAvailability: r}
	}
	return writeJSON(w, output)
}
