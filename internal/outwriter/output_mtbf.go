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

// WriteMTBF outputs the stability ranking, least stable services first.
// tierCounts covers the full ranking, before the display limit was applied.
func WriteMTBF(records []schema.ServiceMTBF, tierCounts map[schema.StabilityTier]int, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMTBFJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMTBFCSV(w, records, cfg.Precision)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.WriteMTBF(records, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMTBFTable(w, records, tierCounts, cfg, duration)
		}, "Wrote table")
	}
}

func writeMTBFTable(w io.Writer, records []schema.ServiceMTBF, tierCounts map[schema.StabilityTier]int, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Service", "Client", "MTBF (days)", "Failures", "Tier"})
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
			fmtFloat(r.MTBFDays),
			strconv.Itoa(r.Failures),
			contract.StabilityLabel(r.Tier, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Tiers: %d critical, %d unstable, %d moderate, %d stable\n",
		tierCounts[schema.CriticalMTBF], tierCounts[schema.UnstableTier],
		tierCounts[schema.ModerateTier], tierCounts[schema.StableTier]); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend)
	return err
}

func writeMTBFCSV(w io.Writer, records []schema.ServiceMTBF, precision int) error {
	header := []string{
		"Rank",
		"Service",
		"Client",
		"MTBF Days",
		"Failures Last 30d",
		"Stability Tier",
	}
	fmtFloat, _ := createFormatters(precision)
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range records {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ServiceID,
				r.Client,
				fmtFloat(r.MTBFDays),
				strconv.Itoa(r.Failures),
				string(r.Tier),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeMTBFJSON(w io.Writer, records []schema.ServiceMTBF) error {
	type jsonRecord struct {
		Rank int `json:"rank"`
		schema.ServiceMTBF
	}
	output := make([]jsonRecord, len(records))
	for i, r := range records {
		output[i] = jsonRecord{Rank: i + 1, ServiceMTBF: r}
	}
	return writeJSON(w, output)
}
