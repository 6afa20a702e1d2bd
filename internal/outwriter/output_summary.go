package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
)

// WriteSummary outputs the headline counts for the loaded snapshot.
// Summary has no tabular shape, so text output is plain key/value lines
// and parquet falls back to JSON.
func WriteSummary(s schema.Summary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut, schema.ParquetOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, s)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryCSV(w, s)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSummaryText(w, s)
		}, "Wrote summary")
	}
}

func writeSummaryText(w io.Writer, s schema.Summary) error {
	lines := []struct {
		label string
		value int
	}{
		{"Total tickets", s.TotalTickets},
		{"Tickets this month", s.TicketsThisMonth},
		{"Unique services", s.UniqueServices},
		{"Unique clients", s.UniqueClients},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "%-20s %d\n", line.label, line.value); err != nil {
			return err
		}
	}
	return nil
}

func writeSummaryCSV(w io.Writer, s schema.Summary) error {
	header := []string{"Total Tickets", "Tickets This Month", "Unique Services", "Unique Clients"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		return cw.Write([]string{
			strconv.Itoa(s.TotalTickets),
			strconv.Itoa(s.TicketsThisMonth),
			strconv.Itoa(s.UniqueServices),
			strconv.Itoa(s.UniqueClients),
		})
	})
}
