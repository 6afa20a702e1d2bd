// Package ingest loads ticket snapshots from export files and adapts them
// into normalized ticket tables.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/faultline/faultline/core"
	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
)

// CSVSource reads a ticket snapshot from a CSV export file.
type CSVSource struct {
	path string
}

var _ contract.TicketSource = &CSVSource{} // Compile-time check

// NewCSVSource returns a source backed by the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Identity returns a fingerprint of the snapshot file. It changes whenever
// the file is replaced or rewritten, which invalidates cached loads.
func (s *CSVSource) Identity(_ context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to stat snapshot file %s: %w", s.path, err)
	}
	return fmt.Sprintf("%s:%d:%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Load reads and normalizes the full snapshot. Any read or parse failure
// is terminal; analysis never runs on partial data.
func (s *CSVSource) Load(ctx context.Context) (schema.TicketTable, error) {
	if err := ctx.Err(); err != nil {
		return schema.TicketTable{}, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return schema.TicketTable{}, fmt.Errorf("failed to open snapshot file %s: %w", s.path, err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Ragged rows are padded during normalization

	records, err := reader.ReadAll()
	if err != nil {
		return schema.TicketTable{}, fmt.Errorf("failed to parse snapshot file %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return schema.TicketTable{}, fmt.Errorf("snapshot file %s has no header row", s.path)
	}

	raw := core.RawTable{
		Headers: records[0],
		Rows:    records[1:],
	}
	return core.Normalize(raw), nil
}
