package cmd

import (
	"github.com/faultline/faultline/core"
	"github.com/spf13/cobra"
)

// recurrenceCmd performs recurrence classification.
var recurrenceCmd = &cobra.Command{
	Use:   "recurrence [snapshot.csv]",
	Short: "Show services with recurrent incidents.",
	Long: `Classify every service by incident recurrence and rank the recurrent ones.

A service is recurrent when it crosses either of two bars:
- More incidents this calendar month than the monthly threshold
- More incidents in the trailing 90 days than the trimester threshold,
  with at least one incident this month

Each recurrent service carries a reason tag showing which bar it crossed,
helping you:
- Separate chronic offenders from one-off spikes
- Catch services whose problems span month boundaries
- Prioritize remediation by monthly incident volume

Examples:
  # Rank recurrent services for a snapshot
  faultline recurrence tickets.csv

  # Only services recurrent on the 90-day window
  faultline recurrence tickets.csv --reason "criterion_b only"

  # Narrow to one client and export for tracking
  faultline recurrence tickets.csv --client "Acme" --output csv --output-file recurrent.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis("recurrence analysis", func() error {
			return core.ExecuteRecurrence(rootCtx, cfg, newSource())
		})
	},
}
