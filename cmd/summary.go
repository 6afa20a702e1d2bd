package cmd

import (
	"github.com/faultline/faultline/core"
	"github.com/spf13/cobra"
)

// summaryCmd shows headline counts for a snapshot.
var summaryCmd = &cobra.Command{
	Use:   "summary [snapshot.csv]",
	Short: "Show headline counts for a ticket snapshot.",
	Long: `Print the headline counts for a snapshot: total tickets, tickets this
calendar month, unique services and unique clients.

Useful as a sanity check that a fresh export loaded and normalized the
way you expect before digging into the analyses.

Examples:
  # Quick look at a fresh export
  faultline summary tickets.csv

  # Counts for a single country
  faultline summary tickets.csv --country "Colombia"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis("summary", func() error {
			return core.ExecuteSummary(rootCtx, cfg, newSource())
		})
	},
}
