package cmd

import (
	"github.com/faultline/faultline/core"
	"github.com/spf13/cobra"
)

// mtbfCmd performs mean-time-between-failures ranking.
var mtbfCmd = &cobra.Command{
	Use:   "mtbf [snapshot.csv]",
	Short: "Rank services by mean time between failures.",
	Long: `Compute the mean time between failures over the trailing 30 days and
rank services from least to most stable.

A service needs at least two incidents in the window to get a figure;
quieter services are left out rather than given a misleading number.
Each ranked service carries a stability tier:
- Stable:   more than 30 days between failures
- Moderate: 15 to 30 days
- Unstable: 7 to 15 days
- Critical: under 7 days

Examples:
  # Rank services, least stable first
  faultline mtbf tickets.csv

  # Only the services failing weekly or worse
  faultline mtbf tickets.csv --tier Critical

  # Export the full ranking
  faultline mtbf tickets.csv --output json --output-file mtbf.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis("mtbf analysis", func() error {
			return core.ExecuteMTBF(rootCtx, cfg, newSource())
		})
	},
}
