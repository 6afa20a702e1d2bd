package cmd

import (
	"github.com/faultline/faultline/core"
	"github.com/spf13/cobra"
)

// availabilityCmd performs SLA consumption ranking.
var availabilityCmd = &cobra.Command{
	Use:   "availability [snapshot.csv]",
	Short: "Rank services by monthly SLA consumption.",
	Long: `Sum attributable downtime for the current month and express it as a
percentage of the monthly allowance, worst consumers first.

Downtime recorded in seconds is detected from the month's median value
and converted to minutes before summing. Each service carries a risk tier:
- Safe:      under 60% of the allowance consumed
- Attention: 60% to 80%
- Risk:      80% to 95%
- Critical:  95% and above

Examples:
  # Rank the worst SLA consumers this month
  faultline availability tickets.csv

  # Use a custom monthly allowance of two hours
  faultline availability tickets.csv --sla-budget 120

  # Export the ranking for reporting
  faultline availability tickets.csv --output csv --output-file sla.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis("availability analysis", func() error {
			return core.ExecuteAvailability(rootCtx, cfg, newSource())
		})
	},
}
