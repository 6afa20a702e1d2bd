package cmd

import (
	"github.com/faultline/faultline/core"
	"github.com/spf13/cobra"
)

// alertsCmd lists services over the monthly alert threshold.
var alertsCmd = &cobra.Command{
	Use:   "alerts [snapshot.csv]",
	Short: "List services over the monthly incident threshold.",
	Long: `Produce the daily alert list: every service whose incident count this
calendar month exceeds the threshold, busiest services first.

This is the view to feed a morning report or a chat webhook. It shares
the monthly threshold with the recurrence analysis, so a service on the
alert list is always at least criterion-A recurrent.

Examples:
  # Today's alert list
  faultline alerts tickets.csv

  # Lower the bar to a single incident
  faultline alerts tickets.csv --month-threshold 1

  # Machine-readable output for a webhook
  faultline alerts tickets.csv --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runAnalysis("alert analysis", func() error {
			return core.ExecuteAlerts(rootCtx, cfg, newSource())
		})
	},
}
