// Package cmd defines the command-line interface for faultline.
package cmd

import (
	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(recurrenceCmd)
	rootCmd.AddCommand(mtbfCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(alertsCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to the ticket snapshot CSV")
	rootCmd.PersistentFlags().String("now", "", "Reference time in ISO8601, date-only, or time ago (defaults to wall clock)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("country", "", "Comma-separated list of origin countries to include")
	rootCmd.PersistentFlags().String("client", "", "Comma-separated list of clients to include")
	rootCmd.PersistentFlags().String("from", "", "Earliest creation date to include (YYYY-MM-DD)")
	rootCmd.PersistentFlags().String("to", "", "Latest creation date to include (YYYY-MM-DD)")
	rootCmd.PersistentFlags().Int("month-threshold", 2, "Monthly incident count above which a service is recurrent")
	rootCmd.PersistentFlags().Int("trimester-threshold", 2, "90-day incident count above which a service is recurrent")
	rootCmd.PersistentFlags().Float64("sla-budget", 87.6, "Monthly downtime allowance in minutes")
	rootCmd.PersistentFlags().Float64("seconds-cutoff", 10000, "Median downtime above this is treated as seconds and converted")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cache-ttl", "5m", "How long a cached snapshot load stays fresh")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of recurrenceCmd to Viper
	recurrenceCmd.Flags().StringP("search", "q", "", "Filter results by service or client name substring")
	recurrenceCmd.Flags().String("reason", "", "Filter by recurrence reason: 'criterion_a only', 'criterion_b only', 'both'")
	if err := viper.BindPFlags(recurrenceCmd.Flags()); err != nil {
		contract.LogFatal("Error binding recurrence flags", err)
	}

	// Bind all flags of mtbfCmd to Viper
	mtbfCmd.Flags().String("tier", "", "Filter by stability tier: Stable, Moderate, Unstable, Critical")
	if err := viper.BindPFlags(mtbfCmd.Flags()); err != nil {
		contract.LogFatal("Error binding mtbf flags", err)
	}
}
