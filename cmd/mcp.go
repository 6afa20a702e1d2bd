package cmd

import (
	"github.com/faultline/faultline/internal/iocache"
	"github.com/faultline/faultline/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Faultline MCP server",
	Long:  `Launch an MCP server that allows AI agents to run reliability analyses via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Table and footer output would pollute stdio, which is used for
		// the protocol, so handlers return JSON payloads directly.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, iocache.Manager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
