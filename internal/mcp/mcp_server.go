// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/faultline/faultline/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Faultline MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Faultline Reliability Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_recurrent_services ---
	s.AddTool(mcp.NewTool("get_recurrent_services",
		mcp.WithDescription("Analyze the ticket snapshot to find services with recurrent incidents."),
		mcp.WithString("input", mcp.Description("Path to the ticket snapshot CSV (defaults to the configured input).")),
		mcp.WithString("search", mcp.Description("Case-insensitive substring filter on service or client name.")),
		mcp.WithString("reason", mcp.Description("Filter by recurrence reason."), mcp.Enum("criterion_a only", "criterion_b only", "both")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleGetRecurrentServices)

	// --- 2. Tool: get_service_mtbf ---
	s.AddTool(mcp.NewTool("get_service_mtbf",
		mcp.WithDescription("Rank services by mean time between failures over the trailing 30 days, least stable first."),
		mcp.WithString("input", mcp.Description("Path to the ticket snapshot CSV.")),
		mcp.WithString("tier", mcp.Description("Filter by stability tier."), mcp.Enum("Stable", "Moderate", "Unstable", "Critical")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGetServiceMTBF)

	// --- 3. Tool: get_sla_consumption ---
	s.AddTool(mcp.NewTool("get_sla_consumption",
		mcp.WithDescription("Rank services by monthly SLA availability consumption, worst consumers first."),
		mcp.WithString("input", mcp.Description("Path to the ticket snapshot CSV.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGetSLAConsumption)

	// --- 4. Tool: get_daily_alerts ---
	s.AddTool(mcp.NewTool("get_daily_alerts",
		mcp.WithDescription("List services whose incident count this month exceeds the alert threshold."),
		mcp.WithString("input", mcp.Description("Path to the ticket snapshot CSV.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results.")),
	), h.handleGetDailyAlerts)

	return s
}

// StartMCPServer starts the Faultline MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
