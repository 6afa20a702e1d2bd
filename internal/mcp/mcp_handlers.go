package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/faultline/faultline/core"
	"github.com/faultline/faultline/internal/contract"
	"github.com/faultline/faultline/internal/ingest"
	"github.com/faultline/faultline/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// sourceFor builds the snapshot source for a per-call config, reusing the
// shared cache store when one is configured.
func (h *toolHandler) sourceFor(cfg *contract.Config) contract.TicketSource {
	var store contract.CacheStore
	if h.mgr != nil {
		store = h.mgr.GetTicketStore()
	}
	return ingest.NewCachedSource(ingest.NewCSVSource(cfg.InputPath), store, cfg.CacheTTL)
}

func (h *toolHandler) handleGetRecurrentServices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if q := request.GetString("search", ""); q != "" {
		cfg.SearchQuery = q
	}
	if r := request.GetString("reason", ""); r != "" {
		cfg.Reasons = []schema.RecurrenceReason{schema.RecurrenceReason(r)}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	records, err := core.GetRecurrenceResults(ctx, cfg, h.sourceFor(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("recurrence analysis failed: %v", err)), nil
	}

	recurrent, _ := core.PartitionRecurrence(records)
	if len(recurrent) > cfg.ResultLimit {
		recurrent = recurrent[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(recurrent, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetServiceMTBF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if t := request.GetString("tier", ""); t != "" {
		cfg.Tiers = []schema.StabilityTier{schema.StabilityTier(t)}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	records, err := core.GetMTBFResults(ctx, cfg, h.sourceFor(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mtbf analysis failed: %v", err)), nil
	}

	if len(records) > cfg.ResultLimit {
		records = records[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(records, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetSLAConsumption(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	records, err := core.GetAvailabilityResults(ctx, cfg, h.sourceFor(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("availability analysis failed: %v", err)), nil
	}

	shown := core.TopWorst(records, cfg.ResultLimit)
	jsonData, _ := json.MarshalIndent(shown, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDailyAlerts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("input", ""); p != "" {
		cfg.InputPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	alerts, err := core.GetAlertResults(ctx, cfg, h.sourceFor(cfg))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("alert analysis failed: %v", err)), nil
	}

	if len(alerts) > cfg.ResultLimit {
		alerts = alerts[:cfg.ResultLimit]
	}
	jsonData, _ := json.MarshalIndent(alerts, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}
