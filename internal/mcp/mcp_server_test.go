package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faultline/faultline/internal/contract"
	mcp_internal "github.com/faultline/faultline/internal/mcp"
	"github.com/faultline/faultline/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mcpSampleCSV = `Id de Ticket,Servicio afectado,Cliente Customer,Fecha y Hora de creación,Tiempo imputable a Ufinet
TK-1,svc-1,Acme,2025-08-05 10:00:00,30
TK-2,svc-1,Acme,2025-08-10 10:00:00,30
TK-3,svc-1,Acme,2025-08-15 10:00:00,30
TK-4,svc-2,Globex,2025-08-12 09:00:00,10
`

func mcpTestConfig(t *testing.T) *contract.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tickets.csv")
	require.NoError(t, os.WriteFile(path, []byte(mcpSampleCSV), 0o644))

	return &contract.Config{
		InputPath:          path,
		ReferenceTime:      time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
		ResultLimit:        contract.DefaultResultLimit,
		Precision:          contract.DefaultPrecision,
		MonthThreshold:     2,
		TrimesterThreshold: 2,
		SLABudgetMinutes:   87.6,
		SecondsCutoff:      10000,
		CacheBackend:       schema.NoneBackend,
	}
}

func TestMCPServerTools(t *testing.T) {
	// A nil manager means every call loads the snapshot directly
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(mcpTestConfig(t), mgr)

	ctx := context.Background()

	t.Run("get_recurrent_services returns flagged services", func(t *testing.T) {
		tool := s.GetTool("get_recurrent_services")
		require.NotNil(t, tool, "Tool get_recurrent_services should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_recurrent_services"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var records []schema.ServiceRecurrence
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "svc-1", records[0].ServiceID)
		assert.Equal(t, schema.ReasonBoth, records[0].Reason)
	})

	t.Run("get_service_mtbf honors tier filter", func(t *testing.T) {
		tool := s.GetTool("get_service_mtbf")
		require.NotNil(t, tool, "Tool get_service_mtbf should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_service_mtbf",
				Arguments: map[string]any{"tier": "Critical"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var records []schema.ServiceMTBF
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "svc-1", records[0].ServiceID)
		assert.Equal(t, 5.0, records[0].MTBFDays)
	})

	t.Run("get_sla_consumption ranks by consumption", func(t *testing.T) {
		tool := s.GetTool("get_sla_consumption")
		require.NotNil(t, tool, "Tool get_sla_consumption should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{Name: "get_sla_consumption"},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var records []schema.ServiceAvailability
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &records))
		require.Len(t, records, 2)
		assert.Equal(t, "svc-1", records[0].ServiceID)
		assert.Equal(t, 90.0, records[0].DowntimeMinutes)
	})

	t.Run("get_daily_alerts respects limit", func(t *testing.T) {
		tool := s.GetTool("get_daily_alerts")
		require.NotNil(t, tool, "Tool get_daily_alerts should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_daily_alerts",
				Arguments: map[string]any{"limit": 1.0},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		require.False(t, res.IsError)

		var alerts []schema.ServiceAlert
		require.NoError(t, json.Unmarshal([]byte(res.Content[0].(mcp.TextContent).Text), &alerts))
		require.Len(t, alerts, 1)
		assert.Equal(t, "svc-1", alerts[0].ServiceID)
		assert.Equal(t, 3, alerts[0].CountMonth)
	})

	t.Run("missing snapshot reports a tool error", func(t *testing.T) {
		tool := s.GetTool("get_recurrent_services")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_recurrent_services",
				Arguments: map[string]any{"input": "/does/not/exist.csv"},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "recurrence analysis failed")
	})
}
