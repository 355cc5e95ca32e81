package tools

import (
	"context"
	"fmt"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

// GetMarketStatusTool reports whether the market is currently open.
type GetMarketStatusTool struct {
	client *polygon.Client
}

// NewGetMarketStatusTool creates the market status tool.
func NewGetMarketStatusTool(client *polygon.Client) *GetMarketStatusTool {
	return &GetMarketStatusTool{client: client}
}

func (t *GetMarketStatusTool) Name() string {
	return "GetMarketStatus"
}

func (t *GetMarketStatusTool) Description() string {
	return "Get current market status and trading hours."
}

func (t *GetMarketStatusTool) Parameters() []ParameterDef {
	return nil
}

func (t *GetMarketStatusTool) Execute(args map[string]any) (string, error) {
	data, err := t.client.Get(context.Background(), "/v1/marketstatus/now", nil)
	if err != nil {
		return fmt.Sprintf("Error fetching market status: %v", err), nil
	}

	market, _ := data.Str("market")
	switch market {
	case "open":
		return "🟢 Market is currently OPEN", nil
	case "closed":
		return "🔴 Market is currently CLOSED", nil
	case "":
		return "Market status: Unknown", nil
	default:
		return fmt.Sprintf("Market status: %s", market), nil
	}
}
