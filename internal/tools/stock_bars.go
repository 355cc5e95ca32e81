package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

const (
	defaultBarsLimit    = 10
	defaultBarsTimespan = "day"
)

// validTimespans are the Polygon aggregate bucket sizes.
var validTimespans = map[string]bool{
	"minute":  true,
	"hour":    true,
	"day":     true,
	"week":    true,
	"month":   true,
	"quarter": true,
	"year":    true,
}

// GetStockBarsTool fetches historical OHLCV bars for a symbol.
type GetStockBarsTool struct {
	client *polygon.Client
	now    func() time.Time
}

// NewGetStockBarsTool creates the historical bars tool.
func NewGetStockBarsTool(client *polygon.Client) *GetStockBarsTool {
	return &GetStockBarsTool{client: client, now: time.Now}
}

func (t *GetStockBarsTool) Name() string {
	return "GetStockBars"
}

func (t *GetStockBarsTool) Description() string {
	return "Get historical price bars for a stock over a trailing 30-day window."
}

func (t *GetStockBarsTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "symbol",
			Type:        "string",
			Description: "Stock symbol (e.g., 'AAPL', 'GOOGL', 'TSLA')",
			Required:    true,
		},
		{
			Name:        "timespan",
			Type:        "string",
			Description: "Timespan for bars (minute, hour, day, week, month, quarter, year)",
			Required:    false,
			Default:     defaultBarsTimespan,
		},
		{
			Name:        "limit",
			Type:        "number",
			Description: "Number of bars to return",
			Required:    false,
			Default:     defaultBarsLimit,
		},
	}
}

func (t *GetStockBarsTool) Execute(args map[string]any) (string, error) {
	symbol, err := normalizeSymbol(args)
	if err != nil {
		return "", err
	}

	timespan := defaultBarsTimespan
	if v, ok := args["timespan"].(string); ok && strings.TrimSpace(v) != "" {
		timespan = strings.ToLower(strings.TrimSpace(v))
	}
	if !validTimespans[timespan] {
		return fmt.Sprintf("Error: invalid timespan '%s' (expected minute, hour, day, week, month, quarter or year)", timespan), nil
	}

	limit := limitArg(args, "limit", defaultBarsLimit)

	report, err := t.fetch(symbol, timespan, limit)
	if err != nil {
		return fmt.Sprintf("Error fetching stock bars: %v", err), nil
	}
	return report, nil
}

func (t *GetStockBarsTool) fetch(symbol, timespan string, limit int) (string, error) {
	end := t.now()
	start := end.AddDate(0, 0, -30)
	endpoint := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/%s/%s/%s",
		symbol, timespan, start.Format("2006-01-02"), end.Format("2006-01-02"))
	params := map[string]string{"limit": strconv.Itoa(limit)}

	data, err := t.client.Get(context.Background(), endpoint, params)
	if err != nil {
		return "", err
	}

	status := data.Status()
	bars, _ := data.Array("results")
	if (status != "OK" && status != "DELAYED") || len(bars) == 0 {
		return fmt.Sprintf("Error: Could not retrieve bars for %s", symbol), nil
	}

	// Keep the most recent bars; upstream order is chronological
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent %s bars for %s:\n\n", timespan, symbol)
	for _, bar := range bars {
		fmt.Fprintf(&b, "Date: %s\n", dateTimeOrNA(bar, "t"))
		fmt.Fprintf(&b, "Open: %s | High: %s | Low: %s | Close: %s\n",
			moneyOrNA(bar, "o"), moneyOrNA(bar, "h"), moneyOrNA(bar, "l"), moneyOrNA(bar, "c"))
		fmt.Fprintf(&b, "Volume: %s shares\n\n", volumeOrNA(bar, "v"))
	}

	return b.String(), nil
}
