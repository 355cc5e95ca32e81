package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

// GetStockPriceTool reports the most recent daily bar for a symbol.
type GetStockPriceTool struct {
	client *polygon.Client
	now    func() time.Time
}

// NewGetStockPriceTool creates the stock price tool.
func NewGetStockPriceTool(client *polygon.Client) *GetStockPriceTool {
	return &GetStockPriceTool{client: client, now: time.Now}
}

func (t *GetStockPriceTool) Name() string {
	return "GetStockPrice"
}

func (t *GetStockPriceTool) Description() string {
	return "Get the current stock price and daily trading stats for a given symbol (e.g., 'AAPL', 'GOOGL', 'TSLA')."
}

func (t *GetStockPriceTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "symbol",
			Type:        "string",
			Description: "Stock symbol (e.g., 'AAPL', 'GOOGL', 'TSLA')",
			Required:    true,
		},
	}
}

func (t *GetStockPriceTool) Execute(args map[string]any) (string, error) {
	symbol, err := normalizeSymbol(args)
	if err != nil {
		return "", err
	}

	report, err := t.fetch(symbol)
	if err != nil {
		return fmt.Sprintf("❌ Error fetching stock price for %s: %v", symbol, err), nil
	}
	return report, nil
}

func (t *GetStockPriceTool) fetch(symbol string) (string, error) {
	// Go back a few days to ensure we get data (handles weekends/holidays)
	end := t.now()
	start := end.AddDate(0, 0, -5)
	endpoint := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		symbol, start.Format("2006-01-02"), end.Format("2006-01-02"))

	data, err := t.client.Get(context.Background(), endpoint, nil)
	if err != nil {
		return "", err
	}

	status := data.Status()
	results, _ := data.Array("results")
	if (status != "OK" && status != "DELAYED") || len(results) == 0 {
		return fmt.Sprintf("❌ Error: Could not retrieve data for %s.\nStatus: %s\nMessage: %s",
			symbol, status, data.ErrorMessage()), nil
	}

	// Most recent trading day is the last bar
	bar := results[len(results)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "📊 **%s** - %s\n\n", symbol, dateOrNA(bar, "t"))
	b.WriteString("💰 **Price Data:**\n")
	fmt.Fprintf(&b, "• Open: %s\n", moneyOrNA(bar, "o"))
	fmt.Fprintf(&b, "• High: %s\n", moneyOrNA(bar, "h"))
	fmt.Fprintf(&b, "• Low: %s\n", moneyOrNA(bar, "l"))
	fmt.Fprintf(&b, "• Close: %s\n", moneyOrNA(bar, "c"))

	// Change is only shown when both operands are present; a placeholder must
	// never reach the arithmetic below.
	openPrice, haveOpen := bar.Num("o")
	closePrice, haveClose := bar.Num("c")
	if haveOpen && haveClose && openPrice != 0 {
		change := closePrice - openPrice
		changePct := (change / openPrice) * 100
		b.WriteString("\n📈 **Performance:**\n")
		fmt.Fprintf(&b, "Change: $%.2f (%.2f%%) %s\n", change, changePct, directionGlyph(change))
	}

	fmt.Fprintf(&b, "\n📊 **Volume:** %s shares\n", volumeOrNA(bar, "v"))
	b.WriteString("\nℹ️ *Data from most recent trading day*")

	return b.String(), nil
}
