package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

// GetStockDetailsTool looks up company reference details for a symbol.
type GetStockDetailsTool struct {
	client *polygon.Client
}

// NewGetStockDetailsTool creates the stock details tool.
func NewGetStockDetailsTool(client *polygon.Client) *GetStockDetailsTool {
	return &GetStockDetailsTool{client: client}
}

func (t *GetStockDetailsTool) Name() string {
	return "GetStockDetails"
}

func (t *GetStockDetailsTool) Description() string {
	return "Get detailed company information and ticker details for a stock symbol."
}

func (t *GetStockDetailsTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "symbol",
			Type:        "string",
			Description: "Stock symbol (e.g., 'AAPL', 'GOOGL', 'TSLA')",
			Required:    true,
		},
	}
}

func (t *GetStockDetailsTool) Execute(args map[string]any) (string, error) {
	symbol, err := normalizeSymbol(args)
	if err != nil {
		return "", err
	}

	report, err := t.fetch(symbol)
	if err != nil {
		return fmt.Sprintf("Error fetching stock details: %v", err), nil
	}
	return report, nil
}

func (t *GetStockDetailsTool) fetch(symbol string) (string, error) {
	endpoint := fmt.Sprintf("/v3/reference/tickers/%s", symbol)

	data, err := t.client.Get(context.Background(), endpoint, nil)
	if err != nil {
		return "", err
	}

	ticker, hasResults := data.Object("results")
	if data.Status() != "OK" || !hasResults {
		return fmt.Sprintf("Error: Could not retrieve details for %s", symbol), nil
	}

	marketCap := "N/A"
	if v, ok := ticker.Num("market_cap"); ok {
		marketCap = "$" + humanize.Comma(int64(v))
	}

	active := "N/A"
	if v, ok := ticker.Bool("active"); ok {
		active = fmt.Sprintf("%v", v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", strOrNA(ticker, "name"))
	fmt.Fprintf(&b, "Symbol: %s\n", strOrNA(ticker, "ticker"))
	fmt.Fprintf(&b, "Market: %s\n", strOrNA(ticker, "market"))
	fmt.Fprintf(&b, "Primary Exchange: %s\n", strOrNA(ticker, "primary_exchange"))
	fmt.Fprintf(&b, "Type: %s\n", strOrNA(ticker, "type"))
	fmt.Fprintf(&b, "Currency: %s\n", strOrNA(ticker, "currency_name"))
	fmt.Fprintf(&b, "Active: %s\n", active)
	fmt.Fprintf(&b, "Homepage: %s\n", strOrNA(ticker, "homepage_url"))
	fmt.Fprintf(&b, "Description: %s...\n", truncate(strOrNA(ticker, "description"), 200))
	fmt.Fprintf(&b, "Market Cap: %s\n", marketCap)

	return b.String(), nil
}
