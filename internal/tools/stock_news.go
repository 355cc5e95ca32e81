package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

const defaultNewsLimit = 10

// GetStockNewsTool fetches recent news articles for a symbol.
type GetStockNewsTool struct {
	client *polygon.Client
}

// NewGetStockNewsTool creates the stock news tool.
func NewGetStockNewsTool(client *polygon.Client) *GetStockNewsTool {
	return &GetStockNewsTool{client: client}
}

func (t *GetStockNewsTool) Name() string {
	return "GetStockNews"
}

func (t *GetStockNewsTool) Description() string {
	return "Get recent news articles for a stock symbol, newest first."
}

func (t *GetStockNewsTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "symbol",
			Type:        "string",
			Description: "Stock symbol (e.g., 'AAPL', 'GOOGL', 'TSLA')",
			Required:    true,
		},
		{
			Name:        "limit",
			Type:        "number",
			Description: "Number of news articles to return",
			Required:    false,
			Default:     defaultNewsLimit,
		},
	}
}

func (t *GetStockNewsTool) Execute(args map[string]any) (string, error) {
	symbol, err := normalizeSymbol(args)
	if err != nil {
		return "", err
	}
	limit := limitArg(args, "limit", defaultNewsLimit)

	report, err := t.fetch(symbol, limit)
	if err != nil {
		return fmt.Sprintf("Error fetching stock news: %v", err), nil
	}
	return report, nil
}

func (t *GetStockNewsTool) fetch(symbol string, limit int) (string, error) {
	params := map[string]string{
		"ticker": symbol,
		"limit":  strconv.Itoa(limit),
		"sort":   "published_utc",
		"order":  "desc",
	}

	data, err := t.client.Get(context.Background(), "/v2/reference/news", params)
	if err != nil {
		return "", err
	}

	items, hasResults := data.Array("results")
	if data.Status() != "OK" || !hasResults || len(items) == 0 {
		return fmt.Sprintf("Error: Could not retrieve news for %s", symbol), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recent news for %s:\n\n", symbol)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, strOrNA(item, "title"))
		fmt.Fprintf(&b, "   Author: %s | Published: %s\n", strOrNA(item, "author"), strOrNA(item, "published_utc"))
		fmt.Fprintf(&b, "   Description: %s...\n", truncate(strOrNA(item, "description"), 150))
		fmt.Fprintf(&b, "   URL: %s\n\n", strOrNA(item, "article_url"))
	}

	return b.String(), nil
}
