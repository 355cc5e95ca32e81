package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

const defaultSearchLimit = 10

// SearchStocksTool searches active tickers by company name or symbol.
type SearchStocksTool struct {
	client *polygon.Client
}

// NewSearchStocksTool creates the stock search tool.
func NewSearchStocksTool(client *polygon.Client) *SearchStocksTool {
	return &SearchStocksTool{client: client}
}

func (t *SearchStocksTool) Name() string {
	return "SearchStocks"
}

func (t *SearchStocksTool) Description() string {
	return "Search for stocks by company name or symbol and list matching tickers."
}

func (t *SearchStocksTool) Parameters() []ParameterDef {
	return []ParameterDef{
		{
			Name:        "query",
			Type:        "string",
			Description: "Company name or symbol to search for",
			Required:    true,
		},
		{
			Name:        "limit",
			Type:        "number",
			Description: "Number of results to return",
			Required:    false,
			Default:     defaultSearchLimit,
		},
	}
}

func (t *SearchStocksTool) Execute(args map[string]any) (string, error) {
	query, ok := args["query"].(string)
	if !ok || strings.TrimSpace(query) == "" {
		return "", fmt.Errorf("missing required parameter: query")
	}
	query = strings.TrimSpace(query)
	limit := limitArg(args, "limit", defaultSearchLimit)

	report, err := t.fetch(query, limit)
	if err != nil {
		return fmt.Sprintf("Error searching stocks: %v", err), nil
	}
	return report, nil
}

func (t *SearchStocksTool) fetch(query string, limit int) (string, error) {
	params := map[string]string{
		"search": query,
		"limit":  strconv.Itoa(limit),
		"active": "true",
	}

	data, err := t.client.Get(context.Background(), "/v3/reference/tickers", params)
	if err != nil {
		return "", err
	}

	matches, hasResults := data.Array("results")
	if data.Status() != "OK" || !hasResults || len(matches) == 0 {
		return fmt.Sprintf("No results found for '%s'", query), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Search results for '%s':\n\n", query)
	for i, match := range matches {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, strOrNA(match, "ticker"), strOrNA(match, "name"))
		fmt.Fprintf(&b, "   Market: %s | Exchange: %s\n\n", strOrNA(match, "market"), strOrNA(match, "primary_exchange"))
	}

	return b.String(), nil
}
