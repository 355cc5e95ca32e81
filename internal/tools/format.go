package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/weabreus/investing-mcp/internal/polygon"
)

// moneyOrNA renders a document field as a two-decimal dollar amount,
// or "N/A" when the field is absent.
func moneyOrNA(doc polygon.Document, key string) string {
	v, ok := doc.Num(key)
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", v)
}

// volumeOrNA renders a share count with thousands separators.
func volumeOrNA(doc polygon.Document, key string) string {
	v, ok := doc.Num(key)
	if !ok {
		return "N/A"
	}
	return humanize.Comma(int64(v))
}

// dateOrNA converts a millisecond epoch field to a local calendar date.
func dateOrNA(doc polygon.Document, key string) string {
	ms, ok := doc.Num(key)
	if !ok {
		return "N/A"
	}
	return time.UnixMilli(int64(ms)).Format("2006-01-02")
}

// dateTimeOrNA converts a millisecond epoch field to a local minute-precision timestamp.
func dateTimeOrNA(doc polygon.Document, key string) string {
	ms, ok := doc.Num(key)
	if !ok {
		return "N/A"
	}
	return time.UnixMilli(int64(ms)).Format("2006-01-02 15:04")
}

// strOrNA returns a string field or "N/A" when absent or empty.
func strOrNA(doc polygon.Document, key string) string {
	v, ok := doc.Str(key)
	if !ok || v == "" {
		return "N/A"
	}
	return v
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// directionGlyph picks the indicator for a price change sign.
func directionGlyph(change float64) string {
	switch {
	case change > 0:
		return "📈"
	case change < 0:
		return "📉"
	default:
		return "➡️"
	}
}

// normalizeSymbol extracts and uppercases the required symbol argument.
func normalizeSymbol(args map[string]any) (string, error) {
	symbol, ok := args["symbol"].(string)
	if !ok || strings.TrimSpace(symbol) == "" {
		return "", fmt.Errorf("missing required parameter: symbol")
	}
	return strings.ToUpper(strings.TrimSpace(symbol)), nil
}

// limitArg extracts an optional positive integer argument, falling back to def.
// JSON numbers decode as float64; integers are accepted for direct callers.
func limitArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case float64:
		if v > 0 {
			return int(v)
		}
	case int:
		if v > 0 {
			return v
		}
	}
	return def
}
