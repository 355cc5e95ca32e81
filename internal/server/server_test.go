package server

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/weabreus/investing-mcp/internal/polygon"
	"github.com/weabreus/investing-mcp/internal/tools"
)

type fakeRegistrar struct {
	added []mcp.Tool
}

func (f *fakeRegistrar) AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	f.added = append(f.added, tool)
}

type stubTool struct {
	name    string
	result  string
	err     error
	panics  bool
	gotArgs map[string]any
}

func (s *stubTool) Name() string                  { return s.name }
func (s *stubTool) Description() string           { return "stub tool" }
func (s *stubTool) Parameters() []tools.ParameterDef { return nil }

func (s *stubTool) Execute(args map[string]any) (string, error) {
	s.gotArgs = args
	if s.panics {
		panic("boom")
	}
	return s.result, s.err
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	client := polygon.NewClient("test-key", "http://127.0.0.1:0", "", time.Second)
	return tools.NewStockRegistry(client)
}

func TestRegisterTools_BindsAllSix(t *testing.T) {
	registrar := &fakeRegistrar{}
	RegisterTools(registrar, testRegistry(t))

	if len(registrar.added) != 6 {
		t.Fatalf("Expected 6 tools registered, got %d", len(registrar.added))
	}

	names := make(map[string]bool)
	for _, tool := range registrar.added {
		names[tool.Name] = true
	}
	for _, want := range []string{
		"GetStockPrice", "GetStockDetails", "GetStockNews",
		"SearchStocks", "GetMarketStatus", "GetStockBars",
	} {
		if !names[want] {
			t.Errorf("Tool %s not registered", want)
		}
	}
}

func TestDefinition_Schema(t *testing.T) {
	client := polygon.NewClient("test-key", "http://127.0.0.1:0", "", time.Second)
	def := definition(tools.NewGetStockBarsTool(client))

	if def.Name != "GetStockBars" {
		t.Errorf("Expected name GetStockBars, got %s", def.Name)
	}
	if def.Description == "" {
		t.Error("Definition should carry a description")
	}

	for _, param := range []string{"symbol", "timespan", "limit"} {
		if _, ok := def.InputSchema.Properties[param]; !ok {
			t.Errorf("Schema missing parameter %s", param)
		}
	}

	required := strings.Join(def.InputSchema.Required, ",")
	if !strings.Contains(required, "symbol") {
		t.Errorf("symbol should be required, got %q", required)
	}
	if strings.Contains(required, "limit") || strings.Contains(required, "timespan") {
		t.Errorf("Optional parameters must not be required, got %q", required)
	}
}

func callToolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("Result should carry content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("Expected text content, got %T", res.Content[0])
	}
	return text.Text
}

func TestHandler_Success(t *testing.T) {
	stub := &stubTool{name: "Stub", result: "all good"}
	res, err := handler(stub)(context.Background(), callToolRequest(map[string]any{"symbol": "AAPL"}))
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if got := resultText(t, res); got != "all good" {
		t.Errorf("Expected tool output, got %q", got)
	}
	if stub.gotArgs["symbol"] != "AAPL" {
		t.Errorf("Arguments not forwarded: %v", stub.gotArgs)
	}
}

func TestHandler_ExecuteErrorBecomesText(t *testing.T) {
	stub := &stubTool{name: "Stub", err: fmt.Errorf("missing required parameter: symbol")}
	res, err := handler(stub)(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("Execution errors must not cross the boundary: %v", err)
	}
	got := resultText(t, res)
	if !strings.Contains(got, "❌ Error") || !strings.Contains(got, "missing required parameter") {
		t.Errorf("Expected error text, got %q", got)
	}
}

func TestHandler_PanicBecomesText(t *testing.T) {
	stub := &stubTool{name: "Stub", panics: true}
	res, err := handler(stub)(context.Background(), callToolRequest(nil))
	if err != nil {
		t.Fatalf("Panics must not cross the boundary: %v", err)
	}
	got := resultText(t, res)
	if !strings.Contains(got, "❌ Error") || !strings.Contains(got, "boom") {
		t.Errorf("Expected recovered panic text, got %q", got)
	}
}
