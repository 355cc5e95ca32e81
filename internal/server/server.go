package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/weabreus/investing-mcp/internal/config"
	"github.com/weabreus/investing-mcp/internal/logger"
	"github.com/weabreus/investing-mcp/internal/tools"
)

// Registrar is the narrow slice of the host SDK the facade depends on, so
// tool registration stays testable without a live MCP server.
type Registrar interface {
	AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc)
}

// New builds an MCP server exposing every tool in the registry.
func New(cfg *config.Config, version string, registry *tools.Registry) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer(
		cfg.Server.Name,
		version,
		mcpserver.WithInstructions(cfg.Server.Instructions),
	)
	RegisterTools(s, registry)
	return s
}

// RegisterTools binds each registry tool to the host under its fixed name.
// Registration happens once at startup and has no other side effects.
func RegisterTools(r Registrar, registry *tools.Registry) {
	for _, tool := range registry.List() {
		r.AddTool(definition(tool), handler(tool))
		logger.Info("registered tool: %s", tool.Name())
	}
}

// definition maps a tool's declared schema onto an MCP tool definition.
func definition(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description())}
	for _, p := range t.Parameters() {
		opts = append(opts, paramOption(p))
	}
	return mcp.NewTool(t.Name(), opts...)
}

func paramOption(p tools.ParameterDef) mcp.ToolOption {
	switch p.Type {
	case "number":
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if def, ok := toFloat(p.Default); ok {
			propOpts = append(propOpts, mcp.DefaultNumber(def))
		}
		return mcp.WithNumber(p.Name, propOpts...)
	case "boolean":
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if def, ok := p.Default.(bool); ok {
			propOpts = append(propOpts, mcp.DefaultBool(def))
		}
		return mcp.WithBoolean(p.Name, propOpts...)
	default:
		propOpts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if def, ok := p.Default.(string); ok {
			propOpts = append(propOpts, mcp.DefaultString(def))
		}
		return mcp.WithString(p.Name, propOpts...)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// handler wraps a tool's Execute so that every failure, including argument
// validation and panics, reaches the host as plain error text. No fault may
// cross the tool boundary.
func handler(t tools.Tool) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("tool %s panicked: %v", t.Name(), r)
				res = mcp.NewToolResultText(fmt.Sprintf("❌ Error: %s failed: %v", t.Name(), r))
				err = nil
			}
		}()

		text, execErr := t.Execute(req.GetArguments())
		if execErr != nil {
			logger.Warn("tool %s rejected call: %v", t.Name(), execErr)
			return mcp.NewToolResultText(fmt.Sprintf("❌ Error: %v", execErr)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// ServeStdio serves the MCP protocol over stdin/stdout until the host closes
// the transport.
func ServeStdio(s *mcpserver.MCPServer) error {
	return mcpserver.ServeStdio(s)
}
