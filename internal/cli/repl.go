package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/weabreus/investing-mcp/internal/config"
	"github.com/weabreus/investing-mcp/internal/tools"
)

const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// Run starts an interactive REPL that invokes tools directly, without an MCP
// host. Useful for trying the Polygon tools from a terminal.
func Run(cfg *config.Config, registry *tools.Registry) error {
	printWelcome(cfg)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("%sinvesting> %s", colorGreen, colorReset),
		HistoryFile:     historyFilePath(),
		HistoryLimit:    1000,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch line {
		case "exit", "quit", "/exit":
			return nil
		case "help", "/help":
			printHelp()
			continue
		case "tools", "/tools":
			printTools(registry)
			continue
		}

		name, args, err := parseCall(line)
		if err != nil {
			fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
			continue
		}

		result, err := registry.Execute(name, args)
		if err != nil {
			fmt.Printf("%sError: %v%s\n", colorRed, err, colorReset)
			continue
		}
		fmt.Println(result)
	}
}

// printWelcome prints welcome message
func printWelcome(cfg *config.Config) {
	fmt.Printf("\n%s📈 %s%s - local tool console\n", colorCyan, cfg.Server.Name, colorReset)
	fmt.Printf("%sType 'tools' to list tools, 'help' for help, 'exit' to quit%s\n\n", colorGray, colorReset)
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  tools                       list registered tools and their parameters")
	fmt.Println("  <Tool> key=value ...        invoke a tool, e.g. GetStockPrice symbol=AAPL")
	fmt.Println("  call <Tool> key=value ...   same as above")
	fmt.Println("  exit                        quit")
}

func printTools(registry *tools.Registry) {
	for _, tool := range registry.List() {
		fmt.Printf("%s%s%s - %s\n", colorYellow, tool.Name(), colorReset, tool.Description())
		for _, param := range tool.Parameters() {
			required := "optional"
			if param.Required {
				required = "required"
			}
			fmt.Printf("    %s (%s, %s): %s\n", param.Name, param.Type, required, param.Description)
		}
	}
}

// parseCall parses "call Name key=value ..." or "Name key=value ..." into a
// tool name and an argument map. Values that look numeric or boolean are
// converted, matching how JSON arguments arrive from a host.
func parseCall(line string) (string, map[string]any, error) {
	fields := strings.Fields(line)
	if len(fields) > 0 && fields[0] == "call" {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("expected a tool name")
	}

	name := fields[0]
	args := make(map[string]any)
	for _, field := range fields[1:] {
		parts := strings.SplitN(field, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return "", nil, fmt.Errorf("invalid argument %q (expected key=value)", field)
		}
		args[parts[0]] = convertValue(parts[1])
	}
	return name, args, nil
}

func convertValue(raw string) any {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// historyFilePath returns the REPL history file path
func historyFilePath() string {
	dir := config.GetConfigDir()
	if dir == "" {
		return ""
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}
