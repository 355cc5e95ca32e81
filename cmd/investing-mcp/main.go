package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/weabreus/investing-mcp/internal/cli"
	"github.com/weabreus/investing-mcp/internal/config"
	"github.com/weabreus/investing-mcp/internal/logger"
	"github.com/weabreus/investing-mcp/internal/polygon"
	"github.com/weabreus/investing-mcp/internal/server"
	"github.com/weabreus/investing-mcp/internal/tools"
)

var (
	version = "0.1.0"
)

func main() {
	var configDir string

	rootCmd := &cobra.Command{
		Use:   "investing-mcp",
		Short: "Investing MCP Server - stock market tools over MCP",
		Long: `Investing MCP Server exposes Polygon.io stock market tools to MCP hosts
over the stdio transport.

Tools:
  • GetStockPrice   - current price and daily stats for a symbol
  • GetStockDetails - company information and ticker details
  • GetStockNews    - recent news articles for a symbol
  • SearchStocks    - search tickers by company name or symbol
  • GetMarketStatus - whether the market is open
  • GetStockBars    - historical OHLCV bars

A Polygon API key must be set in the POLYGON_API_KEY environment variable.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configDir != "" {
				config.SetConfigDir(configDir)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return serve(cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ./config)")

	// repl subcommand
	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Invoke the stock tools interactively without an MCP host",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return cli.Run(cfg, newRegistry(cfg))
		},
	}

	// tools subcommand
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "List the registered tools and their parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			for _, tool := range newRegistry(cfg).List() {
				fmt.Printf("%s - %s\n", tool.Name(), tool.Description())
				for _, param := range tool.Parameters() {
					required := "optional"
					if param.Required {
						required = "required"
					}
					fmt.Printf("    %s (%s, %s): %s\n", param.Name, param.Type, required, param.Description)
				}
			}
			return nil
		},
	}

	// config subcommand
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			fmt.Println(cfg.String())

			path, _ := config.ConfigPath()
			fmt.Printf("\nConfig file path: %s\n", path)
			return nil
		},
	}

	// version subcommand
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Investing MCP Server v%s\n", version)
		},
	}

	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve runs the MCP server over stdio until the host disconnects.
func serve(cfg *config.Config) error {
	if err := logger.Init(logger.Config{
		LogDir:     cfg.Log.Dir,
		Level:      logger.ParseLevel(cfg.Log.Level),
		MaxDays:    cfg.Log.MaxDays,
		ConsoleOut: cfg.Log.ConsoleOut,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	srv := server.New(cfg, version, newRegistry(cfg))

	logger.Info("%s v%s serving over stdio", cfg.Server.Name, version)
	if err := server.ServeStdio(srv); err != nil {
		logger.Error("server stopped: %v", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// newRegistry builds the Polygon client and stock tool registry from config.
func newRegistry(cfg *config.Config) *tools.Registry {
	client := polygon.NewClient(
		cfg.Polygon.APIKey,
		cfg.Polygon.BaseURL,
		cfg.Polygon.UserAgent,
		time.Duration(cfg.Polygon.TimeoutSeconds)*time.Second,
	)
	return tools.NewStockRegistry(client)
}
