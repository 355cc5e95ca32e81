package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable holding the Polygon API key.
// Get a free key from https://polygon.io/.
const EnvAPIKey = "POLYGON_API_KEY"

var (
	// configDir is the configuration directory path
	// Can be set via SetConfigDir before loading config
	configDir     string
	configDirInit bool
)

// SetConfigDir sets a custom configuration directory
// Must be called before any config loading functions
func SetConfigDir(dir string) {
	configDir = dir
	configDirInit = true
}

// GetConfigDir returns the configuration directory
// Priority: 1. Manually set via SetConfigDir, 2. ./config in current directory
func GetConfigDir() string {
	if !configDirInit {
		// Default to ./config in current working directory
		cwd, err := os.Getwd()
		if err == nil {
			configDir = filepath.Join(cwd, "config")
		}
		configDirInit = true
	}
	return configDir
}

// Config application configuration structure
type Config struct {
	Polygon PolygonConfig `yaml:"polygon"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// PolygonConfig upstream Polygon API configuration
type PolygonConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// ServerConfig MCP server identity
type ServerConfig struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
}

// LogConfig file logging configuration
type LogConfig struct {
	Dir        string `yaml:"dir"`
	Level      string `yaml:"level"`
	MaxDays    int    `yaml:"max_days"`
	ConsoleOut bool   `yaml:"console_out"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Polygon: PolygonConfig{
			APIKey:         "",
			BaseURL:        "https://api.polygon.io",
			TimeoutSeconds: 15,
			UserAgent:      "InvestingMCP/0.1",
		},
		Server: ServerConfig{
			Name:         "Investing MCP Server",
			Instructions: "This server includes tools to aid in day to day trading tasks.",
		},
		Log: LogConfig{
			Dir:        LogDir(),
			Level:      "INFO",
			MaxDays:    7,
			ConsoleOut: false,
		},
	}
}

// ConfigDir returns the configuration directory path
func ConfigDir() (string, error) {
	dir := GetConfigDir()
	if dir == "" {
		return "", fmt.Errorf("failed to determine config directory")
	}
	return dir, nil
}

// LogDir returns the log directory path
func LogDir() string {
	dir := GetConfigDir()
	if dir == "" {
		return "logs"
	}
	return filepath.Join(dir, "logs")
}

// ConfigPath returns the configuration file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads configuration from file and merges the API key from the
// environment or the .secrets file. The environment always wins.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig() // Use default values as base

	// Read config file if present
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Merge API key: environment first, then secrets file
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		cfg.Polygon.APIKey = key
	} else if cfg.Polygon.APIKey == "" {
		secrets, _ := LoadSecrets()
		if secrets != nil {
			if key := secrets.GetPolygonAPIKey(); key != "" {
				cfg.Polygon.APIKey = key
			}
		}
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save saves configuration to file
func Save(cfg *Config) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Serialize config
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	// Add header comment
	content := "# Investing MCP Server Configuration File\n\n" + string(data)

	// Write file
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration. A missing API key is fatal: the
// process must refuse to serve any tool without one.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Polygon.APIKey) == "" {
		return fmt.Errorf("config error: %s not found in environment variables or config", EnvAPIKey)
	}
	if c.Polygon.BaseURL == "" {
		return fmt.Errorf("config error: polygon.base_url cannot be empty")
	}
	if c.Polygon.TimeoutSeconds <= 0 {
		return fmt.Errorf("config error: polygon.timeout_seconds must be greater than 0")
	}
	if c.Server.Name == "" {
		return fmt.Errorf("config error: server.name cannot be empty")
	}
	return nil
}

// IsAPIKeyConfigured checks if API key is configured
func (c *Config) IsAPIKeyConfigured() bool {
	return c.Polygon.APIKey != ""
}

// String returns string representation of config (hides sensitive info)
func (c *Config) String() string {
	return fmt.Sprintf(`Investing MCP Server Configuration:
  Polygon:
    API Key: %s
    Base URL: %s
    Timeout Seconds: %d
    User Agent: %s
  Server:
    Name: %s
  Log:
    Dir: %s
    Level: %s
    Max Days: %d
    Console Out: %v`,
		redactAPIKey(c.Polygon.APIKey),
		c.Polygon.BaseURL,
		c.Polygon.TimeoutSeconds,
		c.Polygon.UserAgent,
		c.Server.Name,
		c.Log.Dir,
		c.Log.Level,
		c.Log.MaxDays,
		c.Log.ConsoleOut,
	)
}

func redactAPIKey(value string) string {
	if value == "" {
		return "(not configured)"
	}
	if len(value) > 8 {
		return value[:8] + "..."
	}
	return "***"
}
