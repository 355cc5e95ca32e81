package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("LogLevel.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected LogLevel
	}{
		{"DEBUG", DEBUG},
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARN},
		{"WARNING", WARN},
		{"error", ERROR},
		{"", INFO},
		{"bogus", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.expected)
		}
	}
}

func TestNewLogger(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "investing-mcp-logger-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:     tmpDir,
		Level:      INFO,
		MaxDays:    7,
		ConsoleOut: false,
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.level != INFO {
		t.Errorf("Expected level INFO, got %v", logger.level)
	}
	if logger.maxDays != 7 {
		t.Errorf("Expected maxDays 7, got %d", logger.maxDays)
	}
	if logger.logDir != tmpDir {
		t.Errorf("Expected logDir %s, got %s", tmpDir, logger.logDir)
	}
}

func TestNewLogger_DefaultMaxDays(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "investing-mcp-logger-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:     tmpDir,
		Level:      INFO,
		MaxDays:    0, // Should default to 7
		ConsoleOut: false,
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.maxDays != 7 {
		t.Errorf("Expected default maxDays 7, got %d", logger.maxDays)
	}
}

func TestLogger_LogLevels(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "investing-mcp-logger-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:     tmpDir,
		Level:      DEBUG,
		MaxDays:    7,
		ConsoleOut: false,
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	// Log messages at different levels
	logger.Debug("debug message %d", 1)
	logger.Info("info message %s", "test")
	logger.Warn("warn message")
	logger.Error("error message")

	logger.Close()

	// Read the log file
	today := time.Now().Format("2006-01-02")
	logFile := filepath.Join(tmpDir, "investing-mcp-"+today+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if !strings.Contains(logContent, "[DEBUG] debug message 1") {
		t.Error("Log should contain DEBUG message")
	}
	if !strings.Contains(logContent, "[INFO] info message test") {
		t.Error("Log should contain INFO message")
	}
	if !strings.Contains(logContent, "[WARN] warn message") {
		t.Error("Log should contain WARN message")
	}
	if !strings.Contains(logContent, "[ERROR] error message") {
		t.Error("Log should contain ERROR message")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "investing-mcp-logger-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := Config{
		LogDir:     tmpDir,
		Level:      WARN, // Only WARN and ERROR should be logged
		MaxDays:    7,
		ConsoleOut: false,
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	logger.Close()

	// Read the log file
	today := time.Now().Format("2006-01-02")
	logFile := filepath.Join(tmpDir, "investing-mcp-"+today+".log")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	logContent := string(content)
	if strings.Contains(logContent, "[DEBUG]") {
		t.Error("DEBUG messages should be filtered at WARN level")
	}
	if strings.Contains(logContent, "[INFO]") {
		t.Error("INFO messages should be filtered at WARN level")
	}
	if !strings.Contains(logContent, "[WARN] warn message") {
		t.Error("Log should contain WARN message")
	}
	if !strings.Contains(logContent, "[ERROR] error message") {
		t.Error("Log should contain ERROR message")
	}
}

func TestLogger_GetWriter(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "investing-mcp-logger-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	logger, err := NewLogger(Config{LogDir: tmpDir, Level: DEBUG, MaxDays: 7})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	writer := logger.GetWriter(INFO)
	if _, err := writer.Write([]byte("written via writer\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	logger.Close()

	today := time.Now().Format("2006-01-02")
	content, err := os.ReadFile(filepath.Join(tmpDir, "investing-mcp-"+today+".log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "[INFO] written via writer") {
		t.Error("Writer output should reach the log file")
	}
}
