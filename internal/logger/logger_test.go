package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{" warn ", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"invalid", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.expected {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("nonexistent.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}

	if config.Level != "INFO" {
		t.Errorf("Level = %q, want %q", config.Level, "INFO")
	}
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled = false, want true")
	}
	if config.FileEnabled {
		t.Error("FileEnabled = true, want false")
	}
	if config.FilePath != "logs/undercroft.log" {
		t.Errorf("FilePath = %q, want %q", config.FilePath, "logs/undercroft.log")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undercroft.yaml")
	content := `logging:
  level: DEBUG
  console_enabled: false
  console_format: json
  file_enabled: true
  file_path: test.log
  file_max_size_mb: 20
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "DEBUG" {
		t.Errorf("Level = %q, want %q", config.Level, "DEBUG")
	}
	if config.ConsoleEnabled {
		t.Error("ConsoleEnabled = true, want false")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true")
	}
	if config.FileMaxSizeMB != 20 {
		t.Errorf("FileMaxSizeMB = %d, want 20", config.FileMaxSizeMB)
	}
	// Not set in the file
	if config.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", config.FileMaxBackups)
	}
}

func TestLoadConfigKeepsConsoleWhenUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undercroft.yaml")
	if err := os.WriteFile(path, []byte("logging:\n  level: ERROR\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, _ := LoadConfig(path)
	if !config.ConsoleEnabled {
		t.Error("ConsoleEnabled should stay true when the key is absent")
	}
}

func TestEnvVarOverride(t *testing.T) {
	t.Setenv("UNDERCROFT_LOG_LEVEL", "ERROR")
	t.Setenv("UNDERCROFT_LOG_FORMAT", "json")
	t.Setenv("UNDERCROFT_LOG_FILE_ENABLED", "true")
	t.Setenv("UNDERCROFT_LOG_FILE_PATH", "/custom/path.log")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.Level != "ERROR" {
		t.Errorf("Level = %q, want %q (from env var)", config.Level, "ERROR")
	}
	if config.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want %q (from env var)", config.ConsoleFormat, "json")
	}
	if !config.FileEnabled {
		t.Error("FileEnabled = false, want true (from env var)")
	}
	if config.FilePath != "/custom/path.log" {
		t.Errorf("FilePath = %q, want %q (from env var)", config.FilePath, "/custom/path.log")
	}
}

func TestInitializeTextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()

	if err := InitializeWithWriter(cfg, &buf); err != nil {
		t.Fatalf("InitializeWithWriter returned error: %v", err)
	}

	Info("dungeon generated", "rooms", 7)
	Debug("hidden at INFO")

	output := buf.String()
	if !strings.Contains(output, "dungeon generated") {
		t.Errorf("output missing INFO message: %s", output)
	}
	if !strings.Contains(output, "rooms=7") {
		t.Errorf("output missing structured field: %s", output)
	}
	if strings.Contains(output, "hidden at INFO") {
		t.Errorf("output contains DEBUG message at INFO level: %s", output)
	}
}

func TestInitializeJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.ConsoleFormat = "json"

	if err := InitializeWithWriter(cfg, &buf); err != nil {
		t.Fatalf("InitializeWithWriter returned error: %v", err)
	}

	Info("portal created", "type", "crypt", "x", 42)

	output := buf.String()
	if !strings.Contains(output, `"msg":"portal created"`) {
		t.Errorf("output missing JSON message field: %s", output)
	}
	if !strings.Contains(output, `"x":42`) {
		t.Errorf("output missing numeric JSON field: %s", output)
	}
}

func TestInitializeFileWithoutPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FileEnabled = true
	cfg.FilePath = ""

	if err := InitializeWithWriter(cfg, &bytes.Buffer{}); err == nil {
		t.Error("expected error when file logging has no path")
	}
}

func TestInitializeFileHandler(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "test.log")

	cfg := DefaultConfig()
	cfg.FileEnabled = true
	cfg.FilePath = path

	if err := InitializeWithWriter(cfg, &buf); err != nil {
		t.Fatalf("InitializeWithWriter returned error: %v", err)
	}

	Warning("boss appears", "dungeon", "d1")

	if !strings.Contains(buf.String(), "boss appears") {
		t.Error("console handler did not receive message")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "boss appears") {
		t.Errorf("log file missing message: %s", data)
	}
}

func TestAlwaysBypassesLogLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Level = "ERROR"

	if err := InitializeWithWriter(cfg, &buf); err != nil {
		t.Fatal(err)
	}

	Debug("Debug message")
	Info("Info message")
	Warning("Warning")
	Error("Error message")
	Always("Always message")

	output := buf.String()
	for _, hidden := range []string{"Debug message", "Info message", "Warning"} {
		if strings.Contains(output, hidden) {
			t.Errorf("%q appeared when level is ERROR", hidden)
		}
	}
	if !strings.Contains(output, "Error message") {
		t.Error("ERROR message missing from output")
	}
	if !strings.Contains(output, "level=ALWAYS") {
		t.Errorf("ALWAYS level not formatted correctly: %s", output)
	}
}

func TestFormattedLogging(t *testing.T) {
	var buf bytes.Buffer
	logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	Debugf("Debug: %d + %d = %d", 1, 2, 3)
	Infof("Info: %s", "test")
	Warningf("Warning: %.2f%%", 99.95)
	Errorf("Error: %v", "failed")
	Alwaysf("Always: %s %d", "count", 5)

	output := buf.String()
	for _, want := range []string{
		"Debug: 1 + 2 = 3",
		"Info: test",
		"Warning: 99.95%",
		"Error: failed",
		"Always: count 5",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var buf1, buf2 bytes.Buffer

	handler1 := slog.NewTextHandler(&buf1, &slog.HandlerOptions{Level: slog.LevelInfo})
	handler2 := slog.NewTextHandler(&buf2, &slog.HandlerOptions{Level: slog.LevelError})
	logger = slog.New(newMultiHandler(handler1, handler2))

	Info("only first", "field", "value")
	Error("both")

	if !strings.Contains(buf1.String(), "only first") || !strings.Contains(buf1.String(), "field=value") {
		t.Error("first handler did not receive INFO message")
	}
	if strings.Contains(buf2.String(), "only first") {
		t.Error("second handler received a message below its level")
	}
	if !strings.Contains(buf2.String(), "both") {
		t.Error("second handler did not receive ERROR message")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger = slog.New(slog.NewTextHandler(&buf, nil))

	With("dungeon", "d7").Info("entered")
	if !strings.Contains(buf.String(), "dungeon=d7") {
		t.Errorf("child logger missing attribute: %s", buf.String())
	}

	logger = nil
	With("dungeon", "d8").Info("dropped")
}

func TestNilLogger(t *testing.T) {
	logger = nil

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("logging with nil logger caused panic: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
}
