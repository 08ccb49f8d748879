package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/order-dashboard/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("expected default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Chart.Width != constants.DefaultChartWidth || cfg.Chart.Height != constants.DefaultChartHeight {
		t.Fatalf("expected default chart size, got %+v", cfg.Chart)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
chart:
  width: 10
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
	if cfg.Chart.Width != 10 || cfg.Chart.Height != constants.DefaultChartHeight {
		t.Fatalf("expected chart width override with default height, got %+v", cfg.Chart)
	}
}

func TestLoadConfigInvalidSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}
}

func TestSetUploadSizeBytes(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	cfg.SetUploadSizeBytes(4096)
	if cfg.UploadSizeBytes() != 4096 {
		t.Fatalf("expected 4096, got %d", cfg.UploadSizeBytes())
	}

	cfg.SetUploadSizeBytes(0)
	if cfg.UploadSizeBytes() != 4096 {
		t.Fatalf("non-positive size should be ignored, got %d", cfg.UploadSizeBytes())
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
		"8 kb":      8 * 1024,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1TB", "abc", "-5M", "99999999999999999999"} {
		if _, err := ParseSize(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
