package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/order-dashboard/internal/config"
	"github.com/iwvelando/order-dashboard/internal/export"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/iwvelando/order-dashboard/pkg/testutil"
	"go.uber.org/zap/zapcore"
)

func writeWorkbook(t *testing.T, sheets ...testutil.SheetSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pedidos.xlsx")
	if err := os.WriteFile(path, testutil.WorkbookBytes(t, sheets...), 0600); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return path
}

func ordersFixture(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t,
		testutil.OrdersSheet("Ana", []string{"Norte", "Sul"}, []string{"JANEIRO", "FEVEREIRO"}, [][]interface{}{
			{1000, "R$ 500,00"},
			{200, 300},
		}),
		testutil.OrdersSheet("Bruno", []string{"Norte"}, []string{"JANEIRO"}, [][]interface{}{
			{50},
		}),
	)
}

func quietOptions() reportOptions {
	return reportOptions{
		configPath:   filepath.Join(os.TempDir(), "order-dashboard-missing-config.yaml"),
		logLevel:     "error",
		outputFormat: constants.OutputFormatPretty,
	}
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		config    config.LoggingConfig
		override  string
		wantError bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
		{"Output file", config.LoggingConfig{OutputFile: filepath.Join(t.TempDir(), "logs", "app.log")}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("expected a logger")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input     string
		want      zapcore.Level
		wantError bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLevel(tt.input)
			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseLevel(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRunReportPretty(t *testing.T) {
	var out bytes.Buffer
	if err := runReport(&out, ordersFixture(t), quietOptions()); err != nil {
		t.Fatalf("runReport() error = %v", err)
	}

	for _, want := range []string{
		"Registros: 5 | Total: R$ 2.050,00",
		"Ana | R$ 2.000,00",
		"Bruno | R$ 50,00",
		"Norte | R$ 1.250,00",
		"JANEIRO | R$ 1.550,00",
		"MARÇO | -",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunReportSelection(t *testing.T) {
	opts := quietOptions()
	opts.outputFormat = constants.OutputFormatCSV
	opts.regions = []string{"Sul"}

	var out bytes.Buffer
	if err := runReport(&out, ordersFixture(t), opts); err != nil {
		t.Fatalf("runReport() error = %v", err)
	}

	expected := "Mês,Região,Valor,Pessoa\nJANEIRO,Sul,500,Ana\nFEVEREIRO,Sul,300,Ana\n"
	if out.String() != expected {
		t.Fatalf("unexpected CSV:\n%s", out.String())
	}
}

func TestRunReportWritesExports(t *testing.T) {
	opts := quietOptions()
	opts.outDir = filepath.Join(t.TempDir(), "saida")
	opts.xlsx = true

	if err := runReport(&bytes.Buffer{}, ordersFixture(t), opts); err != nil {
		t.Fatalf("runReport() error = %v", err)
	}

	for _, name := range []string{
		constants.CSVFileName,
		constants.PersonChartFileName,
		constants.RegionChartFileName,
		constants.MonthChartFileName,
		constants.XLSXFileName,
	} {
		info, err := os.Stat(filepath.Join(opts.outDir, name))
		if err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
		if info.Size() == 0 {
			t.Fatalf("expected %s to be non-empty", name)
		}
	}

	f, err := os.Open(filepath.Join(opts.outDir, constants.CSVFileName))
	if err != nil {
		t.Fatalf("failed to open CSV: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()
	table, err := export.ReadCSV(f)
	if err != nil {
		t.Fatalf("failed to read exported CSV: %v", err)
	}
	if table.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", table.Len())
	}
}

func TestRunReportNoData(t *testing.T) {
	path := writeWorkbook(t, testutil.SheetSpec{
		Name: "Resumo",
		Rows: [][]interface{}{{"Total"}, {"10"}},
	})

	var out bytes.Buffer
	if err := runReport(&out, path, quietOptions()); err != nil {
		t.Fatalf("runReport() error = %v", err)
	}
	if !strings.Contains(out.String(), "Nenhum dado encontrado") {
		t.Fatalf("expected an empty-state message, got %q", out.String())
	}
}

func TestRunReportErrors(t *testing.T) {
	t.Run("Invalid output format", func(t *testing.T) {
		opts := quietOptions()
		opts.outputFormat = "xml"
		if err := runReport(&bytes.Buffer{}, ordersFixture(t), opts); err == nil {
			t.Fatal("expected error for invalid output format")
		}
	})

	t.Run("Missing workbook", func(t *testing.T) {
		if err := runReport(&bytes.Buffer{}, filepath.Join(t.TempDir(), "none.xlsx"), quietOptions()); err == nil {
			t.Fatal("expected error for missing workbook")
		}
	})

	t.Run("Required config missing", func(t *testing.T) {
		opts := quietOptions()
		opts.configRequired = true
		if err := runReport(&bytes.Buffer{}, ordersFixture(t), opts); err == nil {
			t.Fatal("expected error for missing required config")
		}
	})
}

func TestReportCommandFlags(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	contents := []byte("logging:\n  level: error\noutput:\n  format: markdown\n")
	if err := os.WriteFile(configPath, contents, 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"report", ordersFixture(t), "--config", configPath, "--person", "Bruno"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(out.String(), "## Total por Pessoa") {
		t.Fatalf("expected markdown output from config, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Ana") {
		t.Fatalf("expected only Bruno in output, got:\n%s", out.String())
	}
}

func TestReportCommandRegionWithComma(t *testing.T) {
	path := writeWorkbook(t,
		testutil.OrdersSheet("Ana", []string{"Norte, Sul", "Oeste"}, []string{"JANEIRO"}, [][]interface{}{
			{100, 40},
		}),
	)

	run := func(t *testing.T, args ...string) string {
		t.Helper()
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs(append([]string{"report", path, "--log-level", "error", "--output-format", "csv"}, args...))
		if err := cmd.Execute(); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		return out.String()
	}

	t.Run("Label kept whole", func(t *testing.T) {
		got := run(t, "--region", "Norte, Sul")
		expected := "Mês,Região,Valor,Pessoa\nJANEIRO,\"Norte, Sul\",100,Ana\n"
		if got != expected {
			t.Fatalf("unexpected CSV:\n%s", got)
		}
	})

	t.Run("Empty selects nothing", func(t *testing.T) {
		got := run(t, "--region=")
		if got != "Mês,Região,Valor,Pessoa\n" {
			t.Fatalf("expected header only, got:\n%s", got)
		}
	})
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Fatalf("expected %q, got %q", version, out.String())
	}
}
