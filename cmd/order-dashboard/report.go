package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/iwvelando/order-dashboard/internal/config"
	"github.com/iwvelando/order-dashboard/internal/export"
	"github.com/iwvelando/order-dashboard/internal/normalize"
	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/internal/workbook"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/iwvelando/order-dashboard/pkg/output"
	"github.com/iwvelando/order-dashboard/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type reportOptions struct {
	configPath     string
	configRequired bool
	outDir         string
	outputFormat   string
	logLevel       string
	xlsx           bool
	// nil means every value of the dimension
	persons []string
	regions []string
	months  []string
}

func newReportCmd() *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report <input.xlsx>",
		Short: "Print the order summaries and export the consolidated table and charts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// A missing default config file falls back to defaults; an explicit one must exist.
			opts.configRequired = cmd.Flags().Changed("config")
			opts.persons = selectionFlag(cmd, "person", opts.persons)
			opts.regions = selectionFlag(cmd, "region", opts.regions)
			opts.months = selectionFlag(cmd, "month", opts.months)
			return runReport(cmd.OutOrStdout(), args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&opts.outDir, "out-dir", "", "directory for the CSV and chart exports (overrides config)")
	flags.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv, markdown, json")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.BoolVar(&opts.xlsx, "xlsx", false, "also export the consolidated workbook")
	flags.StringArrayVar(&opts.persons, "person", nil, "person (sheet) to include; repeatable, default all")
	flags.StringArrayVar(&opts.regions, "region", nil, "region to include; repeatable, default all")
	flags.StringArrayVar(&opts.months, "month", nil, "month to include; repeatable, default all")

	return cmd
}

// selectionFlag returns nil when the flag was not given, so every value is
// selected. Empty values are dropped: --region= alone selects no region.
func selectionFlag(cmd *cobra.Command, name string, values []string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	selected := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			selected = append(selected, v)
		}
	}
	return selected
}

func runReport(stdout io.Writer, inputPath string, opts reportOptions) error {
	conf, err := config.LoadConfigurationOrDefault(opts.configPath, opts.configRequired)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, opts.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.runReport"),
		)
	}

	// CLI flags take precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}
	outDir := conf.Output.Dir
	if opts.outDir != "" {
		outDir = opts.outDir
	}

	wb, err := workbook.Open(logger, inputPath)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", inputPath, err)
	}

	res, err := normalize.New(logger).Normalize(wb)
	if errors.Is(err, normalize.ErrNoQualifyingSheets) {
		logger.Warn("no data to report",
			zap.String("op", "main.runReport"),
			zap.String("file", inputPath),
			zap.Error(err),
		)
		_, werr := fmt.Fprintf(stdout, "Nenhum dado encontrado em %s: nenhuma planilha tem linhas de meses.\n", inputPath)
		return werr
	}
	if err != nil {
		return fmt.Errorf("failed to normalize workbook: %w", err)
	}
	if res.Degraded > 0 {
		logger.Warn("unparseable values read as 0",
			zap.String("op", "main.runReport"),
			zap.Int("count", res.Degraded),
		)
	}

	table := res.Table
	for _, warning := range selectionWarnings(table, opts) {
		logger.Warn(warning, zap.String("op", "main.runReport"))
	}

	filtered := report.Filter(table, report.SelectionFrom(table, opts.persons, opts.regions, opts.months))
	summary := report.Summarize(filtered)

	logger.Info("report computed",
		zap.String("op", "main.runReport"),
		zap.Int("sheets", len(res.Sheets)),
		zap.Int("records", table.Len()),
		zap.Int("selected", filtered.Len()),
	)

	if err := output.Write(stdout, outputFormat, filtered, summary); err != nil {
		return fmt.Errorf("failed to write %s output: %w", outputFormat, err)
	}

	if outDir == "" {
		return nil
	}

	artifacts, err := export.Bundle(filtered, summary, export.Options{
		Chart: export.ChartOptions{Width: conf.Chart.Width, Height: conf.Chart.Height},
		XLSX:  opts.xlsx || conf.Output.XLSX,
	})
	if err != nil {
		return fmt.Errorf("failed to render exports: %w", err)
	}
	paths, err := export.WriteDir(outDir, artifacts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		logger.Info("export written",
			zap.String("op", "main.runReport"),
			zap.String("path", path),
		)
	}
	return nil
}

func selectionWarnings(t report.Table, opts reportOptions) []string {
	var warnings []string
	warnings = append(warnings, validation.UnknownSelections("person", opts.persons, t.Persons())...)
	warnings = append(warnings, validation.UnknownSelections("region", opts.regions, t.Regions())...)
	warnings = append(warnings, validation.UnknownSelections("month", opts.months, t.Months())...)
	return warnings
}
