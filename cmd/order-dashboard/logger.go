package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/order-dashboard/internal/config"
	"github.com/iwvelando/order-dashboard/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encoder presets by configured log format; json is the production default.
var loggerPresets = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateLogFormat(loggingConfig.Format); err != nil {
		return nil, err
	}
	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	zapConfig := loggerPresets[format]()
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile != "" {
		if err := prepareLogFile(loggingConfig.OutputFile); err != nil {
			return nil, err
		}
		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// parseLevel maps a configured level name to zap; empty means info.
func parseLevel(level string) (zapcore.Level, error) {
	if err := validation.ValidateLogLevel(level); err != nil {
		return zapcore.InfoLevel, err
	}
	if level == "warning" {
		level = "warn"
	}

	zapLevel := zapcore.InfoLevel
	if level == "" {
		return zapLevel, nil
	}
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
	return zapLevel, nil
}

// prepareLogFile creates the log directory and checks the file is writable
// before zap opens it.
func prepareLogFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return file.Close()
}
