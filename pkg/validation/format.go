// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"strings"

	"github.com/iwvelando/order-dashboard/pkg/constants"
)

var outputFormats = []string{
	constants.OutputFormatPretty,
	constants.OutputFormatCSV,
	constants.OutputFormatMarkdown,
	constants.OutputFormatJSON,
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("expected output format of %s, got %s",
		strings.Join(outputFormats, ", "), format)
}

// ValidateLogLevel checks a configured log level. Empty means the default.
func ValidateLogLevel(level string) error {
	switch level {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: %s", level)
}

// ValidateLogFormat checks a configured log encoding. Empty means the default.
func ValidateLogFormat(format string) error {
	switch format {
	case "", "json", "console":
		return nil
	}
	return fmt.Errorf("invalid log format: %s", format)
}
