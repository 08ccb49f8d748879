package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		expectErr bool
	}{
		{
			name:      "Valid pretty format",
			format:    "pretty",
			expectErr: false,
		},
		{
			name:      "Valid csv format",
			format:    "csv",
			expectErr: false,
		},
		{
			name:      "Valid markdown format",
			format:    "markdown",
			expectErr: false,
		},
		{
			name:      "Valid json format",
			format:    "json",
			expectErr: false,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Case sensitive - CSV uppercase",
			format:    "CSV",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)

			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateOutputFormat(%s) expected error but got none", tt.format)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateOutputFormat(%s) unexpected error = %v", tt.format, err)
				}
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected error for xml format")
	}
	if !strings.Contains(err.Error(), "xml") {
		t.Errorf("error should mention the rejected format: %v", err)
	}
	if !strings.Contains(err.Error(), "markdown") {
		t.Errorf("error should list the supported formats: %v", err)
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "warning", "error"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) unexpected error = %v", level, err)
		}
	}
	for _, level := range []string{"trace", "INFO", "fatal"} {
		if err := ValidateLogLevel(level); err == nil {
			t.Errorf("ValidateLogLevel(%q) expected error but got none", level)
		}
	}
}

func TestUnknownSelections(t *testing.T) {
	available := []string{"Ana", "Bruno"}

	if w := UnknownSelections("person", []string{"Ana"}, available); len(w) != 0 {
		t.Errorf("expected no warnings, got %v", w)
	}
	if w := UnknownSelections("person", nil, available); len(w) != 0 {
		t.Errorf("expected no warnings for nil selection, got %v", w)
	}

	w := UnknownSelections("person", []string{"Ana", "Zé", "ana"}, available)
	if len(w) != 2 {
		t.Fatalf("expected 2 warnings, got %v", w)
	}
	if w[0] != `person "Zé" not found in workbook` {
		t.Errorf("unexpected warning text: %s", w[0])
	}
}

func TestValidateLogFormat(t *testing.T) {
	for _, format := range []string{"", "json", "console"} {
		if err := ValidateLogFormat(format); err != nil {
			t.Errorf("ValidateLogFormat(%q) unexpected error = %v", format, err)
		}
	}
	for _, format := range []string{"xml", "JSON", "text"} {
		if err := ValidateLogFormat(format); err == nil {
			t.Errorf("ValidateLogFormat(%q) expected error but got none", format)
		}
	}
}
