package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
)

// Content types of the produced artifacts.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypePNG  = "image/png"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Artifact is one exported file held in memory.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Options controls Bundle.
type Options struct {
	Chart ChartOptions
	// XLSX adds the consolidated workbook to the bundle.
	XLSX bool
}

// Bundle renders the CSV of t followed by the three charts of s, and the
// consolidated workbook when requested.
func Bundle(t report.Table, s report.Summary, opts Options) ([]Artifact, error) {
	csvData, err := CSVBytes(t)
	if err != nil {
		return nil, fmt.Errorf("failed to encode CSV: %w", err)
	}
	artifacts := []Artifact{{Name: constants.CSVFileName, ContentType: ContentTypeCSV, Data: csvData}}

	for _, kind := range ChartKinds {
		png, err := RenderChart(kind, s, opts.Chart)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", kind, err)
		}
		artifacts = append(artifacts, Artifact{Name: kind.FileName(), ContentType: ContentTypePNG, Data: png})
	}

	if opts.XLSX {
		xlsxData, err := XLSXBytes(t)
		if err != nil {
			return nil, fmt.Errorf("failed to encode workbook: %w", err)
		}
		artifacts = append(artifacts, Artifact{Name: constants.XLSXFileName, ContentType: ContentTypeXLSX, Data: xlsxData})
	}
	return artifacts, nil
}

// WriteDir writes artifacts into dir, creating it if needed, and returns the
// written paths.
func WriteDir(dir string, artifacts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		if err := os.WriteFile(path, a.Data, 0644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
