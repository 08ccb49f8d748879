// Package output provides utilities for formatting and displaying report results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/order-dashboard/internal/export"
	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/iwvelando/order-dashboard/pkg/format"
	md "github.com/nao1215/markdown"
)

const missingTotal = "-"

// Section titles shared by the human-readable formats.
const (
	titlePerson = "Total por Pessoa"
	titleRegion = "Total por Região"
	titleMonth  = "Evolução Mensal Geral"
)

// Write renders the report in the given output format.
func Write(w io.Writer, outputFormat string, t report.Table, s report.Summary) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, s)
	case constants.OutputFormatCSV:
		return CsvFormat(w, t)
	case constants.OutputFormatMarkdown:
		return MarkdownFormat(w, s)
	case constants.OutputFormatJSON:
		return JSONFormat(w, s)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable summary.
func PrettyFormat(w io.Writer, s report.Summary) error {
	sections := []struct {
		title  string
		column string
		totals []report.Total
	}{
		{titlePerson, constants.ColumnPerson, s.ByPerson},
		{titleRegion, constants.ColumnRegion, s.ByRegion},
		{titleMonth, constants.ColumnMonth, s.ByMonth},
	}

	if _, err := fmt.Fprintf(w, "Registros: %d | Total: %s\n\n", s.Rows, format.Currency(s.Total)); err != nil {
		return err
	}
	for i, section := range sections {
		if _, err := fmt.Fprintf(w, "--- %s ---\n%s | Valor\n______ | _____\n", section.title, section.column); err != nil {
			return err
		}
		for _, t := range section.totals {
			if _, err := fmt.Fprintf(w, "%s | %s\n", t.Label, currencyOrMissing(t)); err != nil {
				return err
			}
		}
		if i < len(sections)-1 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// CsvFormat outputs the filtered table in comma-separated value format.
func CsvFormat(w io.Writer, t report.Table) error {
	return export.WriteCSV(w, t)
}

// MarkdownFormat outputs the three summaries as Markdown tables.
func MarkdownFormat(w io.Writer, s report.Summary) error {
	doc := md.NewMarkdown(w)
	doc.H1("Painel de Pedidos")
	doc.PlainText(fmt.Sprintf("Registros: %d | Total: %s", s.Rows, format.Currency(s.Total)))

	doc.H2(titlePerson)
	doc.Table(totalsTable(constants.ColumnPerson, s.ByPerson))
	doc.H2(titleRegion)
	doc.Table(totalsTable(constants.ColumnRegion, s.ByRegion))
	doc.H2(titleMonth)
	doc.Table(totalsTable(constants.ColumnMonth, s.ByMonth))

	return doc.Build()
}

// JSONFormat outputs the summary as indented JSON.
func JSONFormat(w io.Writer, s report.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func totalsTable(column string, totals []report.Total) md.TableSet {
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []string{t.Label, currencyOrMissing(t)})
	}
	return md.TableSet{
		Header: []string{column, constants.ColumnValue},
		Rows:   rows,
	}
}

func currencyOrMissing(t report.Total) string {
	if !t.Present() {
		return missingTotal
	}
	return format.Currency(t.Value())
}
