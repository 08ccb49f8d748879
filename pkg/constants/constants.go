// Package constants provides shared constants for the order-dashboard application.
package constants

// Months is the fixed calendar vocabulary used to select rows from a sheet and
// to order the monthly aggregate. Matching against sheet cells is byte-exact.
var Months = [12]string{
	"JANEIRO", "FEVEREIRO", "MARÇO", "ABRIL", "MAIO", "JUNHO",
	"JULHO", "AGOSTO", "SETEMBRO", "OUTUBRO", "NOVEMBRO", "DEZEMBRO",
}

// MonthIndex returns the zero-based calendar position of label, or -1 when the
// label is not one of Months.
func MonthIndex(label string) int {
	for i, m := range Months {
		if m == label {
			return i
		}
	}
	return -1
}

// Canonical table column names, also used as the CSV header.
const (
	ColumnMonth  = "Mês"
	ColumnRegion = "Região"
	ColumnValue  = "Valor"
	ColumnPerson = "Pessoa"
)

// Export file names
const (
	// CSVFileName is the name of the consolidated CSV export
	CSVFileName = "consolidado_pedidos.csv"

	// XLSXFileName is the name of the optional consolidated workbook export
	XLSXFileName = "consolidado_pedidos.xlsx"

	// PersonChartFileName is the per-person bar chart
	PersonChartFileName = "grafico_pessoa.png"

	// RegionChartFileName is the per-region bar chart
	RegionChartFileName = "grafico_regiao.png"

	// MonthChartFileName is the monthly line chart
	MonthChartFileName = "grafico_mensal.png"

	// ConsolidatedSheetName is the sheet name used in the xlsx export
	ConsolidatedSheetName = "Consolidado"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatMarkdown renders the summaries as Markdown tables
	OutputFormatMarkdown = "markdown"

	// OutputFormatJSON is the machine-readable summary format
	OutputFormatJSON = "json"
)

// Chart defaults, in inches
const (
	DefaultChartWidth  = 6.4
	DefaultChartHeight = 4.8
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the dashboard
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for workbooks (20 MB)
	DefaultMaxUploadSizeBytes int64 = 20 * 1024 * 1024
)

// Validation constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
