package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() report.Table {
	return report.Table{Records: []report.Record{
		{Month: "JANEIRO", Region: "Norte", Value: 1234.56, Person: "Ana"},
		{Month: "JANEIRO", Region: "Sul, Interior", Value: 0, Person: "Ana"},
		{Month: "MARÇO", Region: "Norte", Value: 1234567.89, Person: "João \"Jota\""},
		{Month: "DEZEMBRO", Region: "Região Sul", Value: 0.1, Person: "Bruno"},
	}}
}

func TestWriteCSVFormat(t *testing.T) {
	data, err := CSVBytes(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Mês,Região,Valor,Pessoa", lines[0])
	assert.Equal(t, "JANEIRO,Norte,1234.56,Ana", lines[1])
	assert.Equal(t, `JANEIRO,"Sul, Interior",0,Ana`, lines[2])
	assert.Equal(t, `MARÇO,Norte,1234567.89,"João ""Jota"""`, lines[3])
}

func TestCSVRoundTrip(t *testing.T) {
	original := sampleTable()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original))

	parsed, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Equal(t, original.Len(), parsed.Len())
	for i := range original.Records {
		assert.Equal(t, original.Records[i].Month, parsed.Records[i].Month)
		assert.Equal(t, original.Records[i].Region, parsed.Records[i].Region)
		assert.Equal(t, original.Records[i].Person, parsed.Records[i].Person)
		assert.InDelta(t, original.Records[i].Value, parsed.Records[i].Value, 1e-9)
	}
}

func TestCSVRoundTripEmptyTable(t *testing.T) {
	data, err := CSVBytes(report.Table{})
	require.NoError(t, err)

	parsed, err := ReadCSV(bytes.NewReader(data))
	require.NoError(t, err)
	assert.True(t, parsed.Empty())
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"wrong header", "Month,Region,Value,Person\n"},
		{"bad value", "Mês,Região,Valor,Pessoa\nJANEIRO,Norte,abc,Ana\n"},
		{"short row", "Mês,Região,Valor,Pessoa\nJANEIRO,Norte\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadCSVAcceptsBOM(t *testing.T) {
	parsed, err := ReadCSV(strings.NewReader("\ufeffMês,Região,Valor,Pessoa\nMAIO,Sul,10.5,Ana\n"))
	require.NoError(t, err)
	assert.Equal(t, []report.Record{{Month: "MAIO", Region: "Sul", Value: 10.5, Person: "Ana"}}, parsed.Records)
}

func TestWriteXLSX(t *testing.T) {
	data, err := XLSXBytes(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	assert.Equal(t, []string{constants.ConsolidatedSheetName}, f.GetSheetList())
	rows, err := f.GetRows(constants.ConsolidatedSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, "MARÇO", rows[3][0])
	assert.Equal(t, "Bruno", rows[4][3])
}

func TestRenderChartsProducePNG(t *testing.T) {
	summary := report.Summarize(sampleTable())

	for _, kind := range ChartKinds {
		t.Run(string(kind), func(t *testing.T) {
			data, err := RenderChart(kind, summary, ChartOptions{Width: 4, Height: 3})
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Greater(t, img.Bounds().Dx(), 0)
			assert.Greater(t, img.Bounds().Dy(), 0)
		})
	}
}

func TestRenderChartsEmptySummary(t *testing.T) {
	summary := report.Summarize(report.Table{})
	for _, kind := range ChartKinds {
		data, err := RenderChart(kind, summary, DefaultChartOptions())
		require.NoError(t, err, kind)
		assert.NotEmpty(t, data)
	}
}

func TestParseChartKind(t *testing.T) {
	k, err := ParseChartKind("mensal")
	require.NoError(t, err)
	assert.Equal(t, ChartMonth, k)
	assert.Equal(t, "grafico_mensal.png", k.FileName())

	_, err = ParseChartKind("pizza")
	assert.Error(t, err)
}

func TestBundleAndWriteDir(t *testing.T) {
	tbl := sampleTable()
	artifacts, err := Bundle(tbl, report.Summarize(tbl), Options{XLSX: true})
	require.NoError(t, err)

	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
		assert.NotEmpty(t, a.Data, a.Name)
	}
	assert.Equal(t, []string{
		"consolidado_pedidos.csv",
		"grafico_pessoa.png",
		"grafico_regiao.png",
		"grafico_mensal.png",
		"consolidado_pedidos.xlsx",
	}, names)

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteDir(dir, artifacts)
	require.NoError(t, err)
	require.Len(t, paths, len(artifacts))

	written, err := os.ReadFile(filepath.Join(dir, constants.CSVFileName))
	require.NoError(t, err)
	assert.Equal(t, artifacts[0].Data, written)
}
