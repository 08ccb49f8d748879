// Package export serializes report tables and summaries into downloadable
// artifacts: the consolidated CSV and workbook, and PNG charts. Every function
// here produces bytes; writing them somewhere is up to the caller.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
)

// ErrBadHeader is returned by ReadCSV when the header row does not match the
// consolidated table columns.
var ErrBadHeader = errors.New("unexpected CSV header")

// Header is the consolidated table header, in column order.
var Header = []string{
	constants.ColumnMonth,
	constants.ColumnRegion,
	constants.ColumnValue,
	constants.ColumnPerson,
}

const utf8BOM = "\ufeff"

// WriteCSV writes t as UTF-8 CSV with a header row and one line per record.
func WriteCSV(w io.Writer, t report.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range t.Records {
		if err := cw.Write([]string{r.Month, r.Region, FormatValue(r.Value), r.Person}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVBytes returns the CSV encoding of t.
func CSVBytes(t report.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadCSV parses a table written by WriteCSV.
func ReadCSV(r io.Reader) (report.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return report.Table{}, fmt.Errorf("%w: missing header", ErrBadHeader)
		}
		return report.Table{}, err
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i, name := range Header {
		if header[i] != name {
			return report.Table{}, fmt.Errorf("%w: column %d is %q, expected %q", ErrBadHeader, i+1, header[i], name)
		}
	}

	var t report.Table
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report.Table{}, err
		}
		v, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			line, _ := cr.FieldPos(2)
			return report.Table{}, fmt.Errorf("line %d: invalid value %q: %w", line, rec[2], err)
		}
		t.Records = append(t.Records, report.Record{Month: rec[0], Region: rec[1], Value: v, Person: rec[3]})
	}
	return t, nil
}

// FormatValue renders a value with the fewest digits that read back exactly.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
