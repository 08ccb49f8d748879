// Package normalize reshapes per-person order sheets into the canonical long
// table. Each admitted sheet contributes one record per (month row, region
// column) pair, tagged with the sheet name as the person.
package normalize

import (
	"errors"
	"fmt"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/internal/workbook"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"go.uber.org/zap"
)

// ErrNoQualifyingSheets means no sheet of the workbook produced any record.
// Callers present it as an empty result rather than a failure.
var ErrNoQualifyingSheets = errors.New("no sheet contains monthly order rows")

// Skip reasons reported in SheetResult.
const (
	ReasonEmpty       = "empty"
	ReasonTooFewCols  = "fewer than 2 columns"
	ReasonNoMonthRows = "no month rows"
)

// SheetResult describes what one sheet contributed.
type SheetResult struct {
	Name     string `json:"name"`
	Admitted bool   `json:"admitted"`
	Reason   string `json:"reason,omitempty"`
	Months   int    `json:"months"`
	Regions  int    `json:"regions"`
	Records  int    `json:"records"`
	Degraded int    `json:"degraded"`
}

// Result is the outcome of normalizing a workbook.
type Result struct {
	Table  report.Table
	Sheets []SheetResult
	// Degraded counts values that could not be parsed and were read as 0.
	Degraded int
}

// Normalizer turns workbooks into canonical tables.
type Normalizer struct {
	logger *zap.Logger
	months map[string]struct{}
}

// New returns a Normalizer that logs to logger.
func New(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	months := make(map[string]struct{}, len(constants.Months))
	for _, m := range constants.Months {
		months[m] = struct{}{}
	}
	return &Normalizer{logger: logger, months: months}
}

// Normalize builds the canonical table from every sheet of wb, in workbook
// order. It returns ErrNoQualifyingSheets, together with the per-sheet
// results, when no sheet contributed a record.
func (n *Normalizer) Normalize(wb workbook.Workbook) (Result, error) {
	var res Result
	names := wb.SheetNames()

	for _, name := range names {
		sheet, err := wb.Sheet(name)
		if err != nil {
			return res, &workbook.SheetError{Sheet: name, Err: err}
		}

		records, sr := n.sheetRecords(sheet)
		res.Table.Records = append(res.Table.Records, records...)
		res.Sheets = append(res.Sheets, sr)
		res.Degraded += sr.Degraded

		n.logger.Debug("sheet normalized",
			zap.String("op", "normalize.Normalize"),
			zap.String("sheet", sr.Name),
			zap.Bool("admitted", sr.Admitted),
			zap.String("reason", sr.Reason),
			zap.Int("months", sr.Months),
			zap.Int("regions", sr.Regions),
			zap.Int("records", sr.Records),
		)
	}

	if res.Degraded > 0 {
		n.logger.Debug("unparseable values read as zero",
			zap.String("op", "normalize.Normalize"),
			zap.Int("count", res.Degraded),
		)
	}

	if res.Table.Empty() {
		return res, fmt.Errorf("%w (%d sheets examined)", ErrNoQualifyingSheets, len(names))
	}
	return res, nil
}

// sheetRecords admits, filters and melts one sheet. Records come out
// month-major: every region of the first month row, then the next row.
func (n *Normalizer) sheetRecords(sheet workbook.Sheet) ([]report.Record, SheetResult) {
	sr := SheetResult{Name: sheet.Name()}
	rows := sheet.Rows()

	switch {
	case len(rows) == 0:
		sr.Reason = ReasonEmpty
		return nil, sr
	case sheet.Width() < 2:
		sr.Reason = ReasonTooFewCols
		return nil, sr
	}

	var monthRows [][]workbook.Cell
	for _, row := range rows {
		if n.isMonth(row[0]) {
			monthRows = append(monthRows, row)
		}
	}
	if len(monthRows) == 0 {
		sr.Reason = ReasonNoMonthRows
		return nil, sr
	}

	regions := sheet.HeaderRow()[1:]
	sr.Admitted = true
	sr.Months = len(monthRows)
	sr.Regions = len(regions)

	records := make([]report.Record, 0, len(monthRows)*len(regions))
	for _, row := range monthRows {
		for i, region := range regions {
			cell := row[i+1]
			value, err := ParseValue(cell)
			if err != nil {
				sr.Degraded++
			}
			records = append(records, report.Record{
				Month:  row[0].Text,
				Region: region,
				Value:  value,
				Person: sheet.Name(),
			})
		}
	}
	sr.Records = len(records)
	return records, sr
}

func (n *Normalizer) isMonth(c workbook.Cell) bool {
	if c.Kind != workbook.Text {
		return false
	}
	_, ok := n.months[c.Text]
	return ok
}
