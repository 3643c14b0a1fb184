package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// defaultSheetName is the sheet excelize creates with every new workbook.
const defaultSheetName = "Sheet1"

// Header fill colors, one per sheet.
const (
	summaryHeaderColor  = "4F81BD"
	detailedHeaderColor = "9BBB59"
	suitesHeaderColor   = "4BACC6"
	errorHeaderColor    = "FF0000"
)

// Start rows of the three Summary sheet metric tables, each table being a
// Metric/Value header followed by its rows.
const (
	suitesTableRow  = 1
	casesTableRow   = 6
	overallTableRow = 11
)

// statusColumn is the 1-based index of the Status column on the results sheets.
const statusColumn = 3

// timeSecColumn is the 1-based index of the Time (s) column on the results sheets.
const timeSecColumn = 8

// slowTestThresholdSec marks test rows slower than this for highlighting.
const slowTestThresholdSec = "1.0"

const slowTestFillColor = "FF9999"

var statusFillColors = map[string]string{
	"PASS":    "C6EFCE",
	"PASSED":  "C6EFCE",
	"SKIP":    "FFEB9C",
	"SKIPPED": "FFEB9C",
	"FAIL":    "FFC7CE",
	"FAILED":  "FFC7CE",
	"ERROR":   "FFC7CE",
}

type metric struct {
	name  string
	value interface{}
}

type metricTable struct {
	startRow int
	metrics  []metric
}

func newHeaderStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

// columnWidths tracks the longest cell text per column so columns can be sized
// to their content.
type columnWidths struct {
	maxLens []int
}

func newColumnWidths(columns int) *columnWidths {
	return &columnWidths{maxLens: make([]int, columns)}
}

func (c *columnWidths) observe(column int, value interface{}) {
	length := len(fmt.Sprint(value))
	if length > c.maxLens[column] {
		c.maxLens[column] = length
	}
}

func (c *columnWidths) apply(f *excelize.File, sheet string) error {
	for i, maxLen := range c.maxLens {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		width := float64(maxLen + 2)
		if width > excelize.MaxColumnWidth {
			width = excelize.MaxColumnWidth
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// writeMetricTable writes one Metric/Value header row plus the metric rows,
// starting at table.startRow.
func writeMetricTable(f *excelize.File, table metricTable, headerStyle int, widths *columnWidths) error {
	headerCells := []interface{}{"Metric", "Value"}
	for i, value := range headerCells {
		cell, err := excelize.CoordinatesToCellName(i+1, table.startRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, cell, value); err != nil {
			return err
		}
		widths.observe(i, value)
	}

	firstCell, err := excelize.CoordinatesToCellName(1, table.startRow)
	if err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(len(headerCells), table.startRow)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, firstCell, lastCell, headerStyle); err != nil {
		return err
	}

	for i, m := range table.metrics {
		row := table.startRow + 1 + i
		nameCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, nameCell, m.name); err != nil {
			return err
		}
		widths.observe(0, m.name)

		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, valueCell, m.value); err != nil {
			return err
		}
		widths.observe(1, m.value)
	}

	return nil
}

// writeTable creates sheet with a styled header row, one row per record and
// content-sized columns.
func writeTable(f *excelize.File, sheet string, headers []string, records [][]interface{}, headerColor string) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	widths := newColumnWidths(len(headers))
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		widths.observe(i, header)
	}

	headerStyle, err := newHeaderStyle(f, headerColor)
	if err != nil {
		return err
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return err
	}

	for rowIndex, record := range records {
		for colIndex, value := range record {
			cell, err := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			widths.observe(colIndex, value)
		}
	}

	return widths.apply(f, sheet)
}

// applyStatusFills paints the status cells with the fill color belonging to
// their value, centered, leaving unknown statuses unstyled.
func applyStatusFills(f *excelize.File, sheet string, column, rowCount int) error {
	styles := map[string]int{}

	for i := 0; i < rowCount; i++ {
		cell, err := excelize.CoordinatesToCellName(column, i+2)
		if err != nil {
			return err
		}
		status, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return err
		}

		color, found := statusFillColors[strings.ToUpper(status)]
		if !found {
			continue
		}

		styleID, found := styles[color]
		if !found {
			styleID, err = f.NewStyle(&excelize.Style{
				Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
				Alignment: &excelize.Alignment{Horizontal: "center"},
			})
			if err != nil {
				return err
			}
			styles[color] = styleID
		}

		if err := f.SetCellStyle(sheet, cell, cell, styleID); err != nil {
			return err
		}
	}

	return nil
}

// highlightSlowTests adds a conditional format rule painting Time (s) values
// greater than the slow test threshold red.
func highlightSlowTests(f *excelize.File, sheet string, rowCount int) error {
	if rowCount == 0 {
		return nil
	}

	styleID, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{slowTestFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	column, err := excelize.ColumnNumberToName(timeSecColumn)
	if err != nil {
		return err
	}
	rangeRef := fmt.Sprintf("%s2:%s%d", column, column, rowCount+1)

	return f.SetConditionalFormat(sheet, rangeRef, []excelize.ConditionalFormatOptions{
		{
			Type:     "cell",
			Criteria: ">",
			Value:    slowTestThresholdSec,
			Format:   styleID,
		},
	})
}

// addStatusPie attaches a pie chart over the Passed/Skipped/Failed rows of the
// metric table starting at tableRow.
func addStatusPie(f *excelize.File, title string, tableRow int, cell string) error {
	firstRow := tableRow + 2
	lastRow := tableRow + 4
	varyColors := true

	return f.AddChart(SheetSummary, cell, &excelize.Chart{
		Type: excelize.Pie,
		Series: []excelize.ChartSeries{
			{
				Name:       title,
				Categories: fmt.Sprintf("%s!$A$%d:$A$%d", SheetSummary, firstRow, lastRow),
				Values:     fmt.Sprintf("%s!$B$%d:$B$%d", SheetSummary, firstRow, lastRow),
			},
		},
		Title:      []excelize.RichTextRun{{Text: title}},
		VaryColors: &varyColors,
		PlotArea:   excelize.ChartPlotArea{ShowPercent: true},
	})
}

// wrapErrorDetails turns on text wrapping for the Error Details column.
func wrapErrorDetails(f *excelize.File, rowCount int) error {
	if rowCount == 0 {
		return nil
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	column, err := excelize.ColumnNumberToName(len(errorLogHeaders))
	if err != nil {
		return err
	}

	firstCell := fmt.Sprintf("%s2", column)
	lastCell := fmt.Sprintf("%s%d", column, rowCount+1)
	return f.SetCellStyle(SheetErrorLogs, firstCell, lastCell, styleID)
}

func normalizedStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}
