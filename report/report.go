package report

import (
	"fmt"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test-report-export/errorlog"
	"github.com/bitrise-steplib/steps-test-report-export/results"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the generated workbook.
const (
	SheetSummary         = "Summary"
	SheetDetailedResults = "Detailed Results"
	SheetSuiteSummaries  = "Suite Summaries"
	SheetErrorLogs       = "Error Logs"
)

var resultHeaders = []string{"Test Suite", "Test Case", "Status", "Time", "Warnings", "Errors", "Skipped", "Time (s)"}

var errorLogHeaders = []string{"Test Suite", "Test Case", "Status", "Error Details"}

// WriteOpts ...
type WriteOpts struct {
	ReportPth    string
	ErrorLogsDir string
	Results      results.TestResults
	Summary      results.Summary
}

// Writer ...
type Writer interface {
	Write(opts WriteOpts) error
}

type writer struct {
	errorLogs errorlog.Loader
	logger    log.Logger
}

// NewWriter ...
func NewWriter(errorLogs errorlog.Loader, logger log.Logger) Writer {
	return writer{
		errorLogs: errorLogs,
		logger:    logger,
	}
}

// Write renders the raw rows and the aggregate summary into a styled workbook
// at opts.ReportPth, overwriting any existing file. The Error Logs sheet is
// omitted when no failing row exists.
func (w writer) Write(opts WriteOpts) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warnf("Failed to close workbook: %s", err)
		}
	}()

	if err := w.createSummarySheet(f, opts.Summary); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", SheetSummary, err)
	}
	if err := w.createDetailedResultsSheet(f, opts.Results.TestCases); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", SheetDetailedResults, err)
	}
	if err := w.createSuiteSummariesSheet(f, opts.Results.SuiteSummaries); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", SheetSuiteSummaries, err)
	}

	failing := results.FailingRows(opts.Results)
	if len(failing) > 0 {
		if err := w.createErrorLogsSheet(f, failing, opts.ErrorLogsDir); err != nil {
			return fmt.Errorf("failed to create %s sheet: %w", SheetErrorLogs, err)
		}
	} else {
		w.logger.Printf("No failing rows, skipping the %s sheet", SheetErrorLogs)
	}

	if err := f.DeleteSheet(defaultSheetName); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(opts.ReportPth); err != nil {
		return fmt.Errorf("failed to save workbook (%s): %w", opts.ReportPth, err)
	}

	return nil
}

// createSummarySheet writes the three stacked metric tables (suites, test
// cases, overall) and attaches a pie chart for the suite and test case status
// distributions.
func (w writer) createSummarySheet(f *excelize.File, summary results.Summary) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}

	tables := []metricTable{
		{
			startRow: suitesTableRow,
			metrics: []metric{
				{"Total Test Suites", summary.Suites.Total},
				{"Passed", summary.Suites.Passed},
				{"Skipped", summary.Suites.Skipped},
				{"Failed", summary.Suites.Failed},
			},
		},
		{
			startRow: casesTableRow,
			metrics: []metric{
				{"Total Test Cases", summary.Cases.Total},
				{"Passed", summary.Cases.Passed},
				{"Skipped", summary.Cases.Skipped},
				{"Failed", summary.Cases.Failed},
			},
		},
		{
			startRow: overallTableRow,
			metrics: []metric{
				{"Total Passed", summary.Overall.Passed},
				{"Total Skipped", summary.Overall.Skipped},
				{"Total Failed", summary.Overall.Failed},
				{"Total Warnings", summary.Overall.Warnings},
				{"Total Errors", summary.Overall.Errors},
				{"Total Time (s)", summary.Overall.TimeSec},
			},
		},
	}

	headerStyle, err := newHeaderStyle(f, summaryHeaderColor)
	if err != nil {
		return err
	}

	widths := newColumnWidths(2)
	for _, table := range tables {
		if err := writeMetricTable(f, table, headerStyle, widths); err != nil {
			return err
		}
	}
	if err := widths.apply(f, SheetSummary); err != nil {
		return err
	}

	if err := addStatusPie(f, "Test Suites Status Distribution", suitesTableRow, "E1"); err != nil {
		return err
	}
	return addStatusPie(f, "Test Cases Status Distribution", casesTableRow, "E20")
}

func (w writer) createDetailedResultsSheet(f *excelize.File, rows []results.Row) error {
	records := make([][]interface{}, len(rows))
	for i, row := range rows {
		records[i] = resultRecord(row)
	}

	if err := w.writeResultSheet(f, SheetDetailedResults, detailedHeaderColor, records); err != nil {
		return err
	}

	return highlightSlowTests(f, SheetDetailedResults, len(rows))
}

func (w writer) createSuiteSummariesSheet(f *excelize.File, rows []results.Row) error {
	records := make([][]interface{}, len(rows))
	for i, row := range rows {
		records[i] = resultRecord(row)
	}

	return w.writeResultSheet(f, SheetSuiteSummaries, suitesHeaderColor, records)
}

// writeResultSheet renders a header plus one record per raw row and paints the
// status column with the per-status fill colors.
func (w writer) writeResultSheet(f *excelize.File, sheet, headerColor string, records [][]interface{}) error {
	if err := writeTable(f, sheet, resultHeaders, records, headerColor); err != nil {
		return err
	}

	return applyStatusFills(f, sheet, statusColumn, len(records))
}

func (w writer) createErrorLogsSheet(f *excelize.File, failing []results.Row, errorLogsDir string) error {
	records := make([][]interface{}, len(failing))
	for i, row := range failing {
		details := w.errorLogs.Load(errorLogsDir, row.TestSuite)
		records[i] = []interface{}{row.TestSuite, row.TestCase, normalizedStatus(row.Status), details}
	}

	if err := writeTable(f, SheetErrorLogs, errorLogHeaders, records, errorHeaderColor); err != nil {
		return err
	}

	return wrapErrorDetails(f, len(records))
}

func resultRecord(row results.Row) []interface{} {
	return []interface{}{
		row.TestSuite,
		row.TestCase,
		normalizedStatus(row.Status),
		row.Time,
		row.Warnings,
		row.Errors,
		row.Skipped,
		row.TimeSec,
	}
}
