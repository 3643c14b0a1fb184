package report

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test-report-export/errorlog"
	"github.com/bitrise-steplib/steps-test-report-export/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func Test_GivenFailingRows_WhenWritten_ThenWorkbookHasAllSheets(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")

	err := newWriter().Write(WriteOpts{
		ReportPth:    reportPth,
		ErrorLogsDir: t.TempDir(),
		Results:      failingResults(),
		Summary:      results.Summarize(failingResults()),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, []string{SheetSummary, SheetDetailedResults, SheetSuiteSummaries, SheetErrorLogs}, f.GetSheetList())
}

func Test_GivenNoFailingRows_WhenWritten_ThenErrorLogsSheetOmitted(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")
	testResults := results.TestResults{
		TestCases:      []results.Row{{TestSuite: "suite_a.py", TestCase: "test_one", Status: "PASSED", Time: "1.00s", TimeSec: 1}},
		SuiteSummaries: []results.Row{{TestSuite: "suite_a.py", TestCase: "Suite Summary", Status: "PASS", Time: "1.00s", TimeSec: 1}},
	}

	err := newWriter().Write(WriteOpts{
		ReportPth: reportPth,
		Results:   testResults,
		Summary:   results.Summarize(testResults),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, []string{SheetSummary, SheetDetailedResults, SheetSuiteSummaries}, f.GetSheetList())
}

func Test_GivenSummary_WhenWritten_ThenMetricTablesFilled(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")

	err := newWriter().Write(WriteOpts{
		ReportPth:    reportPth,
		ErrorLogsDir: t.TempDir(),
		Results:      failingResults(),
		Summary:      results.Summarize(failingResults()),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, "Metric", cellValue(t, f, SheetSummary, "A1"))
	assert.Equal(t, "Total Test Suites", cellValue(t, f, SheetSummary, "A2"))
	assert.Equal(t, "1", cellValue(t, f, SheetSummary, "B2"))
	assert.Equal(t, "Total Test Cases", cellValue(t, f, SheetSummary, "A7"))
	assert.Equal(t, "2", cellValue(t, f, SheetSummary, "B7"))
	assert.Equal(t, "Total Passed", cellValue(t, f, SheetSummary, "A12"))
	assert.Equal(t, "1", cellValue(t, f, SheetSummary, "B12"))
	assert.Equal(t, "Total Failed", cellValue(t, f, SheetSummary, "A14"))
	assert.Equal(t, "2", cellValue(t, f, SheetSummary, "B14"))
	assert.Equal(t, "Total Warnings", cellValue(t, f, SheetSummary, "A15"))
	assert.Equal(t, "2", cellValue(t, f, SheetSummary, "B15"))
}

func Test_GivenRows_WhenWritten_ThenDetailedResultsListed(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")

	err := newWriter().Write(WriteOpts{
		ReportPth:    reportPth,
		ErrorLogsDir: t.TempDir(),
		Results:      failingResults(),
		Summary:      results.Summarize(failingResults()),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, "Test Suite", cellValue(t, f, SheetDetailedResults, "A1"))
	assert.Equal(t, "suite_a.py", cellValue(t, f, SheetDetailedResults, "A2"))
	assert.Equal(t, "test_one", cellValue(t, f, SheetDetailedResults, "B2"))
	assert.Equal(t, "FAILED", cellValue(t, f, SheetDetailedResults, "C2"))
	assert.Equal(t, "PASSED", cellValue(t, f, SheetDetailedResults, "C3"))
	assert.Equal(t, "2.5", cellValue(t, f, SheetDetailedResults, "H2"))

	assert.Equal(t, "FAIL", cellValue(t, f, SheetSuiteSummaries, "C2"))
}

func Test_GivenMissingErrorLogs_WhenWritten_ThenPlaceholderAttached(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")

	err := newWriter().Write(WriteOpts{
		ReportPth:    reportPth,
		ErrorLogsDir: t.TempDir(),
		Results:      failingResults(),
		Summary:      results.Summarize(failingResults()),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, "test_one", cellValue(t, f, SheetErrorLogs, "B2"))
	assert.Equal(t, errorlog.NotFoundPlaceholder, cellValue(t, f, SheetErrorLogs, "D2"))
	assert.Equal(t, "Suite Summary", cellValue(t, f, SheetErrorLogs, "B3"))
	assert.Equal(t, errorlog.NotFoundPlaceholder, cellValue(t, f, SheetErrorLogs, "D3"))
}

func Test_GivenErrorLogExists_WhenWritten_ThenContentAttached(t *testing.T) {
	reportPth := filepath.Join(t.TempDir(), "test_report.xlsx")
	errorLogsDir := t.TempDir()
	require.NoError(t, fileutil.NewFileManager().Write(filepath.Join(errorLogsDir, "suite_a_error.log"), "assertion failed", 0600))

	err := newWriter().Write(WriteOpts{
		ReportPth:    reportPth,
		ErrorLogsDir: errorLogsDir,
		Results:      failingResults(),
		Summary:      results.Summarize(failingResults()),
	})
	require.NoError(t, err)

	f := openWorkbook(t, reportPth)
	assert.Equal(t, "assertion failed", cellValue(t, f, SheetErrorLogs, "D2"))
}

func newWriter() Writer {
	logger := log.NewLogger()
	return NewWriter(errorlog.NewLoader(fileutil.NewFileManager(), pathutil.NewPathChecker(), logger), logger)
}

func failingResults() results.TestResults {
	return results.TestResults{
		TestCases: []results.Row{
			{TestSuite: "suite_a.py", TestCase: "test_one", Status: "failed", Time: "2.50s", Warnings: 1, TimeSec: 2.5},
			{TestSuite: "suite_a.py", TestCase: "test_two", Status: "PASSED", Time: "0.25s", TimeSec: 0.25},
		},
		SuiteSummaries: []results.Row{
			{TestSuite: "suite_a.py", TestCase: "Suite Summary", Status: "FAIL", Time: "3.00s", Warnings: 2, Errors: 1, TimeSec: 3},
		},
	}
}

func openWorkbook(t *testing.T, pth string) *excelize.File {
	t.Helper()

	f, err := excelize.OpenFile(pth)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, f.Close())
	})

	return f
}

func cellValue(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()

	value, err := f.GetCellValue(sheet, cell)
	require.NoError(t, err)

	return value
}
