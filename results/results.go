package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// suite summary rows are marked by this sentinel in the Test Case column.
const suiteSummaryMarker = "suite summary"

var expectedColumns = []string{"Test Suite", "Test Case", "Status", "Time", "Warnings", "Errors", "Skipped"}

var timePattern = regexp.MustCompile(`(\d+[.,]?\d*)s`)

// Row is one record of the test results CSV.
type Row struct {
	TestSuite string
	TestCase  string
	Status    string
	Time      string
	Warnings  int
	Errors    int
	Skipped   int
	TimeSec   float64
}

// TestResults holds the two partitions of the results CSV: individual test case
// rows and suite summary rows.
type TestResults struct {
	TestCases      []Row
	SuiteSummaries []Row
}

// Empty ...
func (r TestResults) Empty() bool {
	return len(r.TestCases) == 0 && len(r.SuiteSummaries) == 0
}

// Reader ...
type Reader interface {
	ReadTestResults(pth string) (TestResults, error)
}

type reader struct {
	fileManager fileutil.FileManager
	logger      log.Logger
}

// NewReader ...
func NewReader(fileManager fileutil.FileManager, logger log.Logger) Reader {
	return reader{
		fileManager: fileManager,
		logger:      logger,
	}
}

// ReadTestResults parses the results CSV at pth and splits its rows into the
// test case and suite summary partitions. A CSV that cannot be parsed or whose
// header misses an expected column yields two empty partitions, not an error.
func (r reader) ReadTestResults(pth string) (TestResults, error) {
	file, err := r.fileManager.Open(pth)
	if err != nil {
		return TestResults{}, fmt.Errorf("failed to open results file (%s): %w", pth, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			r.logger.Warnf("Failed to close results file: %s", err)
		}
	}()

	return r.parse(file), nil
}

func (r reader) parse(in io.Reader) TestResults {
	csvReader := csv.NewReader(in)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		r.logger.Warnf("Failed to parse results file: %s", err)
		return TestResults{}
	}
	if len(records) == 0 {
		return TestResults{}
	}

	header := records[0]
	columns, ok := mapColumns(header)
	if !ok {
		r.logger.Warnf("Results file header is missing expected columns (%s)", strings.Join(expectedColumns, ", "))
		return TestResults{}
	}

	var results TestResults
	rejected := 0
	for _, record := range records[1:] {
		if len(record) > len(header) {
			rejected++
			continue
		}

		row := rowFromRecord(record, columns)
		if isSuiteSummary(row.TestCase) {
			results.SuiteSummaries = append(results.SuiteSummaries, row)
		} else {
			results.TestCases = append(results.TestCases, row)
		}
	}
	if rejected > 0 {
		r.logger.Warnf("Rejected %d row(s) with more fields than the header", rejected)
	}

	r.logger.Debugf("Parsed %d test case row(s) and %d suite summary row(s)", len(results.TestCases), len(results.SuiteSummaries))

	return results
}

// mapColumns resolves the expected column names to their indexes in the header.
// Column order in the file is free.
func mapColumns(header []string) (map[string]int, bool) {
	indexes := map[string]int{}
	for i, name := range header {
		indexes[strings.TrimSpace(name)] = i
	}

	columns := map[string]int{}
	for _, name := range expectedColumns {
		index, found := indexes[name]
		if !found {
			return nil, false
		}
		columns[name] = index
	}

	return columns, true
}

func rowFromRecord(record []string, columns map[string]int) Row {
	timeValue := field(record, columns["Time"])
	if timeValue == "" {
		timeValue = "0s"
	}

	return Row{
		TestSuite: field(record, columns["Test Suite"]),
		TestCase:  field(record, columns["Test Case"]),
		Status:    field(record, columns["Status"]),
		Time:      timeValue,
		Warnings:  intField(record, columns["Warnings"]),
		Errors:    intField(record, columns["Errors"]),
		Skipped:   intField(record, columns["Skipped"]),
		TimeSec:   ParseTime(timeValue),
	}
}

func field(record []string, index int) string {
	if index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func intField(record []string, index int) int {
	value, err := strconv.Atoi(field(record, index))
	if err != nil {
		return 0
	}
	return value
}

func isSuiteSummary(testCase string) bool {
	return strings.EqualFold(strings.TrimSpace(testCase), suiteSummaryMarker)
}

// ParseTime converts a duration string like "1.23s" or "1,23s" (comma as
// decimal separator) into seconds. Unparseable input yields 0.
func ParseTime(timeStr string) float64 {
	timeStr = strings.ReplaceAll(timeStr, ",", ".")
	match := timePattern.FindStringSubmatch(timeStr)
	if match == nil {
		return 0
	}

	seconds, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}
	return seconds
}
