package results

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenTimeString_WhenParsed_ThenSecondsReturned(t *testing.T) {
	tests := []struct {
		name    string
		timeStr string
		want    float64
	}{
		{name: "dot separator", timeStr: "2.50s", want: 2.5},
		{name: "comma separator", timeStr: "2,50s", want: 2.5},
		{name: "integer seconds", timeStr: "3s", want: 3},
		{name: "embedded in text", timeStr: "took 0.75s total", want: 0.75},
		{name: "empty", timeStr: "", want: 0},
		{name: "no unit", timeStr: "2.50", want: 0},
		{name: "garbage", timeStr: "abc", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTime(tt.timeStr))
		})
	}
}

func Test_GivenResultsFile_WhenRead_ThenRowsPartitioned(t *testing.T) {
	pth := writeResultsFile(t, `Test Suite,Test Case,Status,Time,Warnings,Errors,Skipped
suite_a.py,test_one,PASSED,0.50s,0,0,0
suite_a.py,test_two,FAILED,"2,25s",1,0,0
suite_a.py,Suite Summary,FAIL,3.00s,2,1,0
`)

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	require.Len(t, results.TestCases, 2)
	require.Len(t, results.SuiteSummaries, 1)

	assert.Equal(t, Row{
		TestSuite: "suite_a.py",
		TestCase:  "test_two",
		Status:    "FAILED",
		Time:      "2,25s",
		Warnings:  1,
		TimeSec:   2.25,
	}, results.TestCases[1])

	summary := results.SuiteSummaries[0]
	assert.Equal(t, "FAIL", summary.Status)
	assert.Equal(t, 2, summary.Warnings)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 3.0, summary.TimeSec)
}

func Test_GivenShuffledColumns_WhenRead_ThenColumnsMappedByName(t *testing.T) {
	pth := writeResultsFile(t, `Status,Test Case,Test Suite,Skipped,Errors,Warnings,Time
PASSED,test_one,suite_a.py,0,0,0,1.00s
`)

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	require.Len(t, results.TestCases, 1)
	assert.Equal(t, "suite_a.py", results.TestCases[0].TestSuite)
	assert.Equal(t, "test_one", results.TestCases[0].TestCase)
	assert.Equal(t, "PASSED", results.TestCases[0].Status)
}

func Test_GivenHeaderMissingColumn_WhenRead_ThenResultsEmpty(t *testing.T) {
	pth := writeResultsFile(t, `Test Suite,Test Case,Status
suite_a.py,test_one,PASSED
`)

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	assert.True(t, results.Empty())
}

func Test_GivenRowWithExtraFields_WhenRead_ThenRowRejected(t *testing.T) {
	pth := writeResultsFile(t, `Test Suite,Test Case,Status,Time,Warnings,Errors,Skipped
suite_a.py,test_one,PASSED,0.50s,0,0,0,unexpected
suite_a.py,test_two,PASSED,0.50s,0,0,0
`)

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	require.Len(t, results.TestCases, 1)
	assert.Equal(t, "test_two", results.TestCases[0].TestCase)
}

func Test_GivenRowWithMissingFields_WhenRead_ThenDefaultsApplied(t *testing.T) {
	pth := writeResultsFile(t, `Test Suite,Test Case,Status,Time,Warnings,Errors,Skipped
suite_a.py,test_one,PASSED
`)

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	require.Len(t, results.TestCases, 1)

	row := results.TestCases[0]
	assert.Equal(t, "0s", row.Time)
	assert.Equal(t, 0, row.Warnings)
	assert.Equal(t, 0, row.Errors)
	assert.Equal(t, 0, row.Skipped)
	assert.Equal(t, 0.0, row.TimeSec)
}

func Test_GivenMalformedFile_WhenRead_ThenResultsEmpty(t *testing.T) {
	pth := writeResultsFile(t, "Test Suite,Test Case,Status,Time,Warnings,Errors,Skipped\nsuite_a.py,\"unterminated,PASSED,1s,0,0,0\n")

	results, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	require.NoError(t, err)
	assert.True(t, results.Empty())
}

func Test_GivenMissingFile_WhenRead_ThenErrorReturned(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "missing.log")

	_, err := NewReader(fileutil.NewFileManager(), log.NewLogger()).ReadTestResults(pth)

	assert.Error(t, err)
}

func writeResultsFile(t *testing.T, content string) string {
	t.Helper()

	pth := filepath.Join(t.TempDir(), "test_results.log")
	require.NoError(t, fileutil.NewFileManager().Write(pth, content, 0600))

	return pth
}
