package results

import "strings"

// Final status labels of a test case, resolved across its retries.
const (
	StatusPassed  = "PASSED"
	StatusSkipped = "SKIPPED"
	StatusFailed  = "FAILED"
	StatusUnknown = "UNKNOWN"
)

// statusPriority ranks raw statuses so the worst one wins across duplicate
// rows of the same test case.
var statusPriority = map[string]int{
	"ERROR":   4,
	"FAILED":  3,
	"FAIL":    3,
	"SKIPPED": 2,
	"SKIP":    2,
	"PASSED":  1,
	"PASS":    1,
}

// SuiteCounts ...
type SuiteCounts struct {
	Total   int
	Passed  int
	Skipped int
	Failed  int
}

// CaseCounts counts unique test case names per final status.
// Total == Passed + Skipped + Failed + Unknown always holds; Unknown is 0 for
// well-formed input.
type CaseCounts struct {
	Total   int
	Passed  int
	Skipped int
	Failed  int
	Unknown int
}

// Totals ...
type Totals struct {
	Passed   int
	Skipped  int
	Failed   int
	Warnings int
	Errors   int
	TimeSec  float64
}

// Summary is the aggregate view of a test run, recomputed from the raw rows on
// every run.
type Summary struct {
	Suites  SuiteCounts
	Cases   CaseCounts
	Overall Totals
}

// StatusPriority returns the rank of a raw status value, 0 for unknown ones.
func StatusPriority(status string) int {
	return statusPriority[normalizeStatus(status)]
}

// ResolveStatus maps the maximum priority observed for a test case back to its
// final status label. An errored test case counts as failed.
func ResolveStatus(priority int) string {
	switch {
	case priority >= 3:
		return StatusFailed
	case priority >= 2:
		return StatusSkipped
	case priority >= 1:
		return StatusPassed
	default:
		return StatusUnknown
	}
}

// Summarize derives suite, test case and overall counts from the two row
// partitions. Test cases are deduplicated by name with the worst status
// winning; suites are deduplicated by suite name per status bucket. Warnings,
// errors and time are summed over the suite summary rows.
func Summarize(results TestResults) Summary {
	maxPriority := map[string]int{}
	for _, row := range results.TestCases {
		priority := StatusPriority(row.Status)
		if current, found := maxPriority[row.TestCase]; !found || priority > current {
			maxPriority[row.TestCase] = priority
		}
	}

	cases := CaseCounts{Total: len(maxPriority)}
	for _, priority := range maxPriority {
		switch ResolveStatus(priority) {
		case StatusFailed:
			cases.Failed++
		case StatusSkipped:
			cases.Skipped++
		case StatusPassed:
			cases.Passed++
		default:
			cases.Unknown++
		}
	}

	allSuites := map[string]bool{}
	passedSuites := map[string]bool{}
	skippedSuites := map[string]bool{}
	failedSuites := map[string]bool{}
	overall := Totals{}

	for _, row := range results.SuiteSummaries {
		overall.Warnings += row.Warnings
		overall.Errors += row.Errors
		overall.TimeSec += row.TimeSec

		allSuites[row.TestSuite] = true
		switch normalizeStatus(row.Status) {
		case "PASS", "PASSED":
			passedSuites[row.TestSuite] = true
		case "SKIPPED", "SKIP":
			skippedSuites[row.TestSuite] = true
		case "FAIL", "FAILED", "ERROR":
			failedSuites[row.TestSuite] = true
		}
	}

	suites := SuiteCounts{
		Total:   len(allSuites),
		Passed:  len(passedSuites),
		Skipped: len(skippedSuites),
		Failed:  len(failedSuites),
	}

	overall.Passed = suites.Passed + cases.Passed
	overall.Skipped = suites.Skipped + cases.Skipped
	overall.Failed = suites.Failed + cases.Failed

	return Summary{
		Suites:  suites,
		Cases:   cases,
		Overall: overall,
	}
}

// FailingRows collects the rows whose status marks a failure, test cases
// first, suite summaries after, both in input order. These are the rows the
// error log lookup runs for.
func FailingRows(results TestResults) []Row {
	var failing []Row
	for _, row := range results.TestCases {
		if isFailingStatus(row.Status) {
			failing = append(failing, row)
		}
	}
	for _, row := range results.SuiteSummaries {
		if isFailingStatus(row.Status) {
			failing = append(failing, row)
		}
	}
	return failing
}

func isFailingStatus(status string) bool {
	switch normalizeStatus(status) {
	case "FAIL", "FAILED", "ERROR":
		return true
	default:
		return false
	}
}

func normalizeStatus(status string) string {
	return strings.ToUpper(strings.TrimSpace(status))
}
