package step

import (
	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-test-report-export/results"
)

func printSummary(logger log.Logger, summary results.Summary) {
	logger.Infof("Test summary")

	logger.Printf("Test suites: %d", summary.Suites.Total)
	logger.Printf("- %s", colorstring.Greenf("%d passed", summary.Suites.Passed))
	logger.Printf("- %s", colorstring.Yellowf("%d skipped", summary.Suites.Skipped))
	logger.Printf("- %s", colorstring.Redf("%d failed", summary.Suites.Failed))

	logger.Printf("Test cases: %d", summary.Cases.Total)
	logger.Printf("- %s", colorstring.Greenf("%d passed", summary.Cases.Passed))
	logger.Printf("- %s", colorstring.Yellowf("%d skipped", summary.Cases.Skipped))
	logger.Printf("- %s", colorstring.Redf("%d failed", summary.Cases.Failed))
	if summary.Cases.Unknown > 0 {
		logger.Warnf("- %d with unknown status", summary.Cases.Unknown)
	}

	logger.Printf("Warnings: %d, errors: %d", summary.Overall.Warnings, summary.Overall.Errors)
	logger.Printf("Total time: %.2fs", summary.Overall.TimeSec)
	logger.Println()
}
