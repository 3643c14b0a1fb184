package step

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test-report-export/output"
	"github.com/bitrise-steplib/steps-test-report-export/report"
	"github.com/bitrise-steplib/steps-test-report-export/results"
)

// Input ...
type Input struct {
	TestResultsPth string `env:"test_results_path,required"`
	ErrorLogsDir   string `env:"error_logs_dir"`
	ReportPth      string `env:"report_path,required"`

	// Debug
	VerboseLog bool `env:"verbose_log,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	TestResultsPth string
	ErrorLogsDir   string
	ReportPth      string
	DeployDir      string
}

// Result ...
type Result struct {
	ReportPth string
	DeployDir string
	Summary   results.Summary
	HasReport bool
}

// TestReportGenerator ...
type TestReportGenerator struct {
	inputParser    stepconf.InputParser
	logger         log.Logger
	pathChecker    pathutil.PathChecker
	pathModifier   pathutil.PathModifier
	resultsReader  results.Reader
	reportWriter   report.Writer
	outputExporter output.Exporter
}

// NewTestReportGenerator ...
func NewTestReportGenerator(inputParser stepconf.InputParser, logger log.Logger, pathChecker pathutil.PathChecker, pathModifier pathutil.PathModifier, resultsReader results.Reader, reportWriter report.Writer, outputExporter output.Exporter) TestReportGenerator {
	return TestReportGenerator{
		inputParser:    inputParser,
		logger:         logger,
		pathChecker:    pathChecker,
		pathModifier:   pathModifier,
		resultsReader:  resultsReader,
		reportWriter:   reportWriter,
		outputExporter: outputExporter,
	}
}

// ProcessConfig ...
func (s TestReportGenerator) ProcessConfig() (Config, error) {
	var input Input
	if err := s.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	s.logger.Println()

	s.logger.EnableDebugLog(input.VerboseLog)

	if strings.ToLower(filepath.Ext(input.ReportPth)) != ".xlsx" {
		return Config{}, fmt.Errorf("invalid report path (%s), extension should be .xlsx", input.ReportPth)
	}

	testResultsPth, err := s.pathModifier.AbsPath(input.TestResultsPth)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute test results path: %w", err)
	}

	errorLogsDir := input.ErrorLogsDir
	if errorLogsDir != "" {
		errorLogsDir, err = s.pathModifier.AbsPath(errorLogsDir)
		if err != nil {
			return Config{}, fmt.Errorf("failed to get absolute error logs dir: %w", err)
		}
	}

	reportPth, err := s.pathModifier.AbsPath(input.ReportPth)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute report path: %w", err)
	}

	return Config{
		TestResultsPth: testResultsPth,
		ErrorLogsDir:   errorLogsDir,
		ReportPth:      reportPth,
		DeployDir:      input.DeployDir,
	}, nil
}

// Run reads the results CSV, aggregates the counts and writes the workbook.
// A missing results file or an empty result set is reported and ends the run
// cleanly without producing a report.
func (s TestReportGenerator) Run(cfg Config) (Result, error) {
	exists, err := s.pathChecker.IsPathExists(cfg.TestResultsPth)
	if err != nil {
		return Result{}, fmt.Errorf("failed to check results file (%s): %w", cfg.TestResultsPth, err)
	}
	if !exists {
		s.logger.Errorf("Results file not found: %s", cfg.TestResultsPth)
		return Result{}, nil
	}

	s.logger.Infof("Reading test results")
	testResults, err := s.resultsReader.ReadTestResults(cfg.TestResultsPth)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read test results: %w", err)
	}
	if testResults.Empty() {
		s.logger.Warnf("No valid test results found to generate the report.")
		return Result{}, nil
	}
	s.logger.Printf("- %d test case row(s), %d suite summary row(s)", len(testResults.TestCases), len(testResults.SuiteSummaries))
	s.logger.Println()

	summary := results.Summarize(testResults)
	printSummary(s.logger, summary)

	s.logger.Infof("Generating report")
	if err := s.reportWriter.Write(report.WriteOpts{
		ReportPth:    cfg.ReportPth,
		ErrorLogsDir: cfg.ErrorLogsDir,
		Results:      testResults,
		Summary:      summary,
	}); err != nil {
		return Result{}, fmt.Errorf("failed to generate report: %w", err)
	}
	s.logger.Donef("Report generated: %s", cfg.ReportPth)

	return Result{
		ReportPth: cfg.ReportPth,
		DeployDir: cfg.DeployDir,
		Summary:   summary,
		HasReport: true,
	}, nil
}

// Export ...
func (s TestReportGenerator) Export(result Result) error {
	if !result.HasReport {
		return nil
	}

	return s.outputExporter.ExportReport(result.DeployDir, result.ReportPth)
}
