package main

import (
	"os"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-test-report-export/errorlog"
	"github.com/bitrise-steplib/steps-test-report-export/output"
	"github.com/bitrise-steplib/steps-test-report-export/report"
	"github.com/bitrise-steplib/steps-test-report-export/results"
	"github.com/bitrise-steplib/steps-test-report-export/step"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	reportGenerator := createStep(logger)

	config, err := reportGenerator.ProcessConfig()
	if err != nil {
		logger.Errorf("Failed to process Step inputs: %s", err)
		return 1
	}

	result, err := reportGenerator.Run(config)
	if err != nil {
		logger.Errorf("Failed to execute Step: %s", err)
		return 1
	}

	if err := reportGenerator.Export(result); err != nil {
		logger.Errorf("Failed to export Step outputs: %s", err)
		return 1
	}

	return 0
}

func createStep(logger log.Logger) step.TestReportGenerator {
	envRepository := env.NewRepository()
	inputParser := stepconf.NewInputParser(envRepository)
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()
	pathChecker := pathutil.NewPathChecker()
	pathModifier := pathutil.NewPathModifier()

	resultsReader := results.NewReader(fileManager, logger)
	errorLogLoader := errorlog.NewLoader(fileManager, pathChecker, logger)
	reportWriter := report.NewWriter(errorLogLoader, logger)
	outputExporter := output.NewExporter(envRepository, logger, export.NewExporter(commandFactory))

	return step.NewTestReportGenerator(inputParser, logger, pathChecker, pathModifier, resultsReader, reportWriter, outputExporter)
}
