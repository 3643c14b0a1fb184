package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
)

const testReportPathKey = "BITRISE_TEST_REPORT_PATH"

// Exporter ...
type Exporter interface {
	ExportReport(deployDir, reportPth string) error
}

type exporter struct {
	envRepository  env.Repository
	logger         log.Logger
	outputExporter export.Exporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter export.Exporter) Exporter {
	return &exporter{
		envRepository:  envRepository,
		logger:         logger,
		outputExporter: outputExporter,
	}
}

// ExportReport exposes the generated report for subsequent steps. The report
// path is exported as BITRISE_TEST_REPORT_PATH; when a deploy dir is
// configured the workbook is copied there first so it gets attached to the
// build as an artifact.
func (e exporter) ExportReport(deployDir, reportPth string) error {
	if err := e.envRepository.Set(testReportPathKey, reportPth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", testReportPathKey, err)
	}

	if deployDir == "" {
		return nil
	}

	deployPth := filepath.Join(deployDir, filepath.Base(reportPth))
	if err := e.outputExporter.ExportOutputFile(testReportPathKey, reportPth, deployPth); err != nil {
		return fmt.Errorf("failed to deploy report (%s): %w", deployPth, err)
	}

	e.logger.Donef("The report is available in: %s", deployPth)
	return nil
}
