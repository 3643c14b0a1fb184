package errorlog

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
)

// NotFoundPlaceholder is attached to a failing row when its error log file is
// missing or unreadable.
const NotFoundPlaceholder = "Error log file not found."

// Loader ...
type Loader interface {
	Load(dir, testSuite string) string
}

type loader struct {
	fileManager fileutil.FileManager
	pathChecker pathutil.PathChecker
	logger      log.Logger
}

// NewLoader ...
func NewLoader(fileManager fileutil.FileManager, pathChecker pathutil.PathChecker, logger log.Logger) Loader {
	return loader{
		fileManager: fileManager,
		pathChecker: pathChecker,
		logger:      logger,
	}
}

// Load returns the sanitized content of the suite's error log from dir, the
// file being named after the suite's base name without extension
// (<name>_error.log). A missing or unreadable file degrades to the
// NotFoundPlaceholder text.
func (l loader) Load(dir, testSuite string) string {
	name := strings.TrimSuffix(filepath.Base(testSuite), filepath.Ext(testSuite))
	pth := filepath.Join(dir, name+"_error.log")

	exists, err := l.pathChecker.IsPathExists(pth)
	if err != nil {
		l.logger.Warnf("Failed to check error log (%s): %s", pth, err)
		return NotFoundPlaceholder
	}
	if !exists {
		l.logger.Debugf("Error log not found: %s", pth)
		return NotFoundPlaceholder
	}

	file, err := l.fileManager.Open(pth)
	if err != nil {
		l.logger.Warnf("Failed to open error log (%s): %s", pth, err)
		return NotFoundPlaceholder
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.logger.Warnf("Failed to close error log: %s", err)
		}
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		l.logger.Warnf("Failed to read error log (%s): %s", pth, err)
		return NotFoundPlaceholder
	}

	return CleanCellText(string(content))
}

// CleanCellText replaces characters that are illegal in spreadsheet cells,
// control characters below the space character except tab, newline and
// carriage return, with a plain space.
func CleanCellText(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= ' ' || r == '\t' || r == '\n' || r == '\r' {
			return r
		}
		return ' '
	}, s)
}
