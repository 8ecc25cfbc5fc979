// Package journal owns the two append-only run logs: one line per match in
// the results log, one line per failure in the error log. These are run
// artifacts, separate from the application log in internal/logger.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cellgrep/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

// Journal writes match and error records to a pair of timestamp-named files.
type Journal struct {
	resultsPath string
	errorsPath  string
	results     *os.File
	errors      *os.File
}

// Open creates the journal files in dir, stamping both names with the current
// time so consecutive runs never overwrite each other.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	stamp := time.Now().Format("20060102_150405")
	j := &Journal{
		resultsPath: filepath.Join(dir, fmt.Sprintf("search_results_%s.txt", stamp)),
		errorsPath:  filepath.Join(dir, fmt.Sprintf("search_errors_%s.txt", stamp)),
	}

	var err error
	if j.results, err = openAppend(j.resultsPath); err != nil {
		return nil, err
	}
	if j.errors, err = openAppend(j.errorsPath); err != nil {
		j.results.Close()
		return nil, err
	}

	return j, nil
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file %s: %w", path, err)
	}
	return f, nil
}

// RecordMatch appends one result line for a match record.
func (j *Journal) RecordMatch(m model.MatchRecord) error {
	line := fmt.Sprintf("%s - [%s] Match - File: %s, Sheet: %s, Value 1: %s, Value 2: %s\n",
		m.Timestamp.Format(timestampLayout), m.RuleName, m.FileName, m.SheetName, m.Value1, m.Value2)
	_, err := j.results.WriteString(line)
	return err
}

// RecordError appends one line for a failure record.
func (j *Journal) RecordError(e model.ErrorRecord) error {
	line := fmt.Sprintf("%s - %s\n", e.Timestamp.Format(timestampLayout), e.Message)
	_, err := j.errors.WriteString(line)
	return err
}

// ResultsPath returns the path of the results log.
func (j *Journal) ResultsPath() string {
	return j.resultsPath
}

// ErrorsPath returns the path of the error log.
func (j *Journal) ErrorsPath() string {
	return j.errorsPath
}

// Close flushes and closes both journal files.
func (j *Journal) Close() error {
	var firstErr error
	if err := j.results.Close(); err != nil {
		firstErr = err
	}
	if err := j.errors.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
