// Package driver walks a folder of workbooks and runs every applicable
// column-pair group against every sheet, isolating per-file failures so one
// broken workbook never aborts the batch.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cellgrep/internal/logger"
	"cellgrep/internal/model"
	"cellgrep/internal/rule"
	"cellgrep/internal/scanner"

	"github.com/xuri/excelize/v2"
)

// tempFilePrefix marks lock files left behind by an open spreadsheet application
const tempFilePrefix = "~$"

// supportedExtensions are the workbook formats excelize can open
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Recorder persists match and error records the moment they are produced.
// *journal.Journal satisfies it; tests substitute an in-memory recorder.
type Recorder interface {
	RecordMatch(model.MatchRecord) error
	RecordError(model.ErrorRecord) error
}

// Driver runs the batch over one folder of workbooks.
type Driver struct {
	grouping *rule.Grouping
	recorder Recorder
	maxRows  int

	// OnFile, when set, is called before each workbook is processed.
	// The CLI hooks the progress bar here.
	OnFile func(index, total int, name string)
}

// New creates a batch driver over the grouped rules.
func New(grouping *rule.Grouping, recorder Recorder, maxRows int) *Driver {
	return &Driver{
		grouping: grouping,
		recorder: recorder,
		maxRows:  maxRows,
	}
}

// Run processes every supported workbook in folder, strictly sequentially,
// and returns the accumulated summary. The returned error is non-nil only
// when the folder itself cannot be enumerated; per-file and per-sheet
// failures are recorded and the batch continues.
func (d *Driver) Run(folder string) (*model.Summary, error) {
	files, err := ListWorkbooks(folder)
	if err != nil {
		return nil, err
	}

	summary := model.NewSummary()
	summary.FolderPath = folder
	summary.FilesFound = len(files)
	summary.ActiveRules = d.grouping.ActiveRules()

	for i, path := range files {
		name := filepath.Base(path)
		if d.OnFile != nil {
			d.OnFile(i, len(files), name)
		}
		d.processFile(path, summary)
	}

	summary.Finished = time.Now()
	return summary, nil
}

// ListWorkbooks enumerates the supported workbook files in folder, skipping
// spreadsheet lock files. Results are in directory order.
func ListWorkbooks(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, tempFilePrefix) {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		files = append(files, filepath.Join(folder, name))
	}

	return files, nil
}

// processFile opens one workbook read-only, scans its sheets, and guarantees
// the handle is released on every exit path.
func (d *Driver) processFile(path string, summary *model.Summary) {
	name := filepath.Base(path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		summary.FilesFailed++
		d.fail(summary, fmt.Sprintf("failed to open %s: %v", name, err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			// Close failures are recorded but never fatal to the batch
			d.fail(summary, fmt.Sprintf("failed to close %s: %v", name, err))
		}
	}()

	for _, sheet := range f.GetSheetList() {
		groups := d.grouping.ForSheet(sheet)
		if len(groups) == 0 {
			logger.Debug("Skipping sheet %s in %s (no rules)", sheet, name)
			continue
		}

		summary.SheetsScanned++
		for _, group := range groups {
			matches, err := scanner.Scan(f, name, group, d.maxRows)
			for _, m := range matches {
				summary.AddMatch(m)
				if rerr := d.recorder.RecordMatch(m); rerr != nil {
					logger.Warn("Failed to journal match in %s: %v", name, rerr)
				}
			}
			if err != nil {
				d.fail(summary, fmt.Sprintf("failed to scan %s in %s: %v", sheet, name, err))
			}
		}
	}

	summary.FilesProcessed++
}

// fail records a failure in the summary and the error journal.
func (d *Driver) fail(summary *model.Summary, message string) {
	logger.LogScanError(message)

	rec := model.ErrorRecord{Timestamp: time.Now(), Message: message}
	summary.AddFailure(rec)
	if err := d.recorder.RecordError(rec); err != nil {
		logger.Warn("Failed to journal error: %v", err)
	}
}
