package exporter

import (
	"fmt"
	"time"

	"cellgrep/internal/config"
	"cellgrep/internal/model"

	"github.com/xuri/excelize/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// ExcelExporter writes the run report workbook: an Overview sheet with run
// totals and a Matches sheet with one row per match record. Failures get
// their own sheet only when the run produced any.
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(summary *model.Summary, cfg *config.Config) error {
	outputFile := cfg.GetReportPath()
	f := excelize.NewFile()
	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, summary); err != nil {
		return err
	}

	if err := e.writeMatches(f, styler, summary); err != nil {
		return err
	}

	if len(summary.Failures) > 0 {
		if err := e.writeFailures(f, styler, summary); err != nil {
			return err
		}
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	if err := f.SaveAs(outputFile); err != nil {
		return err
	}

	return nil
}

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, summary *model.Summary) error {
	sheet := "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	e.writeRow(f, sheet, 1, []string{"Metric", "Value"}, s.HeaderStyle)

	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Folder", summary.FolderPath},
		{"Files Found", summary.FilesFound},
		{"Files Processed", summary.FilesProcessed},
		{"Files Failed", summary.FilesFailed},
		{"Sheets Scanned", summary.SheetsScanned},
		{"Active Rules", summary.ActiveRules},
		{"Total Matches", summary.TotalMatches()},
		{"Errors", len(summary.Failures)},
		{"Duration", summary.Duration().Round(time.Millisecond).String()},
	}

	row := 2
	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 50)

	return nil
}

func (e *ExcelExporter) writeMatches(f *excelize.File, s *Styler, summary *model.Summary) error {
	sheet := "Matches"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Timestamp", "Rule", "File", "Sheet", "Value 1", "Value 2"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	for i, m := range summary.Matches {
		row := i + 2
		values := []string{
			m.Timestamp.Format(timestampLayout),
			m.RuleName,
			m.FileName,
			m.SheetName,
			m.Value1,
			m.Value2,
		}
		e.writeRow(f, sheet, row, values, s.MatchStyle)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "D", 25)
	f.SetColWidth(sheet, "E", "F", 30)

	return nil
}

func (e *ExcelExporter) writeFailures(f *excelize.File, s *Styler, summary *model.Summary) error {
	sheet := "Errors"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	e.writeRow(f, sheet, 1, []string{"Timestamp", "Message"}, s.HeaderStyle)

	for i, rec := range summary.Failures {
		row := i + 2
		e.writeRow(f, sheet, row, []string{rec.Timestamp.Format(timestampLayout), rec.Message}, s.FailureStyle)
	}

	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 80)

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
