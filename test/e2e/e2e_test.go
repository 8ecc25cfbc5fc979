package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cellgrep/internal/config"
	"cellgrep/internal/driver"
	"cellgrep/internal/exporter"
	"cellgrep/internal/journal"
	"cellgrep/internal/rule"

	"github.com/xuri/excelize/v2"
)

func TestEndToEndFlow(t *testing.T) {
	// Setup folders
	bookDir := t.TempDir()
	outputDir := t.TempDir()

	// Build a workbook with two rule-relevant sheets and one irrelevant one
	f := excelize.NewFile()
	for sheet, cells := range map[string]map[string]string{
		"Inventory": {
			"A2": "nxt0015 ", "B2": " active",
			"A3": "NXT0015", "B3": "retired",
			"A9": "NXT0020", "B9": "Active",
		},
		"Ignored": {"A1": "NXT0015", "B1": "Active"},
	} {
		if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}
		for addr, val := range cells {
			f.SetCellValue(sheet, addr, val)
		}
	}
	if err := f.SaveAs(filepath.Join(bookDir, "inventory.xlsx")); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
	f.Close()

	// A file excelize cannot open, plus files the driver must skip
	os.WriteFile(filepath.Join(bookDir, "zz_broken.xlsx"), []byte("garbage"), 0644)
	os.WriteFile(filepath.Join(bookDir, "~$inventory.xlsx"), []byte("lock"), 0644)

	// 1. Configure
	cfg := &config.Config{
		MaxRowsToProcess: 100,
		Output:           config.OutputConfig{Dir: outputDir, ReportName: "e2e_report"},
		SearchRules: []rule.Spec{
			{SheetName: "Inventory", SearchColumn: "A", SearchValue: "NXT0015", CheckColumn: "B", CheckValue: "Active"},
			{SheetName: "Inventory", SearchColumn: "A", SearchValue: "NXT0020", CheckColumn: "B", CheckValue: "Active"},
			{SheetName: "Inventory", SearchColumn: "Z"}, // invalid, skipped
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	// 2. Parse and group rules
	rules, ruleErrs := rule.Parse(cfg.SearchRules)
	if len(ruleErrs) != 1 {
		t.Fatalf("expected 1 invalid rule, got %d", len(ruleErrs))
	}
	grouping := rule.GroupBySheet(rules)
	if grouping.ActiveRules() != 2 {
		t.Fatalf("ActiveRules = %d, expected 2", grouping.ActiveRules())
	}

	// 3. Run the batch
	jrnl, err := journal.Open(outputDir)
	if err != nil {
		t.Fatalf("journal.Open failed: %v", err)
	}

	summary, err := driver.New(grouping, jrnl, cfg.MaxRowsToProcess).Run(bookDir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := jrnl.Close(); err != nil {
		t.Fatalf("journal Close failed: %v", err)
	}

	// Lock file skipped, broken file failed, good file processed
	if summary.FilesFound != 2 {
		t.Errorf("FilesFound = %d, expected 2", summary.FilesFound)
	}
	if summary.FilesProcessed != 1 || summary.FilesFailed != 1 {
		t.Errorf("processed/failed = %d/%d, expected 1/1", summary.FilesProcessed, summary.FilesFailed)
	}
	// Row 2 matches Rule 1, row 9 matches Rule 2; row 3 fails the check column
	if summary.TotalMatches() != 2 {
		t.Fatalf("TotalMatches = %d, expected 2", summary.TotalMatches())
	}
	if summary.SheetsScanned != 1 {
		t.Errorf("SheetsScanned = %d, expected only the Inventory sheet", summary.SheetsScanned)
	}

	// 4. Verify journals
	results, err := os.ReadFile(jrnl.ResultsPath())
	if err != nil {
		t.Fatalf("read results journal: %v", err)
	}
	resultsStr := string(results)
	if strings.Count(resultsStr, "Match - File: inventory.xlsx") != 2 {
		t.Errorf("results journal content unexpected:\n%s", resultsStr)
	}
	if !strings.Contains(resultsStr, "Value 1: nxt0015 , Value 2:  active") {
		t.Errorf("results journal missing original cell text:\n%s", resultsStr)
	}

	errorsLog, _ := os.ReadFile(jrnl.ErrorsPath())
	if !strings.Contains(string(errorsLog), "zz_broken.xlsx") {
		t.Errorf("error journal missing open failure:\n%s", errorsLog)
	}

	// 5. Export and verify the Excel report
	for _, exp := range exporter.GetExporters([]string{"excel", "word"}) {
		if err := exp.Export(summary, cfg); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
	}

	report, err := excelize.OpenFile(cfg.GetReportPath())
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer report.Close()

	rows, err := report.GetRows("Matches")
	if err != nil {
		t.Fatalf("GetRows(Matches) failed: %v", err)
	}
	if len(rows) != 3 { // header + 2 matches
		t.Errorf("Matches sheet has %d rows, expected 3", len(rows))
	}

	if _, err := os.Stat(filepath.Join(outputDir, "e2e_report.docx")); err != nil {
		t.Errorf("Word report missing: %v", err)
	}
}
