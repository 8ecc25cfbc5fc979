package word

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cellgrep/internal/config"
	"cellgrep/internal/model"
)

func TestWordExportFillsTemplate(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cellgrep-word-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	cfg := &config.Config{Output: config.OutputConfig{Dir: tmpDir, ReportName: "report"}}

	summary := model.NewSummary()
	summary.FolderPath = "/data/books"
	summary.FilesProcessed = 2
	summary.Finished = time.Now()
	summary.AddMatch(model.MatchRecord{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		RuleName:  "Rule 1", FileName: "stock.xlsx", SheetName: "S1",
		Value1: "NXT0015", Value2: "Active",
	})

	if err := NewWordExporter().Export(summary, cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	outPath := filepath.Join(tmpDir, "report.docx")
	content := readDocumentXML(t, outPath)

	for _, want := range []string{"Rule 1", "stock.xlsx", "NXT0015", "/data/books"} {
		if !strings.Contains(content, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
	if strings.Contains(content, "{{") {
		t.Error("document.xml still contains unreplaced placeholders")
	}
}

// readDocumentXML pulls word/document.xml out of the generated archive
func readDocumentXML(t *testing.T, path string) string {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open %s as zip: %v", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open document.xml: %v", err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("Failed to read document.xml: %v", err)
		}
		return string(data)
	}

	t.Fatal("word/document.xml not found in output archive")
	return ""
}
