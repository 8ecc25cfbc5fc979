package journal

import (
	"os"
	"strings"
	"testing"
	"time"

	"cellgrep/internal/model"
)

func TestJournalMatchLineFormat(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cellgrep-journal-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	j, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	err = j.RecordMatch(model.MatchRecord{
		Timestamp: ts,
		RuleName:  "Rule 1",
		FileName:  "stock.xlsx",
		SheetName: "S1",
		Value1:    "x ",
		Value2:    " Y",
	})
	if err != nil {
		t.Fatalf("RecordMatch failed: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	content, err := os.ReadFile(j.ResultsPath())
	if err != nil {
		t.Fatalf("Failed to read results log: %v", err)
	}

	expected := "2026-03-14 09:26:53 - [Rule 1] Match - File: stock.xlsx, Sheet: S1, Value 1: x , Value 2:  Y\n"
	if string(content) != expected {
		t.Errorf("results line = %q, expected %q", string(content), expected)
	}
}

func TestJournalErrorLineFormat(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cellgrep-journal-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	j, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer j.Close()

	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	if err := j.RecordError(model.ErrorRecord{Timestamp: ts, Message: "failed to open broken.xlsx: zip: not a valid zip file"}); err != nil {
		t.Fatalf("RecordError failed: %v", err)
	}
	j.Close()

	content, _ := os.ReadFile(j.ErrorsPath())
	expected := "2026-03-14 09:30:00 - failed to open broken.xlsx: zip: not a valid zip file\n"
	if string(content) != expected {
		t.Errorf("error line = %q, expected %q", string(content), expected)
	}
}

func TestJournalAppendsAcrossRecords(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "cellgrep-journal-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	j, err := Open(tmpDir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := j.RecordMatch(model.MatchRecord{Timestamp: time.Now(), RuleName: "Rule 1"}); err != nil {
			t.Fatalf("RecordMatch failed: %v", err)
		}
	}
	j.Close()

	content, _ := os.ReadFile(j.ResultsPath())
	lines := strings.Count(string(content), "\n")
	if lines != 3 {
		t.Errorf("expected 3 lines in results log, got %d", lines)
	}

	// Error log exists even when empty
	if _, err := os.Stat(j.ErrorsPath()); err != nil {
		t.Errorf("error log missing: %v", err)
	}
}
