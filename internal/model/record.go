package model

import "time"

// MatchRecord is one (row, rule) hit. Value1/Value2 hold the original cell
// text as read from the workbook, not the normalized form used for comparison.
type MatchRecord struct {
	Timestamp time.Time
	RuleName  string
	FileName  string
	SheetName string
	Value1    string
	Value2    string
}

// ErrorRecord is one non-fatal failure encountered during a run.
type ErrorRecord struct {
	Timestamp time.Time
	Message   string
}
