package model

import "time"

// Summary is the explicit run accumulator. The driver builds exactly one per
// run and hands it back to the caller; nothing else holds run-wide state.
type Summary struct {
	FolderPath     string
	FilesFound     int
	FilesProcessed int
	FilesFailed    int
	SheetsScanned  int
	ActiveRules    int

	Matches  []MatchRecord
	Failures []ErrorRecord

	Started  time.Time
	Finished time.Time
}

// NewSummary creates an empty summary stamped with the start time
func NewSummary() *Summary {
	return &Summary{Started: time.Now()}
}

// AddMatch appends a match record
func (s *Summary) AddMatch(m MatchRecord) {
	s.Matches = append(s.Matches, m)
}

// AddFailure appends an error record
func (s *Summary) AddFailure(e ErrorRecord) {
	s.Failures = append(s.Failures, e)
}

// TotalMatches returns the number of match records accumulated so far
func (s *Summary) TotalMatches() int {
	return len(s.Matches)
}

// Duration returns the wall time of the run (zero until Finished is set)
func (s *Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
