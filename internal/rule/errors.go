package rule

import "errors"

var (
	// ErrInvalidColumnReference reports a column designation that is empty or
	// contains characters outside A-Z.
	ErrInvalidColumnReference = errors.New("invalid column reference")

	// ErrInvalidRuleConfiguration reports a rule missing a required field.
	// Detected at load time; the offending rule is skipped, the run continues.
	ErrInvalidRuleConfiguration = errors.New("invalid rule configuration")
)
