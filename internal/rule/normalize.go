package rule

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize prepares a cell or rule value for comparison: leading/trailing
// whitespace is stripped and the remainder is Unicode case-folded. The
// original value is what gets logged; the normalized form is comparison-only.
func Normalize(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}
