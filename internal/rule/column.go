package rule

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LetterToIndex converts a column letter designation ("A", "BK", "AAA") to its
// 1-based numeric index using spreadsheet column numbering. Input is
// case-insensitive. Returns ErrInvalidColumnReference for an empty string or
// any character outside A-Z.
func LetterToIndex(letters string) (int, error) {
	idx, err := excelize.ColumnNameToNumber(letters)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColumnReference, letters)
	}
	return idx, nil
}

// IndexToLetter converts a 1-based column index back to its letter
// designation. Inverse of LetterToIndex for all valid inputs.
func IndexToLetter(index int) (string, error) {
	name, err := excelize.ColumnNumberToName(index)
	if err != nil {
		return "", fmt.Errorf("%w: index %d", ErrInvalidColumnReference, index)
	}
	return name, nil
}
