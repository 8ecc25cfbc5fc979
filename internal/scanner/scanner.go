// Package scanner evaluates column-pair rule groups against workbook sheets.
// It only ever reads cells; source workbooks are never written.
package scanner

import (
	"fmt"
	"time"

	"cellgrep/internal/model"
	"cellgrep/internal/rule"

	"github.com/xuri/excelize/v2"
)

// Scan reads the group's search and check columns for rows 1..maxRows and
// evaluates every rule in the group against each row. Cells past the sheet's
// data region read as empty, so short sheets cost nothing extra. Both cell
// values are normalized (trim + case fold) for comparison; a match requires
// exact equality of both pairs. A cell whose normalized text is empty never
// matches. A single row may match multiple rules independently, yielding one
// MatchRecord per (row, rule) hit.
func Scan(f *excelize.File, fileName string, group *rule.ColumnPairGroup, maxRows int) ([]model.MatchRecord, error) {
	sheet := group.SheetName

	var matches []model.MatchRecord
	for row := 1; row <= maxRows; row++ {
		searchText, err := cellText(f, sheet, group.SearchIndex, row)
		if err != nil {
			return matches, err
		}
		checkText, err := cellText(f, sheet, group.CheckIndex, row)
		if err != nil {
			return matches, err
		}

		normSearch := rule.Normalize(searchText)
		normCheck := rule.Normalize(checkText)

		// Absent values never match and never raise an error
		if normSearch == "" || normCheck == "" {
			continue
		}

		for _, r := range group.Rules {
			if normSearch == r.NormSearchValue && normCheck == r.NormCheckValue {
				matches = append(matches, model.MatchRecord{
					Timestamp: time.Now(),
					RuleName:  r.Name,
					FileName:  fileName,
					SheetName: sheet,
					Value1:    searchText,
					Value2:    checkText,
				})
			}
		}
	}

	return matches, nil
}

func cellText(f *excelize.File, sheet string, col, row int) (string, error) {
	addr, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", fmt.Errorf("cell address (%d,%d): %w", col, row, err)
	}
	value, err := f.GetCellValue(sheet, addr)
	if err != nil {
		return "", fmt.Errorf("read %s!%s: %w", sheet, addr, err)
	}
	return value, nil
}
