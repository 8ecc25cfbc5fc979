package rule

// ColumnPairGroup holds every enabled rule that reads the same two columns of
// the same sheet, so the column pair is read from the workbook exactly once
// regardless of how many rules share it. Each rule keeps its own search/check
// values for independent evaluation.
type ColumnPairGroup struct {
	SheetName    string
	SearchColumn string
	SearchIndex  int
	CheckColumn  string
	CheckIndex   int
	Rules        []Rule
}

// Grouping maps sheet names to their column-pair groups, preserving the order
// sheets first appear in the configuration.
type Grouping struct {
	sheets []string
	groups map[string][]*ColumnPairGroup
	total  int
}

// GroupBySheet partitions the enabled rules by (sheet, search column, check
// column). Disabled rules are excluded entirely: not grouped, not scanned.
// Rule order within each group follows configuration order.
func GroupBySheet(rules []Rule) *Grouping {
	g := &Grouping{groups: make(map[string][]*ColumnPairGroup)}

	for _, r := range rules {
		if !r.Enabled {
			continue
		}

		groups, seen := g.groups[r.SheetName]
		if !seen {
			g.sheets = append(g.sheets, r.SheetName)
		}

		var target *ColumnPairGroup
		for _, grp := range groups {
			if grp.SearchIndex == r.SearchIndex && grp.CheckIndex == r.CheckIndex {
				target = grp
				break
			}
		}
		if target == nil {
			target = &ColumnPairGroup{
				SheetName:    r.SheetName,
				SearchColumn: r.SearchColumn,
				SearchIndex:  r.SearchIndex,
				CheckColumn:  r.CheckColumn,
				CheckIndex:   r.CheckIndex,
			}
			g.groups[r.SheetName] = append(groups, target)
		}

		target.Rules = append(target.Rules, r)
		g.total++
	}

	return g
}

// Sheets returns sheet names in first-appearance order.
func (g *Grouping) Sheets() []string {
	return g.sheets
}

// ForSheet returns the groups for a sheet, or nil if no enabled rule targets it.
func (g *Grouping) ForSheet(name string) []*ColumnPairGroup {
	return g.groups[name]
}

// ActiveRules returns the number of enabled rules across all groups.
func (g *Grouping) ActiveRules() int {
	return g.total
}
