package rule

import (
	"fmt"
)

// Spec is the loose, as-configured shape of a search rule. Optional fields
// (name, enabled) get defaults; required fields are validated by Parse.
type Spec struct {
	Name         string `mapstructure:"name"`
	SheetName    string `mapstructure:"sheet_name"`
	SearchColumn string `mapstructure:"search_column"`
	SearchValue  string `mapstructure:"search_value"`
	CheckColumn  string `mapstructure:"check_column"`
	CheckValue   string `mapstructure:"check_value"`
	Enabled      *bool  `mapstructure:"enabled"`
}

// Rule is the validated, immutable form of a search rule. Column letters are
// kept for logging; the resolved 1-based indices drive the actual cell reads.
type Rule struct {
	Name         string
	SheetName    string
	SearchColumn string
	SearchIndex  int
	SearchValue  string
	CheckColumn  string
	CheckIndex   int
	CheckValue   string
	Enabled      bool

	// Comparison forms, computed once at load time
	NormSearchValue string
	NormCheckValue  string
}

// Parse validates the configured specs into strict Rules, applying defaults:
// a missing name becomes "Rule N" (1-based config position), a missing
// enabled flag defaults to true. A spec missing any required field yields an
// ErrInvalidRuleConfiguration in the returned error slice and is skipped;
// the remaining specs are still parsed (report-and-skip policy).
func Parse(specs []Spec) ([]Rule, []error) {
	var rules []Rule
	var errs []error

	for i, spec := range specs {
		name := spec.Name
		if name == "" {
			name = fmt.Sprintf("Rule %d", i+1)
		}

		r, err := parseOne(name, spec)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rules = append(rules, r)
	}

	return rules, errs
}

func parseOne(name string, spec Spec) (Rule, error) {
	required := []struct {
		field, value string
	}{
		{"sheet_name", spec.SheetName},
		{"search_column", spec.SearchColumn},
		{"search_value", spec.SearchValue},
		{"check_column", spec.CheckColumn},
		{"check_value", spec.CheckValue},
	}
	for _, req := range required {
		if req.value == "" {
			return Rule{}, fmt.Errorf("%w: %s is missing %s", ErrInvalidRuleConfiguration, name, req.field)
		}
	}

	searchIdx, err := LetterToIndex(spec.SearchColumn)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s search_column: %v", ErrInvalidRuleConfiguration, name, err)
	}
	checkIdx, err := LetterToIndex(spec.CheckColumn)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %s check_column: %v", ErrInvalidRuleConfiguration, name, err)
	}

	enabled := true
	if spec.Enabled != nil {
		enabled = *spec.Enabled
	}

	return Rule{
		Name:            name,
		SheetName:       spec.SheetName,
		SearchColumn:    spec.SearchColumn,
		SearchIndex:     searchIdx,
		SearchValue:     spec.SearchValue,
		CheckColumn:     spec.CheckColumn,
		CheckIndex:      checkIdx,
		CheckValue:      spec.CheckValue,
		Enabled:         enabled,
		NormSearchValue: Normalize(spec.SearchValue),
		NormCheckValue:  Normalize(spec.CheckValue),
	}, nil
}
