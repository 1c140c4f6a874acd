// Package rules evaluates data filtering rules over sample rows. A rule is
// a conjunction of column conditions plus an action; selected rules with an
// exclude action drop matching rows before the preview aggregation runs.
package rules

import (
	"strconv"
	"strings"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/pattern"
)

// Operator is one comparison a condition can apply.
type Operator string

const (
	OpEquals    Operator = "equals"
	OpNotEquals Operator = "not_equals"
	OpContains  Operator = "contains"
	OpGreater   Operator = "gt"
	OpLess      Operator = "lt"
	OpIsEmpty   Operator = "is_empty"
	OpNotEmpty  Operator = "not_empty"
)

// Action decides what happens to rows matching a rule.
type Action string

const (
	ActionExclude Action = "exclude"
	ActionInclude Action = "include"
)

// Condition compares one column against a value.
type Condition struct {
	Column   string   `json:"column" yaml:"column"`
	Operator Operator `json:"operator" yaml:"operator"`
	Value    string   `json:"value,omitempty" yaml:"value,omitempty"`
}

// Rule is a named filter: all conditions must hold for the rule to match.
type Rule struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Conditions []Condition `json:"conditions" yaml:"conditions"`
	Action     Action      `json:"action" yaml:"action"`
}

// Matches reports whether every condition of the rule holds for the row.
// A rule without conditions matches nothing.
func (r Rule) Matches(row models.DataRow) bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if !c.Matches(row) {
			return false
		}
	}
	return true
}

// Matches evaluates one condition against a row. Comparisons are string
// based except gt/lt, which compare numerically when both sides parse as
// numbers and fall back to lexicographic comparison otherwise.
func (c Condition) Matches(row models.DataRow) bool {
	raw, present := row[c.Column]
	val := pattern.Stringify(raw)

	switch c.Operator {
	case OpEquals:
		return present && val == c.Value
	case OpNotEquals:
		return !present || val != c.Value
	case OpContains:
		return present && strings.Contains(strings.ToLower(val), strings.ToLower(c.Value))
	case OpGreater:
		return present && compare(val, c.Value) > 0
	case OpLess:
		return present && compare(val, c.Value) < 0
	case OpIsEmpty:
		return !present || val == ""
	case OpNotEmpty:
		return present && val != ""
	default:
		return false
	}
}

func compare(a, b string) int {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// Apply filters rows through the given rules. Exclude rules drop matching
// rows; if any include rules exist, only rows matched by at least one of
// them survive. Returns the kept rows and how many were dropped.
func Apply(ruleSet []Rule, rows []models.DataRow) (kept []models.DataRow, excluded int) {
	var includes, excludes []Rule
	for _, r := range ruleSet {
		switch r.Action {
		case ActionInclude:
			includes = append(includes, r)
		case ActionExclude:
			excludes = append(excludes, r)
		}
	}

	kept = make([]models.DataRow, 0, len(rows))
rowLoop:
	for _, row := range rows {
		for _, r := range excludes {
			if r.Matches(row) {
				excluded++
				continue rowLoop
			}
		}
		if len(includes) > 0 {
			matched := false
			for _, r := range includes {
				if r.Matches(row) {
					matched = true
					break
				}
			}
			if !matched {
				excluded++
				continue
			}
		}
		kept = append(kept, row)
	}
	return kept, excluded
}

// Select returns the rules whose ids appear in selectedIDs, preserving the
// order of the rule list.
func Select(all []Rule, selectedIDs []string) []Rule {
	wanted := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		wanted[id] = true
	}
	var out []Rule
	for _, r := range all {
		if wanted[r.ID] {
			out = append(out, r)
		}
	}
	return out
}
