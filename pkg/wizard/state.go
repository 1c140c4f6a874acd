// Package wizard holds the session state of the campaign wizard, the pure
// reducer that advances it, and the per-step validation that gates
// navigation.
package wizard

import (
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/rules"
)

// Step identifies one wizard screen.
type Step string

const (
	StepDataSource Step = "data-source"
	StepCampaign   Step = "campaign-config"
	StepHierarchy  Step = "hierarchy"
	StepRules      Step = "rules"
	StepPlatform   Step = "platform"
	StepReview     Step = "review"
)

// StepOrder is the forward navigation sequence.
var StepOrder = []Step{
	StepDataSource,
	StepCampaign,
	StepHierarchy,
	StepRules,
	StepPlatform,
	StepReview,
}

// State is the whole wizard session. It is only ever replaced as a value
// through Reduce, never mutated field by field, so persistence and preview
// always observe a consistent snapshot.
type State struct {
	Step           Step                        `yaml:"step"`
	DataSourceID   string                      `yaml:"data_source_id"`
	DataSourceName string                      `yaml:"data_source_name,omitempty"`
	Columns        []models.Column             `yaml:"columns,omitempty"`
	SampleRows     []models.DataRow            `yaml:"sample_rows,omitempty"`
	Campaign       models.CampaignConfig       `yaml:"campaign"`
	Hierarchy      models.HierarchyConfig      `yaml:"hierarchy"`
	AvailableRules []rules.Rule                `yaml:"available_rules,omitempty"`
	SelectedRules  []string                    `yaml:"selected_rules,omitempty"`
	Platforms      []models.Platform           `yaml:"platforms,omitempty"`
	Budgets        map[models.Platform]float64 `yaml:"budgets,omitempty"`
	Result         *models.GenerationResult    `yaml:"result,omitempty"`
}

// NewState returns the initial wizard state: first step, minimal valid
// hierarchy.
func NewState() State {
	return State{
		Step:      StepDataSource,
		Hierarchy: models.NewHierarchyConfig(),
		Budgets:   make(map[models.Platform]float64),
	}
}

// NextStep returns the step after s, or s itself when already at the end.
func NextStep(s Step) Step {
	for i, step := range StepOrder {
		if step == s && i+1 < len(StepOrder) {
			return StepOrder[i+1]
		}
	}
	return s
}

// PrevStep returns the step before s, or s itself when already at the start.
func PrevStep(s Step) Step {
	for i, step := range StepOrder {
		if step == s && i > 0 {
			return StepOrder[i-1]
		}
	}
	return s
}

// PlatformSelected reports whether p is among the selected platforms.
func (s State) PlatformSelected(p models.Platform) bool {
	for _, sel := range s.Platforms {
		if sel == p {
			return true
		}
	}
	return false
}

// RuleSelected reports whether the rule id is selected.
func (s State) RuleSelected(id string) bool {
	for _, sel := range s.SelectedRules {
		if sel == id {
			return true
		}
	}
	return false
}

// FilteredRows applies the selected rules to the sample rows.
func (s State) FilteredRows() (kept []models.DataRow, excluded int) {
	return rules.Apply(rules.Select(s.AvailableRules, s.SelectedRules), s.SampleRows)
}

// clone deep-copies the state so reducers can build a replacement value
// without touching the input.
func (s State) clone() State {
	out := s
	out.Columns = append([]models.Column(nil), s.Columns...)
	out.SampleRows = append([]models.DataRow(nil), s.SampleRows...)
	out.Hierarchy = s.Hierarchy.Clone()
	out.AvailableRules = append([]rules.Rule(nil), s.AvailableRules...)
	out.SelectedRules = append([]string(nil), s.SelectedRules...)
	out.Platforms = append([]models.Platform(nil), s.Platforms...)
	out.Budgets = make(map[models.Platform]float64, len(s.Budgets))
	for k, v := range s.Budgets {
		out.Budgets[k] = v
	}
	return out
}
