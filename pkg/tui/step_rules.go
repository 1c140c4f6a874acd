package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/rules"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

type rulesStepState struct {
	cursor int
}

func newRulesStepState() *rulesStepState {
	return &rulesStepState{}
}

func (m *WizardModel) updateRulesStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.rulesStep
	switch msg.String() {
	case "up", "k":
		if r.cursor > 0 {
			r.cursor--
		}
	case "down", "j":
		if r.cursor < len(m.state.AvailableRules)-1 {
			r.cursor++
		}
	case " ", "x":
		if r.cursor < len(m.state.AvailableRules) {
			m.dispatch(wizard.ToggleRule{RuleID: m.state.AvailableRules[r.cursor].ID})
		}
	case "enter", "n":
		return m, m.goToNext()
	case "esc":
		m.goToPrev()
	}
	return m, nil
}

func (m *WizardModel) viewRulesStep() string {
	var b lipglossBuilder

	b.line(HeaderStyle.Render(" Exclusion and inclusion rules"))
	b.blank()

	if len(m.state.AvailableRules) == 0 {
		b.line(DimStyle.Render("  No rules defined for this workspace."))
		return b.String() + m.helpLine("enter next", "esc back")
	}

	for i, rule := range m.state.AvailableRules {
		check := "[ ]"
		if m.state.RuleSelected(rule.ID) {
			check = SuccessStyle.Render("[✓]")
		}
		line := fmt.Sprintf(" %s %s %s", check, rule.Name,
			DimStyle.Render(describeRule(rule)))
		if i == m.rulesStep.cursor {
			b.line(SelectedStyle.Render("▸" + line))
		} else {
			b.line(" " + line)
		}
	}

	kept, excluded := m.state.FilteredRows()
	b.blank()
	b.line(DimStyle.Render(fmt.Sprintf("  %d of %d sample rows pass the selected rules",
		len(kept), len(kept)+excluded)))

	return b.String() + m.helpLine("↑/↓ move", "space toggle", "enter next", "esc back")
}

// describeRule summarizes a rule's conditions in one line.
func describeRule(r rules.Rule) string {
	var parts []string
	for _, c := range r.Conditions {
		parts = append(parts, fmt.Sprintf("%s %s %v", c.Column, c.Operator, c.Value))
	}
	return fmt.Sprintf("(%s: %s)", r.Action, strings.Join(parts, " and "))
}
