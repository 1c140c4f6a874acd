package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/wizard"
)

// campaignStepState holds the inputs of the campaign step. The name field
// is a pattern editor with variable tokens; the objective is plain text.
type campaignStepState struct {
	name      *VariableInput
	objective textinput.Model
	focusIdx  int // 0 = name, 1 = objective
}

func newCampaignStepState(m *WizardModel) *campaignStepState {
	name := NewVariableInput()
	name.Placeholder = "{brand_name} - {region} Campaign"
	name.Focus()

	obj := textinput.New()
	obj.Placeholder = "e.g. conversions, traffic, awareness"
	obj.CharLimit = 128
	obj.Prompt = ""

	return &campaignStepState{name: name, objective: obj}
}

// enter re-seeds the inputs from the wizard state when the step opens.
func (c *campaignStepState) enter(s wizard.State) {
	c.name.SetValue(s.Campaign.NamePattern)
	c.objective.SetValue(s.Campaign.Objective)
	c.setFocus(0)
}

func (c *campaignStepState) setFocus(idx int) {
	c.focusIdx = idx
	if idx == 0 {
		c.name.Focus()
		c.objective.Blur()
	} else {
		c.name.Blur()
		c.objective.Focus()
	}
}

func (m *WizardModel) updateCampaignStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.campaign

	// Step navigation only while no dropdown is open, so enter/esc keep
	// their autocomplete meaning mid-suggestion.
	if !c.name.Suggesting() {
		switch msg.Type {
		case tea.KeyTab:
			if c.focusIdx == 0 {
				c.setFocus(1)
			} else {
				c.setFocus(0)
			}
			return m, nil
		case tea.KeyEnter:
			return m, m.goToNext()
		case tea.KeyEsc:
			m.goToPrev()
			return m, nil
		}
	}

	if c.focusIdx == 0 {
		changed, handled, cmd := c.name.HandleKey(msg)
		if changed {
			m.dispatch(wizard.SetCampaignName{Pattern: c.name.Value()})
		}
		if handled {
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	c.objective, cmd = c.objective.Update(msg)
	if c.objective.Value() != m.state.Campaign.Objective {
		m.dispatch(wizard.SetCampaignObjective{Objective: c.objective.Value()})
	}
	return m, cmd
}

func (m *WizardModel) viewCampaignStep() string {
	c := m.campaign
	var b lipglossBuilder

	b.line(HeaderStyle.Render(" Campaign settings"))
	b.blank()

	b.line("  Campaign name pattern " + DimStyle.Render("(type { for columns)"))
	b.line(framed(c.name.View(), c.focusIdx == 0, m.width-4))
	b.blank()
	b.line("  Objective " + DimStyle.Render("(optional)"))
	b.line(framed(c.objective.View(), c.focusIdx == 1, m.width-4))

	result := wizard.Validate(wizard.StepCampaign, m.state)
	b.blank()
	for _, e := range result.Errors {
		b.line(ErrorStyle.Render("  ✗ " + e))
	}
	for _, w := range result.Warnings {
		b.line(WarningStyle.Render("  ⚠ " + w))
	}

	return b.String() + m.helpLine("tab switch field", "enter next", "esc back", "ctrl+c quit")
}

// framed draws a bordered box around a field, highlighted when focused.
func framed(content string, focused bool, width int) string {
	style := InactiveBorderStyle
	if focused {
		style = ActiveBorderStyle
	}
	if width > 10 {
		style = style.Width(width)
	}
	return "  " + style.Padding(0, 1).Render(content)
}
