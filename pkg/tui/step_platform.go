package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/platforms"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

// platformStepState tracks the cursor over the fixed platform list and an
// optional budget editor for the highlighted platform.
type platformStepState struct {
	cursor  int
	editing bool
	budget  textinput.Model
}

func newPlatformStepState() *platformStepState {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "daily budget"
	ti.CharLimit = 12
	return &platformStepState{budget: ti}
}

func (m *WizardModel) updatePlatformStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.platform
	all := platforms.All()

	if p.editing {
		switch msg.String() {
		case "enter":
			if amount, err := strconv.ParseFloat(p.budget.Value(), 64); err == nil && amount >= 0 {
				m.dispatch(wizard.SetPlatformBudget{Platform: all[p.cursor], Amount: amount})
			}
			p.editing = false
			p.budget.Blur()
			return m, nil
		case "esc":
			p.editing = false
			p.budget.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		p.budget, cmd = p.budget.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(all)-1 {
			p.cursor++
		}
	case " ", "x":
		m.dispatch(wizard.TogglePlatform{Platform: all[p.cursor]})
	case "b":
		if m.state.PlatformSelected(all[p.cursor]) {
			p.editing = true
			p.budget.SetValue("")
			if amount, ok := m.state.Budgets[all[p.cursor]]; ok {
				p.budget.SetValue(strconv.FormatFloat(amount, 'f', -1, 64))
			}
			p.budget.Focus()
		}
	case "enter", "n":
		return m, m.goToNext()
	case "esc":
		m.goToPrev()
	}
	return m, nil
}

func (m *WizardModel) viewPlatformStep() string {
	p := m.platform
	var b lipglossBuilder

	b.line(HeaderStyle.Render(" Target platforms"))
	b.blank()

	for i, plat := range platforms.All() {
		check := "[ ]"
		if m.state.PlatformSelected(plat) {
			check = SuccessStyle.Render("[✓]")
		}

		budget := ""
		if amount, ok := m.state.Budgets[plat]; ok {
			budget = DimStyle.Render(fmt.Sprintf("  $%.2f/day", amount))
		}

		line := fmt.Sprintf(" %s %s%s", check, plat, budget)
		if i == p.cursor {
			if p.editing {
				line += "  budget: " + p.budget.View()
			}
			b.line(SelectedStyle.Render("▸" + line))
		} else {
			b.line(" " + line)
		}
	}

	// Character limits for the highlighted platform, so overruns are
	// visible before generation.
	if limits, ok := platforms.For(platforms.All()[p.cursor]); ok {
		b.blank()
		b.line(DimStyle.Render(fmt.Sprintf(
			"  limits: campaign %d · ad group %d · headline %d · description %d",
			limits.CampaignName, limits.AdGroupName, limits.Headline, limits.Description)))
	}

	result := wizard.Validate(wizard.StepPlatform, m.state)
	for _, e := range result.Errors {
		b.line(ErrorStyle.Render("  ✗ " + e))
	}

	return b.String() + m.helpLine("↑/↓ move", "space toggle", "b budget", "enter next", "esc back")
}
