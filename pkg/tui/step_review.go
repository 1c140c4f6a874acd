package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/adforge/adforge-cli/pkg/api"
)

type reviewStepState struct {
	submitted bool
}

func newReviewStepState() *reviewStepState {
	return &reviewStepState{}
}

func (r *reviewStepState) enter() {
	r.submitted = false
}

func (m *WizardModel) updateReviewStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "g", "enter":
		if m.loading {
			return m, nil
		}
		m.lastErr = ""
		m.loading = true
		m.review.submitted = true
		req := api.GenerationRequest{
			DataSourceID: m.state.DataSourceID,
			Campaign:     m.state.Campaign,
			Hierarchy:    m.state.Hierarchy,
			Platforms:    m.state.Platforms,
			Budgets:      m.state.Budgets,
			RuleIDs:      m.state.SelectedRules,
		}
		return m, tea.Batch(m.spinner.Tick, submitGeneration(m.client, req))
	case "c":
		data, err := yaml.Marshal(m.state)
		if err != nil {
			m.lastErr = err.Error()
			return m, nil
		}
		if err := clipboard.WriteAll(string(data)); err != nil {
			m.lastErr = "clipboard unavailable: " + err.Error()
			return m, nil
		}
		return m, func() tea.Msg { return statusMsg("Setup copied to clipboard") }
	case "esc":
		m.goToPrev()
	case "q":
		m.writer.Flush()
		return m, tea.Quit
	}
	return m, nil
}

func (m *WizardModel) viewReviewStep() string {
	var b lipglossBuilder
	s := m.state

	b.line(HeaderStyle.Render(" Review and generate"))
	b.blank()

	b.line(fmt.Sprintf("  Data source   %s", s.DataSourceName))
	b.line(fmt.Sprintf("  Campaign name %s", VariableStyle.Render(s.Campaign.NamePattern)))
	if s.Campaign.Objective != "" {
		b.line(fmt.Sprintf("  Objective     %s", s.Campaign.Objective))
	}

	var names []string
	for _, p := range s.Platforms {
		names = append(names, string(p))
	}
	b.line(fmt.Sprintf("  Platforms     %s", strings.Join(names, ", ")))
	b.line(fmt.Sprintf("  Rules         %d selected", len(s.SelectedRules)))

	rows, excluded := s.FilteredRows()
	b.blank()
	b.line(DimStyle.Render(fmt.Sprintf("  %d sample rows in, %d excluded", len(rows), excluded)))
	b.blank()
	b.line(RenderPreview(s, m.width-6))

	if m.loading {
		b.blank()
		b.line("  " + m.spinner.View() + " Generating campaigns...")
	}

	if res := s.Result; res != nil {
		b.blank()
		b.line(SuccessStyle.Render(fmt.Sprintf("  ✓ Created %d campaigns, %d ad groups, %d ads (%d rows processed, %d excluded)",
			res.Stats.CampaignCount, res.Stats.AdGroupCount, res.Stats.AdCount,
			res.Stats.RowsProcessed, res.Stats.RowsExcluded)))
		for _, c := range res.Campaigns {
			b.line(fmt.Sprintf("    %s %s %s", c.Name,
				DimStyle.Render(string(c.Platform)),
				DimStyle.Render(fmt.Sprintf("(%d groups, %d ads)", c.AdGroups, c.Ads))))
		}
		for _, w := range res.Warnings {
			b.line(WarningStyle.Render("  ⚠ " + w))
		}
	}

	return b.String() + m.helpLine("g generate", "c copy setup", "esc back", "q quit")
}
