package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adforge/adforge-cli/pkg/wizard"
)

func (m *WizardModel) updateSourceStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.sourceCursor > 0 {
			m.sourceCursor--
		}
	case "down", "j":
		if m.sourceCursor < len(m.sources)-1 {
			m.sourceCursor++
		}
	case "enter", " ":
		if m.sourceCursor < len(m.sources) {
			src := m.sources[m.sourceCursor]
			if src.ID != m.state.DataSourceID {
				m.dispatch(wizard.SelectDataSource{ID: src.ID, Name: src.Name})
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, fetchSnapshot(m.client, src.ID))
			}
		}
	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, fetchDataSources(m.client))
	case "n":
		return m, m.goToNext()
	case "q":
		m.writer.Flush()
		return m, tea.Quit
	}
	return m, nil
}

func (m *WizardModel) viewSourceStep() string {
	var b lipglossBuilder

	b.line(HeaderStyle.Render(" Select a data source"))
	b.blank()

	if m.loading {
		b.line("  " + m.spinner.View() + " Loading...")
		return b.String()
	}

	if len(m.sources) == 0 {
		b.line(DimStyle.Render("  No data sources connected. Press r to refresh."))
		return b.String() + m.helpLine("r refresh", "ctrl+c quit")
	}

	for i, src := range m.sources {
		marker := "  "
		if src.ID == m.state.DataSourceID {
			marker = "✓ "
		}
		text := fmt.Sprintf(" %s%s (%s, %d rows)", marker, src.Name, src.Kind, src.RowCount)
		if i == m.sourceCursor {
			b.line(SelectedStyle.Render("▸" + text))
		} else {
			b.line(" " + NormalStyle.Render(text))
		}
	}

	if m.state.DataSourceID != "" {
		b.blank()
		b.line(DimStyle.Render(fmt.Sprintf("  %d columns, %d sample rows loaded",
			len(m.state.Columns), len(m.state.SampleRows))))
	}

	return b.String() + m.helpLine("↑/↓ move", "enter select", "n next", "r refresh", "ctrl+c quit")
}

// lipglossBuilder accumulates view lines; joined once at the end so the
// step views stay flat and readable.
type lipglossBuilder struct {
	lines []string
}

func (b *lipglossBuilder) line(s string)  { b.lines = append(b.lines, s) }
func (b *lipglossBuilder) blank()         { b.lines = append(b.lines, "") }
func (b *lipglossBuilder) String() string { return lipgloss.JoinVertical(lipgloss.Left, b.lines...) }
