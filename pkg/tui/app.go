// Package tui implements the interactive campaign wizard: one bubbletea
// model whose screens follow the wizard steps, with per-step update and
// view logic split across files.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/adforge/adforge-cli/pkg/api"
	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/session"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

// WizardModel is the root bubbletea model. All wizard state lives in the
// embedded wizard.State and changes only through dispatch.
type WizardModel struct {
	state  wizard.State
	client *api.Client
	writer *session.Writer
	store  *session.Store
	log    *logrus.Logger

	width  int
	height int

	loading   bool
	spinner   spinner.Model
	statusMsg string
	lastErr   string

	sources      []models.DataSource
	sourceCursor int

	campaign  *campaignStepState
	hierarchy *hierarchyStepState
	rulesStep *rulesStepState
	platform  *platformStepState
	review    *reviewStepState
}

// Options configures the wizard.
type Options struct {
	Client  *api.Client
	Store   *session.Store
	Log     *logrus.Logger
	Resumed *wizard.State // rehydrated snapshot, nil for a fresh run
}

// NewWizard creates the root model.
func NewWizard(opts Options) *WizardModel {
	log := opts.Log
	if log == nil {
		log = logrus.New()
	}

	state := wizard.NewState()
	if opts.Resumed != nil {
		state = *opts.Resumed
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	m := &WizardModel{
		state:   state,
		client:  opts.Client,
		store:   opts.Store,
		writer:  session.NewWriter(opts.Store, session.DefaultDebounce),
		log:     log,
		spinner: sp,
	}
	m.campaign = newCampaignStepState(m)
	m.hierarchy = newHierarchyStepState(m)
	m.rulesStep = newRulesStepState()
	m.platform = newPlatformStepState()
	m.review = newReviewStepState()
	m.enterStep(m.state.Step)
	m.syncColumns()
	return m
}

// dispatch routes every state change through the reducer and schedules a
// debounced snapshot write.
func (m *WizardModel) dispatch(a wizard.Action) {
	m.state = wizard.Reduce(m.state, a)
	m.writer.Update(m.state)
}

func (m *WizardModel) Init() tea.Cmd {
	m.loading = true
	cmds := []tea.Cmd{m.spinner.Tick, fetchDataSources(m.client)}
	if m.state.DataSourceID != "" && len(m.state.Columns) == 0 {
		// Resumed session saved before its snapshot arrived.
		cmds = append(cmds, fetchSnapshot(m.client, m.state.DataSourceID))
	}
	if len(m.state.AvailableRules) == 0 {
		cmds = append(cmds, fetchRules(m.client))
	}
	return tea.Batch(cmds...)
}

func (m *WizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.hierarchy.preview.Width = msg.Width - 6
		m.hierarchy.refreshPreview(m.state)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dataSourcesLoadedMsg:
		m.loading = false
		m.sources = msg.sources
		return m, nil

	case snapshotLoadedMsg:
		m.loading = false
		if msg.sourceID != m.state.DataSourceID {
			// A stale fetch for a source the user already moved away from.
			return m, nil
		}
		m.dispatch(wizard.SetColumns{Columns: msg.columns})
		m.dispatch(wizard.SetSampleRows{Rows: msg.rows})
		m.syncColumns()
		return m, nil

	case rulesLoadedMsg:
		m.dispatch(wizard.SetAvailableRules{Rules: msg.rules})
		return m, nil

	case generationDoneMsg:
		m.loading = false
		m.dispatch(wizard.SetResult{Result: msg.result})
		m.statusMsg = "Generation complete"
		return m, clearStatusAfter(4 * time.Second)

	case apiErrorMsg:
		m.loading = false
		m.lastErr = msg.err.Error()
		m.log.WithError(msg.err).Warn("backend call failed")
		return m, nil

	case statusMsg:
		m.statusMsg = string(msg)
		return m, clearStatusAfter(3 * time.Second)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil

	case cursorSnapMsg:
		m.handleSnap(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *WizardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.writer.Flush()
		return m, tea.Quit
	}

	// Start over from any step.
	if msg.String() == "ctrl+r" {
		m.dispatch(wizard.Reset{})
		m.lastErr = ""
		m.statusMsg = "Wizard reset"
		return m, tea.Batch(fetchDataSources(m.client), clearStatusAfter(3*time.Second))
	}

	switch m.state.Step {
	case wizard.StepDataSource:
		return m.updateSourceStep(msg)
	case wizard.StepCampaign:
		return m.updateCampaignStep(msg)
	case wizard.StepHierarchy:
		return m.updateHierarchyStep(msg)
	case wizard.StepRules:
		return m.updateRulesStep(msg)
	case wizard.StepPlatform:
		return m.updatePlatformStep(msg)
	case wizard.StepReview:
		return m.updateReviewStep(msg)
	}
	return m, nil
}

// handleSnap forwards a deferred cursor fix-up to whichever input is
// focused; the generation guard inside the input drops stale ones.
func (m *WizardModel) handleSnap(msg cursorSnapMsg) {
	for _, vi := range m.focusableInputs() {
		if vi != nil && vi.Focused() {
			vi.HandleSnap(msg)
		}
	}
}

func (m *WizardModel) focusableInputs() []*VariableInput {
	inputs := []*VariableInput{m.campaign.name}
	inputs = append(inputs, m.hierarchy.inputs()...)
	return inputs
}

// syncColumns pushes the freshly fetched column set into every pattern
// input so autocomplete reflects the selected source.
func (m *WizardModel) syncColumns() {
	for _, vi := range m.focusableInputs() {
		if vi != nil {
			vi.SetColumns(m.state.Columns)
		}
	}
}

// goToNext advances one step if the current one validates.
func (m *WizardModel) goToNext() tea.Cmd {
	result := wizard.Validate(m.state.Step, m.state)
	if !result.Valid {
		m.statusMsg = result.Errors[0]
		return clearStatusAfter(4 * time.Second)
	}
	next := wizard.NextStep(m.state.Step)
	if next != m.state.Step {
		m.dispatch(wizard.SetStep{Step: next})
		m.enterStep(next)
	}
	return nil
}

func (m *WizardModel) goToPrev() {
	prev := wizard.PrevStep(m.state.Step)
	if prev != m.state.Step {
		m.dispatch(wizard.SetStep{Step: prev})
		m.enterStep(prev)
	}
}

// enterStep refreshes per-step ephemeral UI state when a step is shown.
func (m *WizardModel) enterStep(step wizard.Step) {
	switch step {
	case wizard.StepCampaign:
		m.campaign.enter(m.state)
	case wizard.StepHierarchy:
		m.hierarchy.enter(m.state)
	case wizard.StepReview:
		m.review.enter()
	}
}

func (m *WizardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content string
	switch m.state.Step {
	case wizard.StepDataSource:
		content = m.viewSourceStep()
	case wizard.StepCampaign:
		content = m.viewCampaignStep()
	case wizard.StepHierarchy:
		content = m.viewHierarchyStep()
	case wizard.StepRules:
		content = m.viewRulesStep()
	case wizard.StepPlatform:
		content = m.viewPlatformStep()
	case wizard.StepReview:
		content = m.viewReviewStep()
	}

	sections := []string{m.viewBreadcrumbs(), content}
	if m.lastErr != "" {
		sections = append(sections, ErrorStyle.Render("✗ "+m.lastErr))
	}
	if m.statusMsg != "" {
		sections = append(sections, StatusBarStyle.Render(m.statusMsg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *WizardModel) viewBreadcrumbs() string {
	labels := map[wizard.Step]string{
		wizard.StepDataSource: "Source",
		wizard.StepCampaign:   "Campaign",
		wizard.StepHierarchy:  "Ad Groups",
		wizard.StepRules:      "Rules",
		wizard.StepPlatform:   "Platforms",
		wizard.StepReview:     "Review",
	}

	var parts []string
	for i, step := range wizard.StepOrder {
		label := fmt.Sprintf("%d.%s", i+1, labels[step])
		if step == m.state.Step {
			parts = append(parts, StepTitleStyle.Render(label))
		} else {
			parts = append(parts, DimStyle.Render(label))
		}
	}
	return " " + strings.Join(parts, DimStyle.Render(" › ")) + "\n"
}

func (m *WizardModel) helpLine(entries ...string) string {
	return "\n" + HelpStyle.Render(" "+strings.Join(entries, " • "))
}
