package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

type hierarchyFieldKind int

const (
	fieldGroupName hierarchyFieldKind = iota
	fieldKeywords
	fieldAdHeadline
	fieldAdDescription
	fieldAdDisplayURL
	fieldAdFinalURL
	fieldAdCTA
)

// hierarchyField is one editable line. Pattern fields carry a
// VariableInput; keywords use a plain text input.
type hierarchyField struct {
	kind    hierarchyFieldKind
	label   string
	groupID string
	adID    string
	input   *VariableInput
	text    *textinput.Model
}

// hierarchyStepState mirrors the hierarchy config as a flat list of
// focusable fields, rebuilt whenever the structure changes, plus a
// scrollable preview pane.
type hierarchyStepState struct {
	model    *WizardModel
	fields   []hierarchyField
	focusIdx int
	preview  viewport.Model
}

func newHierarchyStepState(m *WizardModel) *hierarchyStepState {
	vp := viewport.New(60, 12)
	return &hierarchyStepState{model: m, preview: vp}
}

func (h *hierarchyStepState) inputs() []*VariableInput {
	var out []*VariableInput
	for _, f := range h.fields {
		if f.input != nil {
			out = append(out, f.input)
		}
	}
	return out
}

// enter rebuilds the field list from the current hierarchy and refreshes
// the preview.
func (h *hierarchyStepState) enter(s wizard.State) {
	h.rebuild(s)
	h.setFocus(0)
	h.refreshPreview(s)
}

func (h *hierarchyStepState) rebuild(s wizard.State) {
	h.fields = nil
	for _, g := range s.Hierarchy.AdGroups {
		h.fields = append(h.fields, h.patternField(fieldGroupName, "Ad group name", g.ID, "", g.NamePattern, s))
		h.fields = append(h.fields, h.keywordField(g.ID, g.Keywords))
		for _, ad := range g.Ads {
			h.fields = append(h.fields,
				h.patternField(fieldAdHeadline, "Headline", g.ID, ad.ID, ad.Headline, s),
				h.patternField(fieldAdDescription, "Description", g.ID, ad.ID, ad.Description, s),
				h.patternField(fieldAdDisplayURL, "Display URL", g.ID, ad.ID, ad.DisplayURL, s),
				h.patternField(fieldAdFinalURL, "Final URL", g.ID, ad.ID, ad.FinalURL, s),
				h.patternField(fieldAdCTA, "Call to action", g.ID, ad.ID, ad.CallToAction, s),
			)
		}
	}
	if h.focusIdx >= len(h.fields) {
		h.focusIdx = len(h.fields) - 1
	}
}

func (h *hierarchyStepState) patternField(kind hierarchyFieldKind, label, groupID, adID, value string, s wizard.State) hierarchyField {
	vi := NewVariableInput()
	vi.SetColumns(s.Columns)
	vi.SetValue(value)
	return hierarchyField{kind: kind, label: label, groupID: groupID, adID: adID, input: vi}
}

func (h *hierarchyStepState) keywordField(groupID string, keywords []string) hierarchyField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "comma separated"
	ti.SetValue(strings.Join(keywords, ", "))
	return hierarchyField{kind: fieldKeywords, label: "Keywords", groupID: groupID, text: &ti}
}

func (h *hierarchyStepState) setFocus(idx int) {
	if len(h.fields) == 0 {
		return
	}
	if idx < 0 {
		idx = len(h.fields) - 1
	}
	if idx >= len(h.fields) {
		idx = 0
	}
	for i := range h.fields {
		f := &h.fields[i]
		if i == idx {
			if f.input != nil {
				f.input.Focus()
			} else {
				f.text.Focus()
			}
		} else {
			if f.input != nil {
				f.input.Blur()
			} else {
				f.text.Blur()
			}
		}
	}
	h.focusIdx = idx
}

func (h *hierarchyStepState) focused() *hierarchyField {
	if h.focusIdx < 0 || h.focusIdx >= len(h.fields) {
		return nil
	}
	return &h.fields[h.focusIdx]
}

func (h *hierarchyStepState) refreshPreview(s wizard.State) {
	h.preview.SetContent(RenderPreview(s, h.preview.Width))
}

func (m *WizardModel) updateHierarchyStep(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h := m.hierarchy
	f := h.focused()

	suggesting := f != nil && f.input != nil && f.input.Suggesting()
	if !suggesting {
		switch msg.String() {
		case "tab":
			h.setFocus(h.focusIdx + 1)
			return m, nil
		case "shift+tab":
			h.setFocus(h.focusIdx - 1)
			return m, nil
		case "enter":
			return m, m.goToNext()
		case "esc":
			m.goToPrev()
			return m, nil
		case "ctrl+g":
			m.dispatch(wizard.AddAdGroup{})
			h.rebuild(m.state)
			h.refreshPreview(m.state)
			return m, nil
		case "ctrl+b":
			if f != nil {
				m.dispatch(wizard.RemoveAdGroup{GroupID: f.groupID})
				h.rebuild(m.state)
				h.setFocus(0)
				h.refreshPreview(m.state)
			}
			return m, nil
		case "ctrl+n":
			if f != nil {
				m.dispatch(wizard.AddAd{GroupID: f.groupID})
				h.rebuild(m.state)
				h.refreshPreview(m.state)
			}
			return m, nil
		case "ctrl+x":
			if f != nil && f.adID != "" {
				m.dispatch(wizard.RemoveAd{GroupID: f.groupID, AdID: f.adID})
				h.rebuild(m.state)
				h.setFocus(0)
				h.refreshPreview(m.state)
			}
			return m, nil
		case "pgup":
			h.preview.LineUp(3)
			return m, nil
		case "pgdown":
			h.preview.LineDown(3)
			return m, nil
		}
	}

	if f == nil {
		return m, nil
	}

	if f.input != nil {
		changed, handled, cmd := f.input.HandleKey(msg)
		if changed {
			m.dispatchFieldEdit(f)
			h.refreshPreview(m.state)
		}
		if handled {
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	*f.text, cmd = f.text.Update(msg)
	m.dispatch(wizard.SetAdGroupKeywords{GroupID: f.groupID, Keywords: splitKeywords(f.text.Value())})
	return m, cmd
}

// dispatchFieldEdit maps an edited pattern field back onto the state.
func (m *WizardModel) dispatchFieldEdit(f *hierarchyField) {
	value := f.input.Value()
	if f.kind == fieldGroupName {
		m.dispatch(wizard.SetAdGroupName{GroupID: f.groupID, Pattern: value})
		return
	}

	gi := m.state.Hierarchy.FindAdGroup(f.groupID)
	if gi < 0 {
		return
	}
	var ad *models.AdDefinition
	for i := range m.state.Hierarchy.AdGroups[gi].Ads {
		if m.state.Hierarchy.AdGroups[gi].Ads[i].ID == f.adID {
			ad = &m.state.Hierarchy.AdGroups[gi].Ads[i]
			break
		}
	}
	if ad == nil {
		return
	}

	updated := *ad
	switch f.kind {
	case fieldAdHeadline:
		updated.Headline = value
	case fieldAdDescription:
		updated.Description = value
	case fieldAdDisplayURL:
		updated.DisplayURL = value
	case fieldAdFinalURL:
		updated.FinalURL = value
	case fieldAdCTA:
		updated.CallToAction = value
	}
	m.dispatch(wizard.UpdateAd{GroupID: f.groupID, Ad: updated})
}

func splitKeywords(raw string) []string {
	var out []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (m *WizardModel) viewHierarchyStep() string {
	h := m.hierarchy
	var b lipglossBuilder

	b.line(HeaderStyle.Render(" Ad groups and ads"))
	b.blank()

	groupNo := 0
	lastGroup := ""
	lastAd := ""
	for i, f := range h.fields {
		if f.groupID != lastGroup {
			groupNo++
			lastGroup = f.groupID
			lastAd = ""
			if groupNo > 1 {
				b.blank()
			}
			b.line(StepTitleStyle.Render(fmt.Sprintf("  Ad group %d", groupNo)))
		}
		if f.adID != "" && f.adID != lastAd {
			lastAd = f.adID
			b.line(DimStyle.Render("    ── ad ──"))
		}

		label := fmt.Sprintf("    %-15s", f.label)
		var value string
		if f.input != nil {
			value = f.input.View()
		} else {
			value = f.text.View()
		}
		if i == h.focusIdx {
			b.line(SelectedStyle.Render("  ▸") + label + value)
		} else {
			b.line("   " + DimStyle.Render(label) + value)
		}
	}

	b.blank()
	b.line(HeaderStyle.Render(" Preview"))
	b.line(InactiveBorderStyle.Render(h.preview.View()))

	return b.String() + m.helpLine(
		"tab field", "ctrl+g/+b add/del group", "ctrl+n/+x add/del ad",
		"pgup/pgdn scroll", "enter next", "esc back")
}
