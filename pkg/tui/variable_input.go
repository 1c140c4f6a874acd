package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/adforge/adforge-cli/pkg/models"
	"github.com/adforge/adforge-cli/pkg/pattern"
)

// VariableInput is a single-line pattern editor that treats {variable}
// tokens as atomic units: the cursor never lands inside a token, and
// deleting any part of one removes the whole token. An unclosed { before
// the cursor opens an autocomplete dropdown over the available columns.
//
// All offsets are rune offsets, matching pkg/pattern.
type VariableInput struct {
	value   string
	cursor  int
	columns []models.Column
	focused bool

	// Selection anchor for shift+arrow selection; -1 when no selection.
	// Atomic navigation is suppressed while a selection is active.
	anchor int

	// Dropdown state
	dropdownOpen   bool
	dropdownFilter string
	highlighted    int

	// generation increments on every value or cursor change; deferred
	// cursor fix-ups carry the generation they were scheduled against and
	// no-op when the input has moved on.
	generation int

	Placeholder string
	Width       int
}

// cursorSnapMsg asks the input to re-apply a click-snap after the update
// that positioned the cursor has been rendered.
type cursorSnapMsg struct {
	generation int
}

// NewVariableInput creates an unfocused empty input.
func NewVariableInput() *VariableInput {
	return &VariableInput{anchor: -1, Width: 60}
}

// SetColumns replaces the autocomplete candidate set.
func (vi *VariableInput) SetColumns(cols []models.Column) {
	vi.columns = cols
}

// SetValue replaces the text and moves the cursor to the end.
func (vi *VariableInput) SetValue(value string) {
	vi.value = value
	vi.cursor = len([]rune(value))
	vi.anchor = -1
	vi.generation++
	vi.closeDropdown()
}

// Value returns the current pattern text.
func (vi *VariableInput) Value() string {
	return vi.value
}

// CursorPosition returns the rune offset of the cursor.
func (vi *VariableInput) CursorPosition() int {
	return vi.cursor
}

// Focus gives the input keyboard focus.
func (vi *VariableInput) Focus() {
	vi.focused = true
}

// Blur removes focus and closes the dropdown, the terminal analogue of the
// pointer landing outside the input.
func (vi *VariableInput) Blur() {
	vi.focused = false
	vi.anchor = -1
	vi.closeDropdown()
}

// Focused reports whether the input has focus.
func (vi *VariableInput) Focused() bool {
	return vi.focused
}

// Suggesting reports whether the autocomplete dropdown is open.
func (vi *VariableInput) Suggesting() bool {
	return vi.dropdownOpen
}

// DropdownFilter returns the current autocomplete filter text.
func (vi *VariableInput) DropdownFilter() string {
	return vi.dropdownFilter
}

// Highlighted returns the highlighted candidate index; -1 means none.
func (vi *VariableInput) Highlighted() int {
	return vi.highlighted
}

// Candidates returns the column names matching the dropdown filter,
// case-insensitively by substring. An empty filter matches everything.
func (vi *VariableInput) Candidates() []string {
	var out []string
	needle := strings.ToLower(vi.dropdownFilter)
	for _, c := range vi.columns {
		if needle == "" || strings.Contains(strings.ToLower(c.Name), needle) {
			out = append(out, c.Name)
		}
	}
	return out
}

// HandleKey processes one key event. It reports whether the value changed,
// whether the event was consumed, and an optional command for deferred
// cursor fix-ups.
func (vi *VariableInput) HandleKey(msg tea.KeyMsg) (changed, handled bool, cmd tea.Cmd) {
	if !vi.focused {
		return false, false, nil
	}

	if vi.dropdownOpen {
		switch msg.String() {
		case "down":
			candidates := vi.Candidates()
			if vi.highlighted < len(candidates)-1 {
				vi.highlighted++
			}
			return false, true, nil
		case "up":
			// Clamped, not cyclic; -1 leaves nothing highlighted.
			if vi.highlighted > -1 {
				vi.highlighted--
			}
			return false, true, nil
		case "enter", "tab":
			candidates := vi.Candidates()
			if vi.highlighted >= 0 && vi.highlighted < len(candidates) {
				vi.CommitCandidate(candidates[vi.highlighted])
				return true, true, nil
			}
			return false, true, nil
		case "esc":
			vi.closeDropdown()
			return false, true, nil
		}
	}

	switch msg.String() {
	case "left":
		vi.moveLeft()
		return false, true, nil
	case "right":
		vi.moveRight()
		return false, true, nil
	case "shift+left":
		vi.extendSelection(-1)
		return false, true, nil
	case "shift+right":
		vi.extendSelection(1)
		return false, true, nil
	case "home", "ctrl+a":
		vi.setCursor(0)
		return false, true, nil
	case "end", "ctrl+e":
		vi.setCursor(len([]rune(vi.value)))
		return false, true, nil
	case "backspace":
		return vi.backspace(), true, nil
	case "delete", "ctrl+d":
		return vi.deleteForward(), true, nil
	case "esc":
		if vi.anchor >= 0 {
			vi.anchor = -1
			return false, true, nil
		}
		return false, false, nil
	}

	if msg.Type == tea.KeyRunes && !msg.Alt {
		vi.insert(string(msg.Runes))
		return true, true, nil
	}
	if msg.Type == tea.KeySpace {
		vi.insert(" ")
		return true, true, nil
	}

	return false, false, nil
}

// Click positions the cursor from a click at the given rune offset. When
// the click lands strictly inside a token the cursor must snap to the
// token's end, but only after the click positioning itself has been
// applied, so the snap is deferred through a cursorSnapMsg guarded by the
// input's generation.
func (vi *VariableInput) Click(pos int) tea.Cmd {
	runes := []rune(vi.value)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	vi.setCursor(pos)
	vi.anchor = -1

	if pattern.VariableAtPosition(vi.value, pos) == nil {
		return nil
	}
	gen := vi.generation
	return func() tea.Msg {
		return cursorSnapMsg{generation: gen}
	}
}

// HandleSnap applies a deferred click-snap. A snap scheduled against an
// older generation means the user has typed or moved on since, and is
// silently dropped.
func (vi *VariableInput) HandleSnap(msg cursorSnapMsg) {
	if msg.generation != vi.generation {
		return
	}
	if v := pattern.VariableAtPosition(vi.value, vi.cursor); v != nil {
		vi.setCursor(v.End)
	}
}

// CommitCandidate replaces the open-brace-to-cursor span with {name},
// places the cursor right after the closing brace, and closes the
// dropdown.
func (vi *VariableInput) CommitCandidate(name string) {
	before := string([]rune(vi.value)[:vi.cursor])
	open := strings.LastIndex(before, "{")
	if open < 0 {
		return
	}
	openRunes := len([]rune(before[:open]))

	runes := []rune(vi.value)
	token := "{" + name + "}"
	newValue := string(runes[:openRunes]) + token + string(runes[vi.cursor:])
	vi.value = newValue
	vi.cursor = openRunes + len([]rune(token))
	vi.anchor = -1
	vi.generation++
	vi.closeDropdown()
}

func (vi *VariableInput) setCursor(pos int) {
	vi.cursor = pos
	vi.generation++
}

func (vi *VariableInput) closeDropdown() {
	vi.dropdownOpen = false
	vi.dropdownFilter = ""
	vi.highlighted = 0
}

// refreshDropdown recomputes the Idle/Suggesting state from the text
// before the cursor: an unmatched { after the last } opens the dropdown
// with everything between the brace and the cursor as filter.
func (vi *VariableInput) refreshDropdown() {
	before := string([]rune(vi.value)[:vi.cursor])
	open := strings.LastIndex(before, "{")
	closing := strings.LastIndex(before, "}")

	if open >= 0 && open > closing {
		filter := before[open+1:]
		if !vi.dropdownOpen || filter != vi.dropdownFilter {
			vi.highlighted = 0
		}
		vi.dropdownOpen = true
		vi.dropdownFilter = filter
		return
	}
	vi.closeDropdown()
}

func (vi *VariableInput) selection() (start, end int, ok bool) {
	if vi.anchor < 0 || vi.anchor == vi.cursor {
		return 0, 0, false
	}
	if vi.anchor < vi.cursor {
		return vi.anchor, vi.cursor, true
	}
	return vi.cursor, vi.anchor, true
}

func (vi *VariableInput) extendSelection(dir int) {
	if vi.anchor < 0 {
		vi.anchor = vi.cursor
	}
	runes := []rune(vi.value)
	pos := vi.cursor + dir
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	vi.setCursor(pos)
	if vi.anchor == vi.cursor {
		vi.anchor = -1
	}
}

// moveLeft applies atomic navigation: from a token's right boundary or
// interior the cursor jumps to the token's start.
func (vi *VariableInput) moveLeft() {
	if start, _, ok := vi.selection(); ok {
		vi.anchor = -1
		vi.setCursor(start)
		return
	}
	if v := pattern.VariableToLeft(vi.value, vi.cursor); v != nil {
		vi.setCursor(v.Start)
		return
	}
	if v := pattern.VariableAtPosition(vi.value, vi.cursor); v != nil {
		vi.setCursor(v.Start)
		return
	}
	if vi.cursor > 0 {
		vi.setCursor(vi.cursor - 1)
	}
}

func (vi *VariableInput) moveRight() {
	if _, end, ok := vi.selection(); ok {
		vi.anchor = -1
		vi.setCursor(end)
		return
	}
	if v := pattern.VariableToRight(vi.value, vi.cursor); v != nil {
		vi.setCursor(v.End)
		return
	}
	if v := pattern.VariableAtPosition(vi.value, vi.cursor); v != nil {
		vi.setCursor(v.End)
		return
	}
	if vi.cursor < len([]rune(vi.value)) {
		vi.setCursor(vi.cursor + 1)
	}
}

func (vi *VariableInput) insert(text string) {
	if start, end, ok := vi.selection(); ok {
		vi.deleteRange(start, end)
	}
	runes := []rune(vi.value)
	vi.value = string(runes[:vi.cursor]) + text + string(runes[vi.cursor:])
	vi.cursor += len([]rune(text))
	vi.anchor = -1
	vi.generation++
	vi.refreshDropdown()
}

// backspace deletes the whole token when the cursor sits at its right
// boundary or inside it, otherwise one character.
func (vi *VariableInput) backspace() (changed bool) {
	if start, end, ok := vi.selection(); ok {
		vi.deleteRange(start, end)
		vi.refreshDropdown()
		return true
	}
	if v := tokenLeftOrContaining(vi.value, vi.cursor); v != nil {
		vi.deleteRange(v.Start, v.End)
		vi.refreshDropdown()
		return true
	}
	if vi.cursor == 0 {
		return false
	}
	vi.deleteRange(vi.cursor-1, vi.cursor)
	vi.refreshDropdown()
	return true
}

// deleteForward mirrors backspace using the token to the right of or
// containing the cursor.
func (vi *VariableInput) deleteForward() (changed bool) {
	if start, end, ok := vi.selection(); ok {
		vi.deleteRange(start, end)
		vi.refreshDropdown()
		return true
	}
	if v := tokenRightOrContaining(vi.value, vi.cursor); v != nil {
		vi.deleteRange(v.Start, v.End)
		vi.refreshDropdown()
		return true
	}
	runes := []rune(vi.value)
	if vi.cursor >= len(runes) {
		return false
	}
	vi.deleteRange(vi.cursor, vi.cursor+1)
	vi.refreshDropdown()
	return true
}

// deleteRange removes [start, end) and leaves the cursor at start.
func (vi *VariableInput) deleteRange(start, end int) {
	runes := []rune(vi.value)
	vi.value = string(runes[:start]) + string(runes[end:])
	vi.cursor = start
	vi.anchor = -1
	vi.generation++
}

func tokenLeftOrContaining(text string, pos int) *pattern.Variable {
	if v := pattern.VariableToLeft(text, pos); v != nil {
		return v
	}
	return pattern.VariableAtPosition(text, pos)
}

func tokenRightOrContaining(text string, pos int) *pattern.Variable {
	if v := pattern.VariableToRight(text, pos); v != nil {
		return v
	}
	return pattern.VariableAtPosition(text, pos)
}

// View renders the input line, highlighting tokens and the cursor, plus
// the dropdown when open.
func (vi *VariableInput) View() string {
	var b strings.Builder
	b.WriteString(vi.renderLine())
	if vi.dropdownOpen {
		b.WriteString("\n")
		b.WriteString(vi.renderDropdown())
	}
	return b.String()
}

func (vi *VariableInput) renderLine() string {
	fieldStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(ColorSelected)).
		Foreground(lipgloss.Color(ColorNormal)).
		Width(vi.Width).
		Padding(0, 1)

	runes := []rune(vi.value)
	if len(runes) == 0 {
		var content strings.Builder
		if vi.focused {
			content.WriteString(CursorStyle.Render(" "))
		}
		if vi.Placeholder != "" {
			content.WriteString(PlaceholderStyle.Render(vi.Placeholder))
		}
		return fieldStyle.Render(content.String())
	}

	vars := pattern.FindVariables(vi.value)
	selStart, selEnd, hasSel := vi.selection()

	inToken := func(i int) bool {
		for _, v := range vars {
			if i >= v.Start && i < v.End {
				return true
			}
		}
		return false
	}

	var content strings.Builder
	for i, r := range runes {
		ch := string(r)
		switch {
		case vi.focused && i == vi.cursor:
			content.WriteString(CursorStyle.Render(ch))
		case hasSel && i >= selStart && i < selEnd:
			content.WriteString(SelectionStyle.Render(ch))
		case inToken(i):
			content.WriteString(VariableStyle.Render(ch))
		default:
			content.WriteString(ch)
		}
	}
	if vi.focused && vi.cursor == len(runes) {
		content.WriteString(CursorStyle.Render(" "))
	}
	return fieldStyle.Render(content.String())
}

func (vi *VariableInput) renderDropdown() string {
	candidates := vi.Candidates()
	if len(candidates) == 0 {
		return PlaceholderStyle.Render("  no matching columns")
	}

	var b strings.Builder
	for i, name := range candidates {
		line := "  " + name
		if col := models.FindColumn(vi.columns, name); col != nil {
			line += DimStyle.Render("  " + string(col.Type))
		}
		if i == vi.highlighted {
			b.WriteString(SelectedStyle.Render("▸ " + name))
			if col := models.FindColumn(vi.columns, name); col != nil {
				b.WriteString(DimStyle.Render("  " + string(col.Type)))
			}
		} else {
			b.WriteString(line)
		}
		if i < len(candidates)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
