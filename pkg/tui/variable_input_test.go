package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adforge/adforge-cli/pkg/models"
)

func testColumns() []models.Column {
	return []models.Column{
		{Name: "brand_name", Type: models.ColumnTypeString},
		{Name: "brand_id", Type: models.ColumnTypeNumber},
		{Name: "product", Type: models.ColumnTypeString},
	}
}

func newTestInput(value string) *VariableInput {
	vi := NewVariableInput()
	vi.SetColumns(testColumns())
	vi.SetValue(value)
	vi.Focus()
	return vi
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeString(vi *VariableInput, s string) {
	for _, r := range s {
		vi.HandleKey(runeKey(string(r)))
	}
}

func TestArrowLeftJumpsOverToken(t *testing.T) {
	vi := newTestInput("pre-{brand_name}")
	// Cursor at end = right boundary of the token.
	if vi.CursorPosition() != 16 {
		t.Fatalf("cursor = %d, want 16", vi.CursorPosition())
	}

	vi.HandleKey(key(tea.KeyLeft))
	if vi.CursorPosition() != 4 {
		t.Errorf("ArrowLeft from token end: cursor = %d, want token start 4", vi.CursorPosition())
	}

	vi.HandleKey(key(tea.KeyLeft))
	if vi.CursorPosition() != 3 {
		t.Errorf("ArrowLeft in literal: cursor = %d, want 3", vi.CursorPosition())
	}
}

func TestArrowRightJumpsOverToken(t *testing.T) {
	vi := newTestInput("{brand_name}-post")
	vi.setCursor(0)

	vi.HandleKey(key(tea.KeyRight))
	if vi.CursorPosition() != 12 {
		t.Errorf("ArrowRight from token start: cursor = %d, want token end 12", vi.CursorPosition())
	}
}

func TestArrowRightFromInsideTokenLandsAtEnd(t *testing.T) {
	text := "x{brand_name}y" // token [1, 13)
	for pos := 2; pos < 13; pos++ {
		vi := newTestInput(text)
		vi.setCursor(pos)
		vi.HandleKey(key(tea.KeyRight))
		if vi.CursorPosition() != 13 {
			t.Errorf("ArrowRight from %d: cursor = %d, want exactly 13", pos, vi.CursorPosition())
		}
	}
}

func TestBackspaceDeletesWholeToken(t *testing.T) {
	vi := newTestInput("prefix-{brand_name}-suffix")
	// Place cursor immediately after the token.
	vi.setCursor(19)

	changed := vi.backspace()
	if !changed {
		t.Fatal("backspace should report a change")
	}
	if vi.Value() != "prefix--suffix" {
		t.Errorf("value = %q, want prefix--suffix", vi.Value())
	}
	if vi.CursorPosition() != 7 {
		t.Errorf("cursor = %d, want 7 (token start)", vi.CursorPosition())
	}
}

func TestBackspaceInsideTokenDeletesWholeToken(t *testing.T) {
	vi := newTestInput("a{brand_name}b")
	vi.cursor = 5 // strictly inside
	vi.HandleKey(key(tea.KeyBackspace))

	if vi.Value() != "ab" {
		t.Errorf("value = %q, want ab", vi.Value())
	}
	if vi.CursorPosition() != 1 {
		t.Errorf("cursor = %d, want 1", vi.CursorPosition())
	}
}

func TestBackspaceSingleCharInLiteral(t *testing.T) {
	vi := newTestInput("abc")
	vi.HandleKey(key(tea.KeyBackspace))
	if vi.Value() != "ab" || vi.CursorPosition() != 2 {
		t.Errorf("value = %q cursor = %d, want ab / 2", vi.Value(), vi.CursorPosition())
	}
}

func TestDeleteForwardRemovesTokenToRight(t *testing.T) {
	vi := newTestInput("a{brand_name}b")
	vi.setCursor(1) // token starts here

	vi.HandleKey(key(tea.KeyDelete))
	if vi.Value() != "ab" {
		t.Errorf("value = %q, want ab", vi.Value())
	}
	if vi.CursorPosition() != 1 {
		t.Errorf("cursor = %d, want 1 (span start)", vi.CursorPosition())
	}
}

func TestDeleteForwardSingleChar(t *testing.T) {
	vi := newTestInput("abc")
	vi.setCursor(0)
	vi.HandleKey(key(tea.KeyDelete))
	if vi.Value() != "bc" || vi.CursorPosition() != 0 {
		t.Errorf("value = %q cursor = %d, want bc / 0", vi.Value(), vi.CursorPosition())
	}
}

func TestTypingOpenBraceOpensDropdown(t *testing.T) {
	vi := newTestInput("prefix-")
	typeString(vi, "{")

	if !vi.Suggesting() {
		t.Fatal("dropdown should open after typing {")
	}
	if vi.DropdownFilter() != "" {
		t.Errorf("filter = %q, want empty", vi.DropdownFilter())
	}
	if got := len(vi.Candidates()); got != 3 {
		t.Errorf("empty filter should match all columns, got %d", got)
	}
}

func TestDropdownFilterNarrowsCaseInsensitively(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{BRAND")

	if !vi.Suggesting() {
		t.Fatal("dropdown should be open")
	}
	cands := vi.Candidates()
	if len(cands) != 2 || cands[0] != "brand_name" || cands[1] != "brand_id" {
		t.Errorf("candidates = %v, want [brand_name brand_id]", cands)
	}
}

func TestDropdownClosesWhenBraceClosed(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{brand_name}")

	if vi.Suggesting() {
		t.Error("dropdown should close once the brace is closed")
	}
}

func TestAutocompleteCommit(t *testing.T) {
	vi := newTestInput("prefix-")
	typeString(vi, "{")

	// Highlight starts at the first candidate; move to brand_name (index 0
	// already) and commit.
	vi.HandleKey(key(tea.KeyEnter))

	if vi.Value() != "prefix-{brand_name}" {
		t.Errorf("value = %q, want prefix-{brand_name}", vi.Value())
	}
	if vi.CursorPosition() != 19 {
		t.Errorf("cursor = %d, want 19 (right after closing brace)", vi.CursorPosition())
	}
	if vi.Suggesting() {
		t.Error("dropdown should close after commit")
	}
	if vi.DropdownFilter() != "" {
		t.Error("filter should clear after commit")
	}
}

func TestAutocompleteCommitReplacesPartialFilter(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{prod")

	vi.HandleKey(key(tea.KeyEnter))
	if vi.Value() != "{product}" {
		t.Errorf("value = %q, want {product}", vi.Value())
	}
	if vi.CursorPosition() != 9 {
		t.Errorf("cursor = %d, want 9", vi.CursorPosition())
	}
}

func TestDropdownHighlightClamps(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{brand")

	// Two candidates; down must clamp at the last index.
	vi.HandleKey(key(tea.KeyDown))
	vi.HandleKey(key(tea.KeyDown))
	vi.HandleKey(key(tea.KeyDown))
	if vi.Highlighted() != 1 {
		t.Errorf("highlight = %d, want clamped at 1", vi.Highlighted())
	}

	// Up clamps at -1 (nothing highlighted), not cyclic.
	for i := 0; i < 5; i++ {
		vi.HandleKey(key(tea.KeyUp))
	}
	if vi.Highlighted() != -1 {
		t.Errorf("highlight = %d, want clamped at -1", vi.Highlighted())
	}

	// Enter with no highlight must not modify the text.
	before := vi.Value()
	vi.HandleKey(key(tea.KeyEnter))
	if vi.Value() != before {
		t.Error("enter without a highlighted candidate should not commit")
	}
}

func TestDropdownEscClosesWithoutTextChange(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{bra")

	vi.HandleKey(key(tea.KeyEsc))
	if vi.Suggesting() {
		t.Error("esc should close the dropdown")
	}
	if vi.Value() != "{bra" {
		t.Errorf("value = %q, esc must not modify text", vi.Value())
	}
}

func TestBlurClosesDropdown(t *testing.T) {
	vi := newTestInput("")
	typeString(vi, "{")
	vi.Blur()
	if vi.Suggesting() {
		t.Error("blur should close the dropdown")
	}
}

func TestUnterminatedBraceMidTextTriggersDropdown(t *testing.T) {
	vi := newTestInput("{a} and ")
	typeString(vi, "{pro")

	if !vi.Suggesting() {
		t.Fatal("open brace after closed token should suggest")
	}
	if vi.DropdownFilter() != "pro" {
		t.Errorf("filter = %q, want pro", vi.DropdownFilter())
	}
}

func TestSelectionSuppressesAtomicNavigation(t *testing.T) {
	vi := newTestInput("{brand_name}")
	// Select the last two characters with shift+left.
	vi.HandleKey(key(tea.KeyShiftLeft))
	vi.HandleKey(key(tea.KeyShiftLeft))
	if _, _, ok := vi.selection(); !ok {
		t.Fatal("expected an active selection")
	}

	// Plain ArrowLeft collapses to the selection start rather than jumping
	// to the token boundary.
	vi.HandleKey(key(tea.KeyLeft))
	if vi.CursorPosition() != 10 {
		t.Errorf("cursor = %d, want selection start 10", vi.CursorPosition())
	}
	if _, _, ok := vi.selection(); ok {
		t.Error("plain arrow should clear the selection")
	}
}

func TestSelectionDeleteReplacesOnlySelectedText(t *testing.T) {
	vi := newTestInput("abcdef")
	vi.HandleKey(key(tea.KeyShiftLeft))
	vi.HandleKey(key(tea.KeyShiftLeft))
	vi.HandleKey(key(tea.KeyBackspace))
	if vi.Value() != "abcd" {
		t.Errorf("value = %q, want abcd", vi.Value())
	}
}

func TestClickInsideTokenSnapsToEndAfterDeferredFixup(t *testing.T) {
	vi := newTestInput("go-{brand_name}-now") // token [3, 15)

	cmd := vi.Click(7)
	if cmd == nil {
		t.Fatal("click inside a token should schedule a snap")
	}
	// The click itself lands where the terminal put it.
	if vi.CursorPosition() != 7 {
		t.Fatalf("cursor = %d immediately after click, want 7", vi.CursorPosition())
	}

	msg, ok := cmd().(cursorSnapMsg)
	if !ok {
		t.Fatalf("cmd produced %T, want cursorSnapMsg", cmd())
	}
	vi.HandleSnap(msg)
	if vi.CursorPosition() != 15 {
		t.Errorf("cursor = %d after snap, want token end 15", vi.CursorPosition())
	}
}

func TestStaleSnapIsDropped(t *testing.T) {
	vi := newTestInput("go-{brand_name}-now")

	cmd := vi.Click(7)
	msg := cmd().(cursorSnapMsg)

	// The user types before the deferred snap arrives; the snap is stale
	// and must no-op rather than clobber the newer state.
	vi.HandleKey(key(tea.KeyBackspace)) // deletes the token
	valueAfterEdit := vi.Value()
	cursorAfterEdit := vi.CursorPosition()

	vi.HandleSnap(msg)
	if vi.Value() != valueAfterEdit || vi.CursorPosition() != cursorAfterEdit {
		t.Error("stale snap must not modify value or cursor")
	}
}

func TestClickAtBoundaryDoesNotSnap(t *testing.T) {
	vi := newTestInput("go-{brand_name}")
	if cmd := vi.Click(3); cmd != nil {
		t.Error("click at token start should not schedule a snap")
	}
	if cmd := vi.Click(15); cmd != nil {
		t.Error("click at token end should not schedule a snap")
	}
}

func TestAdjacentTokensNavigation(t *testing.T) {
	vi := newTestInput("{brand_name}{product}") // tokens [0,12) and [12,21)
	vi.setCursor(12)

	vi.HandleKey(key(tea.KeyRight))
	if vi.CursorPosition() != 21 {
		t.Errorf("ArrowRight between adjacent tokens: cursor = %d, want 21", vi.CursorPosition())
	}

	vi.setCursor(12)
	vi.HandleKey(key(tea.KeyLeft))
	if vi.CursorPosition() != 0 {
		t.Errorf("ArrowLeft between adjacent tokens: cursor = %d, want 0", vi.CursorPosition())
	}
}

func TestTypingNotifiesChange(t *testing.T) {
	vi := newTestInput("")
	changed, handled, _ := vi.HandleKey(runeKey("a"))
	if !changed || !handled {
		t.Errorf("typing a rune: changed=%v handled=%v, want true/true", changed, handled)
	}

	changed, _, _ = vi.HandleKey(key(tea.KeyLeft))
	if changed {
		t.Error("cursor movement should not report a value change")
	}
}
