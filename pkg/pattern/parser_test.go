package pattern

import (
	"testing"
)

func TestFindVariables(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []Variable
	}{
		{
			name: "single token",
			text: "{brand}",
			expected: []Variable{
				{Start: 0, End: 7, Content: "{brand}"},
			},
		},
		{
			name: "token with surrounding literals",
			text: "pre-{brand}-post",
			expected: []Variable{
				{Start: 4, End: 11, Content: "{brand}"},
			},
		},
		{
			name: "adjacent tokens",
			text: "{a}{b}",
			expected: []Variable{
				{Start: 0, End: 3, Content: "{a}"},
				{Start: 3, End: 6, Content: "{b}"},
			},
		},
		{
			name: "token with default",
			text: "{brand|Acme}",
			expected: []Variable{
				{Start: 0, End: 12, Content: "{brand|Acme}"},
			},
		},
		{
			name:     "unterminated brace yields nothing",
			text:     "prefix-{bra",
			expected: nil,
		},
		{
			name: "unterminated brace after complete token",
			text: "{a} then {b",
			expected: []Variable{
				{Start: 0, End: 3, Content: "{a}"},
			},
		},
		{
			name: "first closing brace wins",
			text: "{a}}",
			expected: []Variable{
				{Start: 0, End: 3, Content: "{a}"},
			},
		},
		{
			name: "no nesting, inner brace becomes content",
			text: "{a{b}",
			expected: []Variable{
				{Start: 0, End: 5, Content: "{a{b}"},
			},
		},
		{
			name:     "plain text",
			text:     "no variables here",
			expected: nil,
		},
		{
			name:     "empty string",
			text:     "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindVariables(tt.text)

			if len(result) != len(tt.expected) {
				t.Fatalf("FindVariables(%q) returned %d tokens, want %d", tt.text, len(result), len(tt.expected))
			}

			for i, v := range result {
				want := tt.expected[i]
				if v.Start != want.Start || v.End != want.End || v.Content != want.Content {
					t.Errorf("FindVariables(%q)[%d] = {%d %d %q}, want {%d %d %q}",
						tt.text, i, v.Start, v.End, v.Content, want.Start, want.End, want.Content)
				}
			}
		})
	}
}

func TestVariableName(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"{brand}", "brand"},
		{"{brand_name}", "brand_name"},
		{"{_private}", "_private"},
		{"{brand|Acme}", "brand"},
		{"{2bad}", ""},
		{"{has space}", ""},
		{"{}", ""},
		{"{a{b}", ""},
	}

	for _, tt := range tests {
		v := Variable{Content: tt.content}
		if got := v.Name(); got != tt.expected {
			t.Errorf("Name(%q) = %q, want %q", tt.content, got, tt.expected)
		}
	}
}

func TestVariableDefault(t *testing.T) {
	tests := []struct {
		content string
		def     string
		ok      bool
	}{
		{"{brand}", "", false},
		{"{brand|Acme}", "Acme", true},
		{"{brand|}", "", true},
		{"{brand|a|b}", "a|b", true},
	}

	for _, tt := range tests {
		v := Variable{Content: tt.content}
		def, ok := v.Default()
		if def != tt.def || ok != tt.ok {
			t.Errorf("Default(%q) = (%q, %v), want (%q, %v)", tt.content, def, ok, tt.def, tt.ok)
		}
	}
}

func TestVariableAtPosition(t *testing.T) {
	text := "pre-{brand}-post" // token spans [4, 11)

	tests := []struct {
		name string
		pos  int
		want bool
	}{
		{"before token", 2, false},
		{"at token start", 4, false},
		{"just inside start", 5, true},
		{"middle", 7, true},
		{"just inside end", 10, true},
		{"at token end", 11, false},
		{"after token", 13, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := VariableAtPosition(text, tt.pos)
			if (v != nil) != tt.want {
				t.Errorf("VariableAtPosition(%q, %d) = %v, want match=%v", text, tt.pos, v, tt.want)
			}
			if v != nil && v.Content != "{brand}" {
				t.Errorf("VariableAtPosition returned %q, want {brand}", v.Content)
			}
		})
	}
}

func TestVariableToLeftAndRight(t *testing.T) {
	text := "{a}{b}" // tokens [0,3) and [3,6)

	if v := VariableToLeft(text, 3); v == nil || v.Content != "{a}" {
		t.Errorf("VariableToLeft(3) = %v, want {a}", v)
	}
	if v := VariableToRight(text, 3); v == nil || v.Content != "{b}" {
		t.Errorf("VariableToRight(3) = %v, want {b}", v)
	}
	if v := VariableToLeft(text, 6); v == nil || v.Content != "{b}" {
		t.Errorf("VariableToLeft(6) = %v, want {b}", v)
	}
	if v := VariableToRight(text, 0); v == nil || v.Content != "{a}" {
		t.Errorf("VariableToRight(0) = %v, want {a}", v)
	}
	if v := VariableToLeft(text, 1); v != nil {
		t.Errorf("VariableToLeft(1) = %v, want nil", v)
	}
	if v := VariableToRight(text, 5); v != nil {
		t.Errorf("VariableToRight(5) = %v, want nil", v)
	}
}

func TestNames(t *testing.T) {
	got := Names("{brand}-{product|x}-{bad token}-{brand}")
	want := []string{"brand", "product", "brand"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
