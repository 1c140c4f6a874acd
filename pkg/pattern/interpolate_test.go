package pattern

import (
	"testing"

	"github.com/adforge/adforge-cli/pkg/models"
)

func TestInterpolate(t *testing.T) {
	row := models.DataRow{
		"brand":    "Nike",
		"product":  "Air Max",
		"price":    49.99,
		"stock":    12,
		"active":   true,
		"empty":    "",
		"nilvalue": nil,
	}

	tests := []struct {
		name     string
		pattern  string
		expected string
	}{
		{
			name:     "simple substitution",
			pattern:  "{brand}",
			expected: "Nike",
		},
		{
			name:     "literals preserved",
			pattern:  "buy-{brand}-now",
			expected: "buy-Nike-now",
		},
		{
			name:     "multiple tokens",
			pattern:  "{brand} {product}",
			expected: "Nike Air Max",
		},
		{
			name:     "number coercion",
			pattern:  "from {price} EUR",
			expected: "from 49.99 EUR",
		},
		{
			name:     "integral float stays undecorated",
			pattern:  "{stock} left",
			expected: "12 left",
		},
		{
			name:     "boolean coercion",
			pattern:  "{active}",
			expected: "true",
		},
		{
			name:     "missing column falls back to literal token",
			pattern:  "{nonexistent}",
			expected: "{nonexistent}",
		},
		{
			name:     "empty value falls back to literal token",
			pattern:  "{empty}",
			expected: "{empty}",
		},
		{
			name:     "nil value falls back to literal token",
			pattern:  "{nilvalue}",
			expected: "{nilvalue}",
		},
		{
			name:     "default used when missing",
			pattern:  "{nonexistent|fallback}",
			expected: "fallback",
		},
		{
			name:     "default used when empty",
			pattern:  "{empty|fallback}",
			expected: "fallback",
		},
		{
			name:     "default ignored when resolvable",
			pattern:  "{brand|fallback}",
			expected: "Nike",
		},
		{
			name:     "unterminated brace is literal",
			pattern:  "prefix-{bra",
			expected: "prefix-{bra",
		},
		{
			name:     "malformed identifier is literal",
			pattern:  "{not an id}",
			expected: "{not an id}",
		},
		{
			name:     "no tokens",
			pattern:  "plain text",
			expected: "plain text",
		},
		{
			name:     "empty pattern",
			pattern:  "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpolate(tt.pattern, row)
			if got != tt.expected {
				t.Errorf("Interpolate(%q) = %q, want %q", tt.pattern, got, tt.expected)
			}
		})
	}
}

// Every token whose identifier names a non-empty row value must actually be
// resolved: none of those tokens survive into the output.
func TestInterpolateResolvesEverythingResolvable(t *testing.T) {
	row := models.DataRow{"brand": "Nike", "product": "Air Max"}
	patterns := []string{
		"{brand}",
		"{brand}-{product}",
		"x{brand}y{missing}z",
		"{brand|d}-{missing|d}",
	}

	for _, p := range patterns {
		out := Interpolate(p, row)
		for _, v := range FindVariables(p) {
			name := v.Name()
			if name == "" {
				continue
			}
			if val, ok := row[name]; ok && Stringify(val) != "" {
				for _, ov := range FindVariables(out) {
					if ov.Content == v.Content {
						t.Errorf("Interpolate(%q) left resolvable token %q in output %q", p, v.Content, out)
					}
				}
			}
		}
	}
}

func TestInterpolateIsPure(t *testing.T) {
	row := models.DataRow{"brand": "Nike"}
	p := "{brand}-{missing}-{x|d}"

	first := Interpolate(p, row)
	second := Interpolate(p, row)
	if first != second {
		t.Errorf("Interpolate not deterministic: %q vs %q", first, second)
	}
}
