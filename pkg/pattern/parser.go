// Package pattern implements the {variable} pattern language used for
// campaign, ad group, and ad naming: parsing variable tokens out of a
// pattern string and interpolating them against data rows.
package pattern

import (
	"regexp"
	"strings"
)

// Variable is one {...} occurrence in a pattern. Start and End are rune
// offsets; End is exclusive. Content includes the braces.
type Variable struct {
	Start   int
	End     int
	Content string
}

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Name returns the identifier of the token, without braces and without any
// |default suffix. Empty string if the token body is not a valid identifier.
func (v Variable) Name() string {
	body := strings.TrimSuffix(strings.TrimPrefix(v.Content, "{"), "}")
	if i := strings.Index(body, "|"); i >= 0 {
		body = body[:i]
	}
	if !identifierRe.MatchString(body) {
		return ""
	}
	return body
}

// Default returns the default literal of a {name|default} token and whether
// one was given.
func (v Variable) Default() (string, bool) {
	body := strings.TrimSuffix(strings.TrimPrefix(v.Content, "{"), "}")
	if i := strings.Index(body, "|"); i >= 0 {
		return body[i+1:], true
	}
	return "", false
}

// FindVariables scans text for {...} tokens. The scan is greedy and
// non-nested: each { is closed by the first } that follows it. An
// unterminated { produces no token.
func FindVariables(text string) []Variable {
	var vars []Variable
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '{' {
			continue
		}
		end := -1
		for j := i + 1; j < len(runes); j++ {
			if runes[j] == '}' {
				end = j
				break
			}
		}
		if end < 0 {
			break
		}
		vars = append(vars, Variable{
			Start:   i,
			End:     end + 1,
			Content: string(runes[i : end+1]),
		})
		i = end
	}
	return vars
}

// VariableAtPosition returns the token strictly containing pos: the cursor
// is inside the token, not at either boundary. Nil if there is none.
func VariableAtPosition(text string, pos int) *Variable {
	for _, v := range FindVariables(text) {
		if pos > v.Start && pos < v.End {
			found := v
			return &found
		}
	}
	return nil
}

// VariableToLeft returns the token ending exactly at pos, or nil.
func VariableToLeft(text string, pos int) *Variable {
	for _, v := range FindVariables(text) {
		if v.End == pos {
			found := v
			return &found
		}
	}
	return nil
}

// VariableToRight returns the token starting exactly at pos, or nil.
func VariableToRight(text string, pos int) *Variable {
	for _, v := range FindVariables(text) {
		if v.Start == pos {
			found := v
			return &found
		}
	}
	return nil
}

// Names returns the identifiers of every well-formed token in the pattern,
// in order, duplicates included.
func Names(text string) []string {
	var names []string
	for _, v := range FindVariables(text) {
		if n := v.Name(); n != "" {
			names = append(names, n)
		}
	}
	return names
}
