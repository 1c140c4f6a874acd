package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adforge/adforge-cli/pkg/models"
)

// Interpolate substitutes every well-formed token in pattern with the row's
// value for that column. Resolution order per token:
//
//  1. row value, when present and neither nil nor empty string
//  2. the token's |default literal, when given
//  3. the original {token} text, unchanged
//
// Leaving the literal token in the output is deliberate: an unresolved
// variable should stay visible so the author notices missing data, instead
// of silently collapsing to empty string. Malformed and unterminated braces
// pass through as literal text.
func Interpolate(pattern string, row models.DataRow) string {
	vars := FindVariables(pattern)
	if len(vars) == 0 {
		return pattern
	}

	runes := []rune(pattern)
	var b strings.Builder
	last := 0
	for _, v := range vars {
		b.WriteString(string(runes[last:v.Start]))
		b.WriteString(resolve(v, row))
		last = v.End
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

func resolve(v Variable, row models.DataRow) string {
	name := v.Name()
	if name == "" {
		return v.Content
	}
	if val, ok := row[name]; ok {
		if s := Stringify(val); s != "" {
			return s
		}
	}
	if def, ok := v.Default(); ok {
		return def
	}
	return v.Content
}

// Stringify converts a row value to its plain string form. No locale
// formatting; nil maps to empty string so it counts as unresolved.
func Stringify(val interface{}) string {
	switch t := val.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		// JSON numbers decode as float64; keep integral values undecorated.
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
