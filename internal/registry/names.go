package registry

import (
	"fmt"
	"strings"
	"unicode"
)

// UniqueName returns the first candidate in base, base_1, base_2, … for which
// exists reports false. An empty base falls back to fallback. The collision
// policy is the caller's: directory existence for venvs, list membership for
// conda environments.
func UniqueName(base, fallback string, exists func(string) bool) string {
	if base == "" {
		base = fallback
	}
	name := base
	for num := 1; exists(name); num++ {
		name = fmt.Sprintf("%s_%d", base, num)
	}
	return name
}

// SanitizeName lowercases the typed name and replaces every rune that is not
// alphanumeric or an underscore with an underscore, keeping the result safe
// as a directory or conda identifier.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	return b.String()
}
