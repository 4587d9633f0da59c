package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Topics returns the capitalized form of every theme keyword found in
// text, in vocabulary order and without duplicates. def is returned when
// nothing matches.
func Topics(text string, themes, def []string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var out []string
	for _, theme := range themes {
		if !strings.Contains(lower, strings.ToLower(theme)) {
			continue
		}
		t := capitalize(theme)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
