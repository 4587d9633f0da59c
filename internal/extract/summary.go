package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxSummaryRunes = 200
	ellipsis        = "..."
)

// SummaryRules controls the heuristic summary selection.
type SummaryRules struct {
	// Patterns capture the summary sentence in group 1; first match wins.
	Patterns []*regexp.Regexp
	// MinLineLen is the trimmed length a line must exceed to qualify.
	MinLineLen int
	// MinRawLen, when set, is the untrimmed length a line must exceed.
	MinRawLen int
	// Skip lists markers that disqualify a line.
	Skip    []string
	Default string
}

// Summary extracts an explicit summary sentence or falls back to the first
// meaningful line, cut to 200 runes plus an ellipsis.
func Summary(text string, rules SummaryRules) string {
	for _, re := range rules.Patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if s := strings.TrimSpace(m[1]); s != "" {
				return truncate(s)
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if utf8.RuneCountInString(trimmed) <= rules.MinLineLen {
			continue
		}
		if rules.MinRawLen > 0 && utf8.RuneCountInString(strings.TrimRight(line, "\r")) <= rules.MinRawLen {
			continue
		}
		if containsAny(trimmed, rules.Skip) {
			continue
		}
		return cut(trimmed) + ellipsis
	}

	return rules.Default
}

// truncate bounds an extracted sentence the same way as an excerpt.
func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxSummaryRunes {
		return s
	}
	return cut(s) + ellipsis
}

func cut(s string) string {
	if utf8.RuneCountInString(s) <= maxSummaryRunes {
		return s
	}
	return string([]rune(s)[:maxSummaryRunes])
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
