package extract

import (
	"strings"

	"github.com/jd3600/sonar/internal/types"
)

type taxonomyRule struct {
	label    types.Affiliation
	keywords []string
	// negatable keywords do not count when prefixed by a negation
	// ("non-indépendantiste" is a loyalist label).
	negatable bool
}

// taxonomy is tested in order; the first matching rule wins.
var taxonomy = []taxonomyRule{
	{
		label:     types.Independentist,
		keywords:  []string{"indépendantiste", "independentist", "pro-indépendance", "pro-independence", "flnks"},
		negatable: true,
	},
	{
		label: types.Loyalist,
		keywords: []string{
			"loyaliste", "loyalist",
			"non-indépendantiste", "anti-indépendantiste", "non indépendantiste",
			"non-independentist", "anti-independence",
		},
	},
	{label: types.State, keywords: []string{"état", "gouvernement", "government", "state", "haut-commissa"}},
	{label: types.Neutral, keywords: []string{"neutre", "neutral", "journaliste", "journalist", "animateur", "présentateur", "presenter", "host"}},
	{label: types.CivilSociety, keywords: []string{"société civile", "civil society", "civilsociety", "expert"}},
}

var negations = []string{"non-", "non ", "anti-", "anti "}

var decoration = strings.NewReplacer("*", "", ":", "", "(", "", ")", "")

// Normalize maps a raw affiliation label onto the taxonomy. Labels outside
// the taxonomy come back as Other together with the cleaned raw text; an
// empty label is Neutral.
func Normalize(raw string) (types.Affiliation, string) {
	cleaned := strings.TrimSpace(decoration.Replace(raw))
	if cleaned == "" {
		return types.Neutral, ""
	}
	lower := strings.ToLower(cleaned)
	for _, rule := range taxonomy {
		for _, kw := range rule.keywords {
			if rule.negatable && containsAffirmed(lower, kw) {
				return rule.label, ""
			}
			if !rule.negatable && strings.Contains(lower, kw) {
				return rule.label, ""
			}
		}
	}
	return types.Other, cleaned
}

// containsAffirmed reports whether kw occurs in s at least once without a
// negation right before it.
func containsAffirmed(s, kw string) bool {
	offset := 0
	for {
		i := strings.Index(s[offset:], kw)
		if i < 0 {
			return false
		}
		pos := offset + i
		negated := false
		for _, n := range negations {
			if strings.HasSuffix(s[:pos], n) {
				negated = true
				break
			}
		}
		if !negated {
			return true
		}
		offset = pos + len(kw)
	}
}
