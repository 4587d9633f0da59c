package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// word is one capitalized word, optionally hyphen-joined ("Jean-Pierre").
	word = `\p{Lu}\p{Ll}+(?:-\p{Lu}\p{Ll}+)*`
	name = word + `(?:[ \t]+` + word + `)*`
	// marker introduces the affiliation label.
	marker = `(?i:camp|affiliation)`
	label  = `([^.\n]+)`
)

var (
	// **Name** ... : **Camp :** label
	reDecorated = regexp.MustCompile(`\*\*(` + name + `)\*\*[^:]*:\s*\*\*` + marker + `\s*:\*\*\s*` + label)
	// **Name** (role) : **Camp :** label
	reParenthetical = regexp.MustCompile(`\*\*(` + name + `)\*\*\s*\([^)]+\)\s*:\s*\*\*` + marker + `\s*:\*\*\s*` + label)
	// Name : Camp : label, at line start
	rePlain = regexp.MustCompile(`(?m)^(` + name + `)\s*:\s*` + marker + `\s*:\s*` + label)
	// - Name : Camp : label; the dash must open a list item, not join a name
	reDashed = regexp.MustCompile(`(?m)(?:^|\s)-[ \t]*(` + name + `)\s*:\s*` + marker + `\s*:\s*` + label)

	// **Name** : **Camp :** Neutre (journaliste ...)
	reNeutralRole = regexp.MustCompile(`\*\*(` + name + `)\*\*\s*:\s*\*\*` + marker + `\s*:\*\*\s*(?i:neutre|neutral)\s*\([^)]*(?i:journaliste|animateur|présentateur|journalist|host|presenter)[^)]*\)`)
)

// AffiliationRules are the labelled surface forms in priority order.
func AffiliationRules() []Rule {
	return []Rule{
		regexRule(reDecorated),
		regexRule(reParenthetical),
		regexRule(rePlain),
		regexRule(reDashed),
	}
}

// RoleRules builds the journalist/host rules for the given role words,
// e.g. "Journaliste" matches "Journaliste Marie Dupont".
func RoleRules(roles ...string) []Rule {
	rules := []Rule{roleRule(reNeutralRole)}
	if len(roles) == 0 {
		return rules
	}
	quoted := make([]string, len(roles))
	for i, r := range roles {
		quoted[i] = regexp.QuoteMeta(r)
	}
	re := regexp.MustCompile(`((?:` + strings.Join(quoted, "|") + `)[ \t]+` + name + `)`)
	return append(rules, roleRule(re))
}

// regexRule reads the name from group 1 and the raw label from group 2.
func regexRule(re *regexp.Regexp) Rule {
	return func(text string) []Candidate {
		var out []Candidate
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			c := Candidate{Name: strings.TrimSpace(m[1])}
			if len(m) > 2 {
				c.RawAffiliation = strings.TrimSpace(m[2])
			}
			out = append(out, c)
		}
		return out
	}
}

func roleRule(re *regexp.Regexp) Rule {
	return func(text string) []Candidate {
		var out []Candidate
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			out = append(out, Candidate{Name: strings.TrimSpace(m[1]), Role: true})
		}
		return out
	}
}

// Match runs every rule over text and merges the results, keeping the first
// candidate seen for each name.
func Match(text string, rules []Rule) []Candidate {
	seen := make(map[string]bool)
	var out []Candidate
	for _, rule := range rules {
		for _, c := range rule(text) {
			if !validName(c.Name) || seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			out = append(out, c)
		}
	}
	return out
}

func validName(n string) bool {
	return utf8.RuneCountInString(n) > 2 && !strings.Contains(n, "#")
}
