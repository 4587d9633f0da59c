package extract

import (
	"math/rand/v2"
	"sync"

	"github.com/jd3600/sonar/internal/types"
)

func (e *implExtractor) Profile() Profile {
	return e.profile
}

// Speakers normalizes pattern matches; when nothing matches, the profile's
// keyword-selected roster is returned instead.
func (e *implExtractor) Speakers(text string) []types.Speaker {
	rules := make([]Rule, 0, len(e.profile.Rules)+len(e.profile.RoleRules))
	rules = append(rules, e.profile.Rules...)
	rules = append(rules, e.profile.RoleRules...)

	candidates := Match(text, rules)
	if len(candidates) == 0 {
		return Fallback(text, e.profile.Rosters, e.profile.DefaultRoster)
	}

	speakers := make([]types.Speaker, 0, len(candidates))
	for _, c := range candidates {
		s := types.Speaker{Name: c.Name, SpeechTime: e.speechTime()}
		if c.Role {
			s.Affiliation = types.Neutral
		} else {
			s.Affiliation, s.AffiliationRaw = Normalize(c.RawAffiliation)
		}
		speakers = append(speakers, s)
	}
	return speakers
}

func (e *implExtractor) Topics(text string) []string {
	return Topics(text, e.profile.Themes, e.profile.DefaultTopics)
}

func (e *implExtractor) Summary(text string) string {
	return Summary(text, e.profile.Summary)
}

func (e *implExtractor) speechTime() int {
	lo, hi := e.profile.SpeechMin, e.profile.SpeechMax
	if hi <= lo {
		return lo
	}
	return lo + e.rnd.intN(hi-lo)
}

// lockedRand makes a *rand.Rand safe for concurrent extractions.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) intN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}
