package extract

import (
	"strings"

	"github.com/jd3600/sonar/internal/types"
)

// Roster is a generic speaker list selected by keyword presence.
type Roster struct {
	Keywords []string
	Speakers []types.Speaker
}

// Fallback picks the first roster whose keywords appear in text, or
// def when none do. The returned slice is a copy.
func Fallback(text string, rosters []Roster, def []types.Speaker) []types.Speaker {
	lower := strings.ToLower(text)
	for _, r := range rosters {
		for _, kw := range r.Keywords {
			if strings.Contains(lower, kw) {
				return clone(r.Speakers)
			}
		}
	}
	return clone(def)
}

func clone(s []types.Speaker) []types.Speaker {
	out := make([]types.Speaker, len(s))
	copy(out, s)
	return out
}
