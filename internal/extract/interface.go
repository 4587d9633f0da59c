package extract

import "github.com/jd3600/sonar/internal/types"

// Extractor turns free-form analysis text into structured fields.
type Extractor interface {
	// Speakers never returns an empty list; fallback rosters cover texts
	// where no rule matches.
	Speakers(text string) []types.Speaker
	Topics(text string) []string
	Summary(text string) string
	Profile() Profile
}

// Candidate is a raw speaker match before normalization.
type Candidate struct {
	Name           string
	RawAffiliation string
	// Role candidates come from journalist/host rules and are always Neutral.
	Role bool
}

// Rule recovers candidates from the whole text. Rules are pure.
type Rule func(text string) []Candidate
