package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MediaKind identifies which pipeline produced a record.
type MediaKind string

const (
	Audio MediaKind = "audio"
	Video MediaKind = "video"
)

var ErrUnknownKind = errors.New("unknown media kind")

// ParseMediaKind accepts "audio" or "video" in any case.
func ParseMediaKind(s string) (MediaKind, error) {
	switch MediaKind(strings.ToLower(strings.TrimSpace(s))) {
	case Audio:
		return Audio, nil
	case Video:
		return Video, nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}

// Affiliation is the political or role camp assigned to a speaker.
type Affiliation string

const (
	Independentist Affiliation = "Independentist"
	Loyalist       Affiliation = "Loyalist"
	State          Affiliation = "State"
	Neutral        Affiliation = "Neutral"
	CivilSociety   Affiliation = "CivilSociety"
	// Other marks a label outside the taxonomy; the cleaned text is kept in
	// Speaker.AffiliationRaw.
	Other Affiliation = "Other"
)

// Affiliations lists the closed taxonomy in display order.
var Affiliations = []Affiliation{Independentist, Loyalist, State, Neutral, CivilSociety, Other}

type Speaker struct {
	Name           string      `json:"name"`
	Affiliation    Affiliation `json:"camp"`
	AffiliationRaw string      `json:"camp_raw,omitempty"`
	SpeechTime     int         `json:"speech_time"`
}

// Label returns the taxonomy label, or the raw text for Other.
func (s Speaker) Label() string {
	if s.Affiliation == Other && s.AffiliationRaw != "" {
		return s.AffiliationRaw
	}
	return string(s.Affiliation)
}

// Record is the structured artifact produced for one media file.
type Record struct {
	ID              int64     `json:"id"`
	MediaKind       MediaKind `json:"type"`
	Filename        string    `json:"filename"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds int       `json:"duration"`
	Speakers        []Speaker `json:"speakers"`
	Topics          []string  `json:"topics"`
	Summary         string    `json:"summary"`
	Complete        bool      `json:"analysis_complete"`
}

// JournalEntry is one raw analysis as returned by the model.
type JournalEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Analysis  string    `json:"analyse"`
}
