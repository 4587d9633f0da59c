package extract

import (
	"fmt"
	"regexp"

	"github.com/jd3600/sonar/internal/types"
)

// Profile holds everything that differs between the audio and video
// pipelines.
type Profile struct {
	Kind      types.MediaKind
	Rules     []Rule
	RoleRules []Rule
	// Pattern-matched speakers get a speech time in [SpeechMin, SpeechMax).
	SpeechMin int
	SpeechMax int

	Rosters       []Roster
	DefaultRoster []types.Speaker

	Themes        []string
	DefaultTopics []string

	Summary SummaryRules

	// DefaultDuration is used when the media duration cannot be probed.
	DefaultDuration int
}

var boilerplate = []string{"---", "Analyse"}

// AudioProfile is tuned for radio captures.
func AudioProfile() Profile {
	return Profile{
		Kind:      types.Audio,
		Rules:     AffiliationRules(),
		RoleRules: RoleRules("Journaliste", "Animateur", "Journalist", "Host"),
		SpeechMin: 100,
		SpeechMax: 500,
		Rosters: []Roster{
			{
				Keywords: []string{"interview", "entretien"},
				Speakers: []types.Speaker{
					{Name: "Journaliste Animateur", Affiliation: types.Neutral, SpeechTime: 400},
					{Name: "Invité Principal", Affiliation: types.CivilSociety, SpeechTime: 500},
				},
			},
			{
				Keywords: []string{"débat", "discussion", "debate"},
				Speakers: []types.Speaker{
					{Name: "Journaliste Modérateur", Affiliation: types.Neutral, SpeechTime: 300},
					{Name: "Invité A", Affiliation: types.Loyalist, SpeechTime: 350},
					{Name: "Invité B", Affiliation: types.Independentist, SpeechTime: 350},
				},
			},
			{
				Keywords: []string{"journal", "actualités", "news bulletin"},
				Speakers: []types.Speaker{
					{Name: "Journaliste Principal", Affiliation: types.Neutral, SpeechTime: 600},
					{Name: "Journaliste Terrain", Affiliation: types.Neutral, SpeechTime: 300},
				},
			},
		},
		DefaultRoster: []types.Speaker{
			{Name: "Animateur Radio", Affiliation: types.Neutral, SpeechTime: 500},
			{Name: "Invité", Affiliation: types.CivilSociety, SpeechTime: 400},
		},
		Themes: []string{
			"politique", "économie", "social", "débat", "interview", "actualités",
			"culture", "sport", "santé", "environnement", "éducation",
		},
		DefaultTopics: []string{"Radio", "Actualités"},
		Summary: SummaryRules{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)résumé[^:]*:\s*([^.\n]+\.)`),
				regexp.MustCompile(`(?i)synthèse[^:]*:\s*([^.\n]+\.)`),
				regexp.MustCompile(`(?i)en conclusion[^:]*:\s*([^.\n]+\.)`),
				regexp.MustCompile(`(?i)bilan[^:]*:\s*([^.\n]+\.)`),
			},
			MinLineLen: 30,
			MinRawLen:  50,
			Skip:       boilerplate,
			Default:    "Analyse audio du contenu radiophonique calédonien.",
		},
		DefaultDuration: 600,
	}
}

// VideoProfile is tuned for television news bulletins.
func VideoProfile() Profile {
	return Profile{
		Kind:      types.Video,
		Rules:     AffiliationRules(),
		RoleRules: RoleRules("Journaliste", "Présentateur", "Journalist", "Host"),
		SpeechMin: 60,
		SpeechMax: 360,
		Rosters: []Roster{
			{
				Keywords: []string{"journal", "jt"},
				Speakers: []types.Speaker{
					{Name: "Journaliste Principal", Affiliation: types.Neutral, SpeechTime: 400},
					{Name: "Journaliste Terrain", Affiliation: types.Neutral, SpeechTime: 200},
				},
			},
			{
				Keywords: []string{"débat", "interview"},
				Speakers: []types.Speaker{
					{Name: "Journaliste Animateur", Affiliation: types.Neutral, SpeechTime: 300},
					{Name: "Invité Principal", Affiliation: types.CivilSociety, SpeechTime: 350},
				},
			},
		},
		DefaultRoster: []types.Speaker{
			{Name: "Présentateur TV", Affiliation: types.Neutral, SpeechTime: 300},
			{Name: "Invité", Affiliation: types.Neutral, SpeechTime: 200},
		},
		Themes: []string{
			"politique", "économie", "institutionnel", "santé", "sport",
			"actualités", "social", "culture", "environnement", "sécurité",
		},
		DefaultTopics: []string{"Télévision", "Actualités"},
		Summary: SummaryRules{
			Patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\*\*Synthèse SONAR\s*:\*\*\s*([^*]+)`),
				regexp.MustCompile(`(?i)En résumé\s*:\s*([^.]+\.)`),
				regexp.MustCompile(`(?i)Résumé\s*:\s*([^.]+\.)`),
			},
			MinLineLen: 50,
			Skip:       boilerplate,
			Default:    "Analyse du journal télévisé de Nouvelle-Calédonie.",
		},
		DefaultDuration: 0,
	}
}

// ProfileFor returns the built-in profile for kind.
func ProfileFor(kind types.MediaKind) (Profile, error) {
	switch kind {
	case types.Audio:
		return AudioProfile(), nil
	case types.Video:
		return VideoProfile(), nil
	}
	return Profile{}, fmt.Errorf("no profile for %q: %w", kind, types.ErrUnknownKind)
}
