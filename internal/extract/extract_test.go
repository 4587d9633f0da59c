package extract

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jd3600/sonar/internal/types"
)

func newTestExtractor(t *testing.T, kind types.MediaKind) Extractor {
	t.Helper()
	e, err := New(kind, WithRand(rand.New(rand.NewPCG(7, 11))))
	if err != nil {
		t.Fatalf("New(%s) error = %v", kind, err)
	}
	return e
}

func TestSpeakersPatterns(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []types.Speaker
	}{
		{
			name: "decorated name with parenthetical",
			text: "**Paul Néaoutyine** (Président) : **Camp :** Indépendantiste.",
			want: []types.Speaker{{Name: "Paul Néaoutyine", Affiliation: types.Independentist}},
		},
		{
			name: "plain line",
			text: "Sonia Backès : Camp : Loyaliste\n",
			want: []types.Speaker{{Name: "Sonia Backès", Affiliation: types.Loyalist}},
		},
		{
			name: "dashed list item",
			text: "Intervenants :\n- Louis Le Franc : Camp : État\n",
			want: []types.Speaker{{Name: "Louis Le Franc", Affiliation: types.State}},
		},
		{
			name: "affiliation marker",
			text: "**Marie Dupont** : **Affiliation:** société civile.",
			want: []types.Speaker{{Name: "Marie Dupont", Affiliation: types.CivilSociety}},
		},
		{
			name: "first occurrence wins",
			text: "**Louis Mapou** : **Camp :** Indépendantiste.\n- Louis Mapou : Camp : Loyaliste\n",
			want: []types.Speaker{{Name: "Louis Mapou", Affiliation: types.Independentist}},
		},
		{
			name: "label outside the taxonomy",
			text: "Philippe Dunoyer : Camp : Centre droit\n",
			want: []types.Speaker{{Name: "Philippe Dunoyer", Affiliation: types.Other, AffiliationRaw: "Centre droit"}},
		},
		{
			name: "role prefixed name",
			text: "Le Journaliste Marie Dupont présente la matinale.",
			want: []types.Speaker{{Name: "Journaliste Marie Dupont", Affiliation: types.Neutral}},
		},
		{
			name: "hyphenated first name",
			text: "- Jean-Pierre Djaïwé : Camp : FLNKS\n",
			want: []types.Speaker{{Name: "Jean-Pierre Djaïwé", Affiliation: types.Independentist}},
		},
		{
			name: "hyphenated first name on a plain line",
			text: "Jean-Pierre Djaïwé : Camp : Indépendantiste\nMarie-Claude Tjibaou : Camp : Société civile\n",
			want: []types.Speaker{
				{Name: "Jean-Pierre Djaïwé", Affiliation: types.Independentist},
				{Name: "Marie-Claude Tjibaou", Affiliation: types.CivilSociety},
			},
		},
		{
			name: "inline dashed item",
			text: "Intervenants : - Louis Le Franc : Camp : État\n",
			want: []types.Speaker{{Name: "Louis Le Franc", Affiliation: types.State}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t, types.Audio)
			got := e.Speakers(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Speakers() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i].Name != tt.want[i].Name || got[i].Affiliation != tt.want[i].Affiliation || got[i].AffiliationRaw != tt.want[i].AffiliationRaw {
					t.Errorf("Speakers()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
				if got[i].SpeechTime < 100 || got[i].SpeechTime >= 500 {
					t.Errorf("Speakers()[%d].SpeechTime = %d, want in [100,500)", i, got[i].SpeechTime)
				}
			}
		})
	}
}

func TestSpeakersRejectsShortAndMarkedNames(t *testing.T) {
	if got := Match("Al : Camp : Loyaliste\n", AffiliationRules()); len(got) != 0 {
		t.Errorf("Match() = %+v, want no candidates for a two-letter name", got)
	}
	if validName("Paul #2") {
		t.Error("validName() accepted a name containing #")
	}
}

func TestSpeakersFallback(t *testing.T) {
	tests := []struct {
		name string
		kind types.MediaKind
		text string
		want []types.Speaker
	}{
		{
			name: "audio interview",
			kind: types.Audio,
			text: "Cette interview porte sur la vie locale.",
			want: []types.Speaker{
				{Name: "Journaliste Animateur", Affiliation: types.Neutral, SpeechTime: 400},
				{Name: "Invité Principal", Affiliation: types.CivilSociety, SpeechTime: 500},
			},
		},
		{
			name: "audio debate",
			kind: types.Audio,
			text: "un débat animé sur le référendum",
			want: []types.Speaker{
				{Name: "Journaliste Modérateur", Affiliation: types.Neutral, SpeechTime: 300},
				{Name: "Invité A", Affiliation: types.Loyalist, SpeechTime: 350},
				{Name: "Invité B", Affiliation: types.Independentist, SpeechTime: 350},
			},
		},
		{
			name: "audio default",
			kind: types.Audio,
			text: "",
			want: []types.Speaker{
				{Name: "Animateur Radio", Affiliation: types.Neutral, SpeechTime: 500},
				{Name: "Invité", Affiliation: types.CivilSociety, SpeechTime: 400},
			},
		},
		{
			name: "video bulletin",
			kind: types.Video,
			text: "le journal de 19h",
			want: []types.Speaker{
				{Name: "Journaliste Principal", Affiliation: types.Neutral, SpeechTime: 400},
				{Name: "Journaliste Terrain", Affiliation: types.Neutral, SpeechTime: 200},
			},
		},
		{
			name: "video interview",
			kind: types.Video,
			text: "une interview du maire",
			want: []types.Speaker{
				{Name: "Journaliste Animateur", Affiliation: types.Neutral, SpeechTime: 300},
				{Name: "Invité Principal", Affiliation: types.CivilSociety, SpeechTime: 350},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t, tt.kind)
			got := e.Speakers(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Speakers() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFallbackReturnsCopy(t *testing.T) {
	p := AudioProfile()
	got := Fallback("", p.Rosters, p.DefaultRoster)
	got[0].Name = "changed"
	if p.DefaultRoster[0].Name == "changed" {
		t.Error("Fallback() returned the profile's backing array")
	}
}

func TestSpeakersDeterministicWithSeed(t *testing.T) {
	text := "**Paul Néaoutyine** (Président) : **Camp :** Indépendantiste.\nSonia Backès : Camp : Loyaliste\n"
	a, _ := New(types.Video, WithRand(rand.New(rand.NewPCG(1, 2))))
	b, _ := New(types.Video, WithRand(rand.New(rand.NewPCG(1, 2))))
	if got, want := a.Speakers(text), b.Speakers(text); !reflect.DeepEqual(got, want) {
		t.Errorf("Speakers() = %+v, want %+v", got, want)
	}
}

func TestSpeakersNeverEmpty(t *testing.T) {
	inputs := []string{"", " ", "\n\n", "random words", "**", "Camp : Camp :", "## Analyse\n---"}
	for _, kind := range []types.MediaKind{types.Audio, types.Video} {
		e := newTestExtractor(t, kind)
		for _, in := range inputs {
			if got := e.Speakers(in); len(got) == 0 {
				t.Errorf("%s Speakers(%q) returned no speakers", kind, in)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw     string
		want    types.Affiliation
		wantRaw string
	}{
		{"Indépendantiste", types.Independentist, ""},
		{"**Indépendantiste (FLNKS)**", types.Independentist, ""},
		{"Non-indépendantiste", types.Loyalist, ""},
		{"anti-indépendantiste", types.Loyalist, ""},
		{"Loyaliste", types.Loyalist, ""},
		{"Gouvernement", types.State, ""},
		{"État", types.State, ""},
		{"Neutre (journaliste)", types.Neutral, ""},
		{"Société Civile", types.CivilSociety, ""},
		{"expert économique", types.CivilSociety, ""},
		{"", types.Neutral, ""},
		{"**:**", types.Neutral, ""},
		{"Centre (droit)", types.Other, "Centre droit"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, raw := Normalize(tt.raw)
			if got != tt.want || raw != tt.wantRaw {
				t.Errorf("Normalize(%q) = %v, %q, want %v, %q", tt.raw, got, raw, tt.want, tt.wantRaw)
			}
		})
	}
}

func TestTopics(t *testing.T) {
	tests := []struct {
		name string
		kind types.MediaKind
		text string
		want []string
	}{
		{"politics and health", types.Audio, "La politique de santé publique.", []string{"Politique", "Santé"}},
		{"case insensitive", types.Audio, "ÉCONOMIE et Culture", []string{"Économie", "Culture"}},
		{"audio default", types.Audio, "rien", []string{"Radio", "Actualités"}},
		{"video default", types.Video, "", []string{"Télévision", "Actualités"}},
		{"video vocabulary", types.Video, "sécurité routière et débat institutionnel", []string{"Institutionnel", "Sécurité"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t, tt.kind)
			got := e.Topics(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Topics() = %v, want %v", got, tt.want)
			}
			if again := e.Topics(tt.text); !reflect.DeepEqual(again, got) {
				t.Errorf("Topics() second call = %v, want %v", again, got)
			}
		})
	}
}

func TestTopicsDeduplicates(t *testing.T) {
	got := Topics("Sport et sport", []string{"sport", "Sport"}, []string{"x"})
	if !reflect.DeepEqual(got, []string{"Sport"}) {
		t.Errorf("Topics() = %v, want [Sport]", got)
	}
}

func TestSummary(t *testing.T) {
	long := strings.Repeat("a", 250)
	line := "Le gouvernement a présenté son budget pour l'année prochaine devant le Congrès."

	tests := []struct {
		name string
		kind types.MediaKind
		text string
		want string
	}{
		{"audio label", types.Audio, "Intro\nRésumé : Le débat a porté sur l'économie.\n", "Le débat a porté sur l'économie."},
		{"video label", types.Video, "Résumé : Le débat a porté sur l'économie.", "Le débat a porté sur l'économie."},
		{"audio conclusion", types.Audio, "En conclusion : tout va bien.", "tout va bien."},
		{"video synthesis", types.Video, "**Synthèse SONAR :** Un JT centré sur la vie chère.\n**Suite**", "Un JT centré sur la vie chère."},
		{"first meaningful line", types.Audio, "## Analyse du pluralisme politique de l'extrait radio\n---\n" + line, line + "..."},
		{"long line truncated", types.Video, long, strings.Repeat("a", 200) + "..."},
		{"audio default", types.Audio, "court", "Analyse audio du contenu radiophonique calédonien."},
		{"video default", types.Video, "", "Analyse du journal télévisé de Nouvelle-Calédonie."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t, tt.kind)
			if got := e.Summary(tt.text); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummaryBounded(t *testing.T) {
	inputs := []string{
		"Résumé : " + strings.Repeat("mot ", 100) + ".",
		"**Synthèse SONAR :** " + strings.Repeat("b", 400),
		strings.Repeat("c", 1000),
		"",
	}
	for _, kind := range []types.MediaKind{types.Audio, types.Video} {
		e := newTestExtractor(t, kind)
		for _, in := range inputs {
			got := e.Summary(in)
			if got == "" {
				t.Errorf("%s Summary() returned an empty string", kind)
			}
			if got != e.Profile().Summary.Default && utf8.RuneCountInString(got) > 203 {
				t.Errorf("%s Summary() length = %d, want <= 203", kind, utf8.RuneCountInString(got))
			}
		}
	}
}

func TestProfileFor(t *testing.T) {
	if _, err := ProfileFor(types.MediaKind("podcast")); !errors.Is(err, types.ErrUnknownKind) {
		t.Errorf("ProfileFor() error = %v, want %v", err, types.ErrUnknownKind)
	}
	p, err := ProfileFor(types.Audio)
	if err != nil {
		t.Fatalf("ProfileFor() error = %v", err)
	}
	if p.DefaultDuration != 600 {
		t.Errorf("DefaultDuration = %d, want 600", p.DefaultDuration)
	}
}

func TestFixedSpeechTime(t *testing.T) {
	p := AudioProfile()
	p.SpeechMin, p.SpeechMax = 42, 42
	e := NewWithProfile(p)
	got := e.Speakers("Sonia Backès : Camp : Loyaliste\n")
	if len(got) != 1 || got[0].SpeechTime != 42 {
		t.Errorf("Speakers() = %+v, want one speaker with speech time 42", got)
	}
}
