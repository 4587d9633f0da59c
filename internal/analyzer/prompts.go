package analyzer

import "github.com/jd3600/sonar/internal/types"

const audioPrompt = `Analyse le pluralisme politique de cet extrait radio calédonien.
Liste les thèmes et les personnalités.
Pour chaque intervenant, écris une ligne de la forme "**Nom** (fonction) : **Camp :** étiquette".
Termine par une ligne "Résumé : ..." en une phrase.
RÉPONDS OBLIGATOIREMENT EN FRANÇAIS.`

const videoPrompt = `Tu es l'expert SONAR. Analyse ce JT de Nouvelle-Calédonie :
identifie les politiciens présents et leur camp politique, sous la forme "**Nom** (fonction) : **Camp :** étiquette",
puis résume les temps forts après "**Synthèse SONAR :**".
RÉPONDS OBLIGATOIREMENT EN FRANÇAIS.`

// DefaultPrompt returns the built-in prompt for a media kind.
func DefaultPrompt(kind types.MediaKind) string {
	if kind == types.Video {
		return videoPrompt
	}
	return audioPrompt
}
