package analytics

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// sampleTokens bounds how much text is handed to the language detector.
const sampleTokens = 500

// languages is the candidate set. Restricting it keeps detector models small.
var languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
}

type Analytics struct {
	detector lingua.LanguageDetector
}

// New builds an Analytics. With detect false, DetectLanguage always returns "".
func New(detect bool) *Analytics {
	if !detect {
		return &Analytics{}
	}
	return &Analytics{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build(),
	}
}

// DetectLanguage guesses the language of a normalized token stream from its
// first tokens. It returns "" when detection is disabled or inconclusive.
func (a *Analytics) DetectLanguage(tokens []string) string {
	if a == nil || a.detector == nil || len(tokens) == 0 {
		return ""
	}
	if len(tokens) > sampleTokens {
		tokens = tokens[:sampleTokens]
	}

	language, ok := a.detector.DetectLanguageOf(strings.Join(tokens, " "))
	if !ok {
		return ""
	}
	return strings.ToLower(language.String())
}
