package analyzer

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// DetectableLanguages are the languages the site publishes in plus its
// nearest neighbours, which keeps the detector small and accurate.
var DetectableLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.Catalan,
	lingua.French,
	lingua.German,
	lingua.Portuguese,
	lingua.Italian,
}

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(DetectableLanguages...).
			Build()
	})
	return detector
}

// DetectLanguage returns the ISO 639-1 code (lowercase) of text, or false when
// the text is too short or the detector is not confident.
func DetectLanguage(text string) (string, bool) {
	if len(strings.Fields(text)) < LanguageMinWords {
		return "", false
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
