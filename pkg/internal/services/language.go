package services

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

var getLanguageDetector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromAllSpokenLanguages().
		WithLowAccuracyMode().
		Build()
})

// DetectLanguage guesses the language of a post body and returns its
// lowercase ISO 639-1 code, or an empty string when the detector is unsure.
func DetectLanguage(content string) string {
	if language, ok := getLanguageDetector().DetectLanguageOf(content); ok {
		return strings.ToLower(language.IsoCode639_1().String())
	}
	return ""
}
