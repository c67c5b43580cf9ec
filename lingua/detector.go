// Package lingua detects the natural language of page content using
// lingua-go.
package lingua

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/seoedit"
	"github.com/pemistahl/lingua-go"
)

// Ensure Detector implements seoedit.LanguageDetector at compile time.
var _ seoedit.LanguageDetector = (*Detector)(nil)

// DefaultLanguages is the candidate set used by NewDetector.
var DefaultLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Polish,
}

// maxSample caps the number of bytes handed to the detector.
const maxSample = 4096

// Detector wraps a lingua-go detector restricted to a fixed language set.
type Detector struct {
	detector lingua.LanguageDetector
}

// NewDetector creates a Detector over languages, or DefaultLanguages when
// none are given.
func NewDetector(languages ...lingua.Language) *Detector {
	if len(languages) < 2 {
		languages = DefaultLanguages
	}
	d := lingua.NewLanguageDetectorBuilder().
		FromLanguages(languages...).
		WithMinimumRelativeDistance(0.1).
		Build()
	return &Detector{detector: d}
}

// DetectLanguage returns a lowercase ISO 639-1 code, or "" when the text is
// empty or the detector is unsure.
func (d *Detector) DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) > maxSample {
		text = text[:maxSample]
		for !utf8.ValidString(text) {
			text = text[:len(text)-1]
		}
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
