package mock

import "github.com/fwojciec/seoedit"

var _ seoedit.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of seoedit.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*seoedit.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*seoedit.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

var _ seoedit.SignalExtractor = (*SignalExtractor)(nil)

// SignalExtractor is a mock implementation of seoedit.SignalExtractor.
type SignalExtractor struct {
	ExtractSignalsFn func(html string) (*seoedit.PageSignals, error)
}

func (e *SignalExtractor) ExtractSignals(html string) (*seoedit.PageSignals, error) {
	return e.ExtractSignalsFn(html)
}

var _ seoedit.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of seoedit.LanguageDetector.
type LanguageDetector struct {
	DetectLanguageFn func(text string) string
}

func (d *LanguageDetector) DetectLanguage(text string) string {
	return d.DetectLanguageFn(text)
}
