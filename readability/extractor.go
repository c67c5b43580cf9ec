// Package readability isolates the main article of a page using
// go-readability, a port of Mozilla's Readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/seoedit"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements seoedit.Extractor at compile time.
var _ seoedit.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
// The parser never evaluates stylesheets or scripts, so malformed CSS on the
// page produces no diagnostics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
// ContentHTML is empty when no article could be identified.
func (e *Extractor) Extract(rawHTML, pageURL string) (*seoedit.ExtractResult, error) {
	if rawHTML == "" {
		return nil, seoedit.Errorf(seoedit.EINVALID, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, seoedit.Errorf(seoedit.EINVALID, "invalid page URL: %v", err)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EEXTRACT, "readability: %v", err)
	}

	return &seoedit.ExtractResult{
		Title:       article.Title,
		ContentHTML: strings.TrimSpace(article.Content),
	}, nil
}
