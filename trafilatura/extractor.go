// Package trafilatura provides the fallback content extractor, used when
// readability cannot find an article on a page.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/seoedit"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements seoedit.Extractor at compile time.
var _ seoedit.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	// IncludeTables keeps tables in the extracted content.
	IncludeTables bool
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{IncludeTables: true}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML, pageURL string) (*seoedit.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, seoedit.Errorf(seoedit.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		ExcludeTables:  !e.IncludeTables,
	}
	if u, err := url.Parse(pageURL); err == nil && u.Host != "" {
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EEXTRACT, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, seoedit.Errorf(seoedit.EEXTRACT, "render content: %v", err)
		}
	}

	return &seoedit.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: strings.TrimSpace(contentHTML),
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
