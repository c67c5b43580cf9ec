// Package goquery reads SEO signals from the page DOM using goquery.
package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/seoedit"
)

// Ensure SignalExtractor implements seoedit.SignalExtractor at compile time.
var _ seoedit.SignalExtractor = (*SignalExtractor)(nil)

// headingSelector matches the heading levels reported in SiteData.
const headingSelector = "h1, h2, h3"

// SignalExtractor extracts title, meta tags and headings from HTML.
type SignalExtractor struct{}

// NewSignalExtractor creates a new SignalExtractor.
func NewSignalExtractor() *SignalExtractor {
	return &SignalExtractor{}
}

// ExtractSignals parses raw HTML and returns its SEO signals.
func (e *SignalExtractor) ExtractSignals(html string) (*seoedit.PageSignals, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EEXTRACT, "failed to parse HTML: %v", err)
	}

	return &seoedit.PageSignals{
		Title:           title(doc),
		MetaDescription: metaDescription(doc),
		MetaKeywords:    metaKeywords(doc),
		Headings:        headings(doc),
		CanonicalURL:    attr(doc.Find(`link[rel="canonical"]`).First(), "href"),
		Lang:            attr(doc.Find("html").First(), "lang"),
	}, nil
}

// title returns the first <title>, falling back to og:title.
func title(doc *goquery.Document) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return metaContent(doc, `meta[property="og:title"]`)
}

// metaDescription returns meta[name=description], falling back to og:description.
func metaDescription(doc *goquery.Document) string {
	if d := metaContent(doc, `meta[name="description"]`); d != "" {
		return d
	}
	return metaContent(doc, `meta[property="og:description"]`)
}

// metaKeywords splits meta[name=keywords] on commas. Blank entries are dropped.
func metaKeywords(doc *goquery.Document) []string {
	keywords := []string{}
	raw := metaContent(doc, `meta[name="keywords"]`)
	if raw == "" {
		return keywords
	}
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// headings returns h1-h3 elements in document order. Position is the index
// among matched headings. Text is whitespace-collapsed so it matches the
// single-line headings of the Markdown content.
func headings(doc *goquery.Document) []seoedit.Heading {
	result := []seoedit.Heading{}
	doc.Find(headingSelector).Each(func(i int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err != nil {
			return
		}
		result = append(result, seoedit.Heading{
			Level:    level,
			Text:     normalizeSpace(s.Text()),
			Position: len(result),
		})
	})
	return result
}

func metaContent(doc *goquery.Document, selector string) string {
	return attr(doc.Find(selector).First(), "content")
}

func attr(sel *goquery.Selection, name string) string {
	v, _ := sel.Attr(name)
	return strings.TrimSpace(v)
}

// normalizeSpace collapses runs of whitespace into single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
