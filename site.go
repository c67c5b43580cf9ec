package seoedit

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Heading is an h1-h3 element found on a page.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`

	// Position is the zero-based index among matched heading elements,
	// not the DOM index.
	Position int `json:"position"`
}

// SiteData is an immutable snapshot of one scraped page.
// Re-analysis replaces the snapshot wholesale.
type SiteData struct {
	URL              string    `json:"url"`
	Title            string    `json:"title"`
	MetaDescription  string    `json:"metaDescription"`
	MetaKeywords     []string  `json:"metaKeywords"`
	Content          string    `json:"content"`
	Headings         []Heading `json:"headings"`
	WordCount        int       `json:"wordCount"`
	ReadabilityScore float64   `json:"readabilityScore"`
	ReadabilityLevel string    `json:"readabilityLevel"`

	Language     string    `json:"language,omitempty"`
	CanonicalURL string    `json:"canonicalUrl,omitempty"`
	ContentHash  string    `json:"contentHash,omitempty"`
	FetchedAt    time.Time `json:"fetchedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *SiteData) Validate() error {
	if s.URL == "" {
		return Errorf(EINVALID, "site URL required")
	}
	for i, h := range s.Headings {
		if h.Level < 1 || h.Level > 6 {
			return Errorf(EINVALID, "heading %d has invalid level %d", i, h.Level)
		}
	}
	return nil
}

// SiteAnalyzer produces a scored SiteData snapshot for a URL.
type SiteAnalyzer interface {
	// Analyze fetches and extracts the page at url.
	// Returns EINVALID for malformed URLs before any network call,
	// EFETCH for fetch failures and EEXTRACT for parse failures.
	Analyze(ctx context.Context, url string) (*SiteData, error)
}

// MaxFacetContentRunes caps the content excerpt returned by FacetText.
const MaxFacetContentRunes = 6000

// FacetText returns the slice of the page a facet is about: the title, the
// meta description, the heading outline or a content excerpt.
func (s *SiteData) FacetText(f Facet) string {
	if s == nil {
		return ""
	}
	switch f {
	case FacetTitle:
		return s.Title
	case FacetDescription:
		return s.MetaDescription
	case FacetHeading:
		return Outline(s.Headings)
	default:
		if utf8.RuneCountInString(s.Content) <= MaxFacetContentRunes {
			return s.Content
		}
		return string([]rune(s.Content)[:MaxFacetContentRunes])
	}
}

// Outline renders headings one per line as "H<level>: <text>".
func Outline(headings []Heading) string {
	var sb strings.Builder
	for i, h := range headings {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "H%d: %s", h.Level, h.Text)
	}
	return sb.String()
}

// SnapshotWriter persists analyzed pages.
type SnapshotWriter interface {
	WriteSnapshot(ctx context.Context, site *SiteData) error
}
