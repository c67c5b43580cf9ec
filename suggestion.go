package seoedit

import (
	"context"
	"strings"
)

// Facet is an independent axis along which a suggestion can be requested.
type Facet string

// Facet constants.
const (
	FacetTitle       Facet = "title"
	FacetDescription Facet = "description"
	FacetHeading     Facet = "heading"
	FacetContent     Facet = "content"
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetTitle, FacetDescription, FacetHeading, FacetContent}

// ParseFacet converts user input into a Facet. "meta" is accepted as an
// alias of description.
func ParseFacet(s string) (Facet, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return FacetTitle, nil
	case "description", "meta":
		return FacetDescription, nil
	case "heading", "headings":
		return FacetHeading, nil
	case "content":
		return FacetContent, nil
	}
	return "", Errorf(EINVALID, "unknown suggestion type %q", s)
}

// ScoreDelta is the model's estimate of a facet score before and after the
// suggestion, on a 0-100 scale.
type ScoreDelta struct {
	Current   float64 `json:"current"`
	Suggested float64 `json:"suggested"`
}

// Suggestion is a model-proposed edit for one facet. Suggestions are
// ephemeral: applied or dismissed, never stored.
type Suggestion struct {
	Facet     Facet  `json:"facet"`
	Original  string `json:"original"`
	Suggested string `json:"suggestion"`
	Reasoning string `json:"reasoning"`

	// Title and description suggestions.
	Improvement string      `json:"improvement,omitempty"`
	PowerWords  []string    `json:"powerWords,omitempty"`
	Scores      *ScoreDelta `json:"scores,omitempty"`

	// Heading suggestions.
	Priority int `json:"priority,omitempty"`
	Position int `json:"position,omitempty"`
	Level    int `json:"level,omitempty"`
}

// DefaultSuggestion is the analysis returned in place of a failed model call:
// the original echoed back with nothing suggested. Callers cannot tell it
// apart from a genuine empty result.
func DefaultSuggestion(facet Facet, original string) *Suggestion {
	return &Suggestion{
		Facet:    facet,
		Original: original,
	}
}

// SuggestionRequest is the input of a Requester.
type SuggestionRequest struct {
	// Text is the slice of the page the suggestion is about: the title,
	// the meta description, the heading outline or a content excerpt.
	Text string

	// Site is the full snapshot, when available.
	Site *SiteData

	// Competitors are snapshots of competing pages.
	Competitors []*SiteData

	// SearchTerms are the queries the page should rank for.
	SearchTerms []string
}

// Requester produces a suggestion for one facet.
type Requester interface {
	Facet() Facet
	Suggest(ctx context.Context, req *SuggestionRequest) (*Suggestion, error)
}

// Completer continues a piece of text, as an editor autocomplete.
type Completer interface {
	// Complete returns a short continuation of prompt.
	Complete(ctx context.Context, prompt string) (string, error)
}
