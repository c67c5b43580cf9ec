package http

import (
	"net/http"

	"github.com/fwojciec/seoedit"
)

type suggestionsRequest struct {
	Content     string              `json:"content"`
	Type        string              `json:"type"`
	Competitors []*seoedit.SiteData `json:"competitors"`
	SearchTerms []string            `json:"searchTerms"`
}

type suggestionsResponse struct {
	Success    bool                `json:"success"`
	Suggestion *seoedit.Suggestion `json:"suggestion"`
}

// handleSuggestions suggests an edit for a piece of content. Unknown types
// are treated as content.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to generate suggestions"

	var req suggestionsRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	facet, err := seoedit.ParseFacet(req.Type)
	if err != nil {
		facet = seoedit.FacetContent
	}

	sg, err := s.suggest(r.Context(), facet, &seoedit.SuggestionRequest{
		Text:        req.Content,
		Competitors: req.Competitors,
		SearchTerms: req.SearchTerms,
	})
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	writeJSON(w, http.StatusOK, suggestionsResponse{Success: true, Suggestion: sg})
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Completion string `json:"completion"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to generate text"

	var req generateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	text, err := s.Completer.Complete(r.Context(), req.Prompt)
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{Completion: text})
}
