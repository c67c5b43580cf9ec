package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/seoedit"
)

type siteAnalyzeRequest struct {
	URL string `json:"url"`
}

type siteAnalyzeResponse struct {
	Success bool              `json:"success"`
	Data    *seoedit.SiteData `json:"data"`
}

func (s *Server) handleSiteAnalyze(w http.ResponseWriter, r *http.Request) {
	var req siteAnalyzeRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, "Failed to analyze site")
		return
	}
	req.URL = strings.TrimSpace(req.URL)

	site, err := s.Analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		s.writeError(w, r, err, "Failed to analyze site")
		return
	}
	writeJSON(w, http.StatusOK, siteAnalyzeResponse{Success: true, Data: site})
}

// analysisRequest is shared by the meta and heading analysis endpoints.
// Whatever page data the client already holds is used before fetching.
type analysisRequest struct {
	URL             string              `json:"url"`
	Title           *string             `json:"title"`
	MetaDescription *string             `json:"metaDescription"`
	Headings        []seoedit.Heading   `json:"headings"`
	WebsiteData     *seoedit.SiteData   `json:"websiteData"`
	Competitors     []*seoedit.SiteData `json:"competitors"`
	SearchTerms     []string            `json:"searchTerms"`

	// Suggestion, when present, is applied instead of analyzed.
	Suggestion  *seoedit.Suggestion `json:"suggestion"`
	WorkspaceID string              `json:"workspaceId"`
}

// appliedResponse acknowledges an accepted suggestion.
type appliedResponse struct {
	Success           bool                 `json:"success"`
	Message           string               `json:"message"`
	AppliedSuggestion *seoedit.Suggestion  `json:"appliedSuggestion"`
	Result            *seoedit.ApplyResult `json:"result,omitempty"`
	Document          *seoedit.Document    `json:"document,omitempty"`
}

type metaAnalysis struct {
	URL         string                                `json:"url"`
	Title       string                                `json:"title"`
	Description string                                `json:"description"`
	Keywords    []string                              `json:"keywords"`
	Suggestions map[seoedit.Facet]*seoedit.Suggestion `json:"suggestions"`
	Timestamp   time.Time                             `json:"timestamp"`
}

type headingAnalysis struct {
	URL        string              `json:"url"`
	Headings   []seoedit.Heading   `json:"headings"`
	Suggestion *seoedit.Suggestion `json:"suggestion"`
	Timestamp  time.Time           `json:"timestamp"`
}

type analysisResponse struct {
	Success         bool             `json:"success"`
	MetaAnalysis    *metaAnalysis    `json:"metaAnalysis"`
	HeadingAnalysis *headingAnalysis `json:"headingAnalysis"`
}

func (s *Server) handleMetaAnalysis(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to analyze meta tags"

	var req analysisRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	if req.Suggestion != nil {
		s.applyRequested(w, r, req.WorkspaceID, req.Suggestion, failure)
		return
	}

	site, err := s.resolveSite(r.Context(), &req, req.Title != nil || req.MetaDescription != nil)
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	suggestions := make(map[seoedit.Facet]*seoedit.Suggestion, 2)
	for _, f := range []seoedit.Facet{seoedit.FacetTitle, seoedit.FacetDescription} {
		sg, err := s.suggest(r.Context(), f, &seoedit.SuggestionRequest{
			Text:        site.FacetText(f),
			Site:        site,
			Competitors: req.Competitors,
			SearchTerms: req.SearchTerms,
		})
		if err != nil {
			s.writeError(w, r, err, failure)
			return
		}
		suggestions[f] = sg
	}

	keywords := site.MetaKeywords
	if keywords == nil {
		keywords = []string{}
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Success: true,
		MetaAnalysis: &metaAnalysis{
			URL:         site.URL,
			Title:       site.Title,
			Description: site.MetaDescription,
			Keywords:    keywords,
			Suggestions: suggestions,
			Timestamp:   s.Now(),
		},
	})
}

func (s *Server) handleHeadingAnalysis(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to analyze headings"

	var req analysisRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	if req.Suggestion != nil {
		s.applyRequested(w, r, req.WorkspaceID, req.Suggestion, failure)
		return
	}

	site, err := s.resolveSite(r.Context(), &req, req.Headings != nil)
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	sg, err := s.suggest(r.Context(), seoedit.FacetHeading, &seoedit.SuggestionRequest{
		Text:        site.FacetText(seoedit.FacetHeading),
		Site:        site,
		Competitors: req.Competitors,
		SearchTerms: req.SearchTerms,
	})
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	headings := site.Headings
	if headings == nil {
		headings = []seoedit.Heading{}
	}
	writeJSON(w, http.StatusOK, analysisResponse{
		Success: true,
		HeadingAnalysis: &headingAnalysis{
			URL:        site.URL,
			Headings:   headings,
			Suggestion: sg,
			Timestamp:  s.Now(),
		},
	})
}

// resolveSite picks the page data for an analysis request: the client's
// websiteData, else the fields sent inline when provided is true, else a
// fresh analysis of req.URL.
func (s *Server) resolveSite(ctx context.Context, req *analysisRequest, provided bool) (*seoedit.SiteData, error) {
	if req.WebsiteData != nil {
		site := *req.WebsiteData
		if site.URL == "" {
			site.URL = req.URL
		}
		return &site, nil
	}
	if provided {
		site := &seoedit.SiteData{URL: req.URL, Headings: req.Headings}
		if req.Title != nil {
			site.Title = *req.Title
		}
		if req.MetaDescription != nil {
			site.MetaDescription = *req.MetaDescription
		}
		return site, nil
	}
	return s.Analyzer.Analyze(ctx, strings.TrimSpace(req.URL))
}

func (s *Server) suggest(ctx context.Context, f seoedit.Facet, req *seoedit.SuggestionRequest) (*seoedit.Suggestion, error) {
	requester, ok := s.Requesters[f]
	if !ok {
		return nil, seoedit.Errorf(seoedit.EINTERNAL, "no requester for %s", f)
	}
	return requester.Suggest(ctx, req)
}

// applyRequested acknowledges an accepted suggestion and, when a workspace
// is named, reconciles it into that workspace's document.
func (s *Server) applyRequested(w http.ResponseWriter, r *http.Request, workspaceID string, sg *seoedit.Suggestion, failure string) {
	resp := appliedResponse{
		Success:           true,
		Message:           "Suggestion applied",
		AppliedSuggestion: sg,
	}

	if workspaceID != "" {
		if _, err := seoedit.ParseFacet(string(sg.Facet)); err != nil {
			s.writeError(w, r, err, failure)
			return
		}
		ws, err := s.Workspaces.FindWorkspaceByID(r.Context(), workspaceID)
		if err != nil {
			s.writeError(w, r, err, failure)
			return
		}
		result := ws.ApplySuggestion(sg)
		resp.Result = &result
		resp.Document = ws.Document()
	}

	writeJSON(w, http.StatusOK, resp)
}

type customAnalysisRequest struct {
	URL        string              `json:"url"`
	Parameters map[string]any      `json:"parameters"`
	Suggestion *seoedit.Suggestion `json:"suggestion"`
}

type customAnalysis struct {
	Title           string    `json:"title"`
	Results         string    `json:"results"`
	Insights        []string  `json:"insights"`
	Recommendations []string  `json:"recommendations"`
	Timestamp       time.Time `json:"timestamp"`
}

type customAnalysisResponse struct {
	Success        bool            `json:"success"`
	URL            string          `json:"url"`
	Parameters     map[string]any  `json:"parameters"`
	CustomAnalysis *customAnalysis `json:"customAnalysis"`
}

// handleCustomAnalysis is a placeholder facet: it echoes its input with
// static insight text.
func (s *Server) handleCustomAnalysis(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to perform custom analysis"

	var req customAnalysisRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	if req.Suggestion != nil {
		s.applyRequested(w, r, "", req.Suggestion, failure)
		return
	}

	writeJSON(w, http.StatusOK, customAnalysisResponse{
		Success:    true,
		URL:        req.URL,
		Parameters: req.Parameters,
		CustomAnalysis: &customAnalysis{
			Title:   "Custom SEO Analysis",
			Results: "This is a placeholder for custom analysis results based on your parameters",
			Insights: []string{
				"Custom insight 1 based on parameters",
				"Custom insight 2 based on parameters",
			},
			Recommendations: []string{
				"Custom recommendation 1",
				"Custom recommendation 2",
			},
			Timestamp: s.Now(),
		},
	})
}
