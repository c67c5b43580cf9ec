package http

import (
	"net/http"
	"strings"

	"github.com/fwojciec/seoedit"
	"github.com/go-chi/chi/v5"
)

type createWorkspaceRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleCreateWorkspace(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to create workspace"

	var req createWorkspaceRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err, failure)
		return
	}

	site, err := s.Analyzer.Analyze(r.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	ws, err := s.Workspaces.CreateWorkspace(r.Context(), site)
	if err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	writeJSON(w, http.StatusCreated, ws.Snapshot())
}

// workspace loads the workspace named in the URL, writing the error
// response itself when it cannot.
func (s *Server) workspace(w http.ResponseWriter, r *http.Request) (*seoedit.Workspace, bool) {
	ws, err := s.Workspaces.FindWorkspaceByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err, "Failed to load workspace")
		return nil, false
	}
	return ws, true
}

// facet parses the facet named in the URL, writing the error response
// itself when it cannot.
func (s *Server) facet(w http.ResponseWriter, r *http.Request) (seoedit.Facet, bool) {
	f, err := seoedit.ParseFacet(chi.URLParam(r, "facet"))
	if err != nil {
		s.writeError(w, r, err, "Invalid suggestion type")
		return "", false
	}
	return f, true
}

func (s *Server) handleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ws.Snapshot())
}

// handleRefreshWorkspace re-analyzes the workspace URL and starts over
// from the fresh snapshot.
func (s *Server) handleRefreshWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	site, err := s.Analyzer.Analyze(r.Context(), ws.Site().URL)
	if err != nil {
		s.writeError(w, r, err, "Failed to refresh workspace")
		return
	}
	ws.Replace(site)
	writeJSON(w, http.StatusOK, ws.Snapshot())
}

func (s *Server) handleDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	if err := s.Workspaces.DeleteWorkspace(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err, "Failed to delete workspace")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetCursor(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	var c seoedit.Cursor
	if err := decode(w, r, &c); err != nil {
		s.writeError(w, r, err, "Failed to set cursor")
		return
	}
	if err := ws.SetCursor(c); err != nil {
		s.writeError(w, r, err, "Failed to set cursor")
		return
	}
	writeJSON(w, http.StatusOK, ws.Document())
}

type proposeRequest struct {
	Competitors []*seoedit.SiteData `json:"competitors"`
	SearchTerms []string            `json:"searchTerms"`
}

type proposeResponse struct {
	Success    bool                `json:"success"`
	Suggestion *seoedit.Suggestion `json:"suggestion"`
}

// handleProposeSuggestion requests a suggestion for the workspace page and
// stores it in the facet's slot. A later request for the same facet
// replaces it.
func (s *Server) handleProposeSuggestion(w http.ResponseWriter, r *http.Request) {
	const failure = "Failed to generate suggestions"

	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	f, ok := s.facet(w, r)
	if !ok {
		return
	}

	var req proposeRequest
	if r.ContentLength != 0 {
		if err := decode(w, r, &req); err != nil {
			s.writeError(w, r, err, failure)
			return
		}
	}

	site := ws.Site()
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
	sg.Facet = f
	if err := ws.Propose(sg); err != nil {
		s.writeError(w, r, err, failure)
		return
	}
	writeJSON(w, http.StatusOK, proposeResponse{Success: true, Suggestion: sg})
}

func (s *Server) handleApplySuggestion(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	f, ok := s.facet(w, r)
	if !ok {
		return
	}

	sg, result, err := ws.Apply(f)
	if err != nil {
		s.writeError(w, r, err, "Failed to apply suggestion")
		return
	}
	writeJSON(w, http.StatusOK, appliedResponse{
		Success:           true,
		Message:           "Suggestion applied",
		AppliedSuggestion: sg,
		Result:            &result,
		Document:          ws.Document(),
	})
}

func (s *Server) handleDismissSuggestion(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.workspace(w, r)
	if !ok {
		return
	}
	f, ok := s.facet(w, r)
	if !ok {
		return
	}

	if err := ws.Dismiss(f); err != nil {
		s.writeError(w, r, err, "Failed to dismiss suggestion")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
