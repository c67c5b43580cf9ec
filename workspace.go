package seoedit

import (
	"context"
	"sync"
	"time"
)

// Workspace is the application context of one editing session: the site
// snapshot, the document built from it and one pending suggestion slot per
// facet. All mutations go through its methods, which serialize access.
type Workspace struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	site    *SiteData
	doc     *Document
	pending map[Facet]*Suggestion
}

// NewWorkspace returns a workspace whose document is built from site.
func NewWorkspace(id string, site *SiteData) *Workspace {
	return &Workspace{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		site:      site,
		doc:       BuildDocument(site),
		pending:   make(map[Facet]*Suggestion),
	}
}

// WorkspaceSnapshot is a point-in-time copy of a workspace.
type WorkspaceSnapshot struct {
	ID        string                `json:"id"`
	Site      *SiteData             `json:"site"`
	Document  *Document             `json:"document"`
	Pending   map[Facet]*Suggestion `json:"pending"`
	CreatedAt time.Time             `json:"createdAt"`
}

// Snapshot copies the workspace state.
func (w *Workspace) Snapshot() *WorkspaceSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	pending := make(map[Facet]*Suggestion, len(w.pending))
	for f, s := range w.pending {
		pending[f] = s
	}
	return &WorkspaceSnapshot{
		ID:        w.ID,
		Site:      w.site,
		Document:  w.doc.Clone(),
		Pending:   pending,
		CreatedAt: w.CreatedAt,
	}
}

// Site returns the current snapshot. It must not be modified.
func (w *Workspace) Site() *SiteData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.site
}

// Document returns a copy of the document.
func (w *Workspace) Document() *Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.Clone()
}

// Replace swaps in a new snapshot, rebuilds the document and clears every
// pending suggestion.
func (w *Workspace) Replace(site *SiteData) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.site = site
	w.doc = BuildDocument(site)
	w.pending = make(map[Facet]*Suggestion)
}

// SetCursor places the document cursor.
func (w *Workspace) SetCursor(c Cursor) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.SetCursor(c)
}

// Pending returns the suggestion waiting in the facet's slot.
func (w *Workspace) Pending(f Facet) (*Suggestion, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.pending[f]
	return s, ok
}

// Propose stores s in its facet's slot, replacing any earlier suggestion.
func (w *Workspace) Propose(s *Suggestion) error {
	if _, err := ParseFacet(string(s.Facet)); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[s.Facet] = s
	return nil
}

// Apply reconciles the pending suggestion of facet f into the document.
// The slot is cleared whether or not the original text was found.
// Returns ENOTFOUND if nothing is pending for f.
func (w *Workspace) Apply(f Facet) (*Suggestion, ApplyResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	s, ok := w.pending[f]
	if !ok {
		return nil, ApplyResult{Action: ActionNone, Block: -1}, Errorf(ENOTFOUND, "no pending %s suggestion", f)
	}
	delete(w.pending, f)
	return s, Reconcile(w.doc, s), nil
}

// ApplySuggestion reconciles s into the document directly and clears the
// slot of its facet.
func (w *Workspace) ApplySuggestion(s *Suggestion) ApplyResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, s.Facet)
	return Reconcile(w.doc, s)
}

// Dismiss clears the slot of facet f.
// Returns ENOTFOUND if nothing is pending for f.
func (w *Workspace) Dismiss(f Facet) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.pending[f]; !ok {
		return Errorf(ENOTFOUND, "no pending %s suggestion", f)
	}
	delete(w.pending, f)
	return nil
}

// WorkspaceService represents a service for managing workspaces.
type WorkspaceService interface {
	// CreateWorkspace creates a workspace for site and assigns its ID.
	CreateWorkspace(ctx context.Context, site *SiteData) (*Workspace, error)

	// FindWorkspaceByID retrieves a workspace by ID.
	// Returns ENOTFOUND if the workspace does not exist.
	FindWorkspaceByID(ctx context.Context, id string) (*Workspace, error)

	// DeleteWorkspace discards a workspace.
	// Returns ENOTFOUND if the workspace does not exist.
	DeleteWorkspace(ctx context.Context, id string) error
}
