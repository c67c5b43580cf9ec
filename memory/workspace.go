// Package memory keeps editing workspaces in process memory. Workspaces do
// not survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/fwojciec/seoedit"
	"github.com/google/uuid"
)

// DefaultMaxWorkspaces bounds the number of live workspaces.
const DefaultMaxWorkspaces = 256

// Compile-time interface verification.
var _ seoedit.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService implements seoedit.WorkspaceService with a map.
// When full, creating a workspace evicts the oldest one.
type WorkspaceService struct {
	mu    sync.Mutex
	byID  map[string]*seoedit.Workspace
	order []string
	max   int
}

// NewWorkspaceService creates a WorkspaceService holding at most limit
// workspaces, or DefaultMaxWorkspaces when limit is not positive.
func NewWorkspaceService(limit int) *WorkspaceService {
	if limit <= 0 {
		limit = DefaultMaxWorkspaces
	}
	return &WorkspaceService{
		byID: make(map[string]*seoedit.Workspace),
		max:  limit,
	}
}

// CreateWorkspace creates a workspace for site and assigns its ID.
func (s *WorkspaceService) CreateWorkspace(_ context.Context, site *seoedit.SiteData) (*seoedit.Workspace, error) {
	if site == nil {
		return nil, seoedit.Errorf(seoedit.EINVALID, "site required")
	}
	if err := site.Validate(); err != nil {
		return nil, err
	}

	ws := seoedit.NewWorkspace(uuid.New().String(), site)

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.max {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
	s.byID[ws.ID] = ws
	s.order = append(s.order, ws.ID)
	return ws, nil
}

// FindWorkspaceByID retrieves a workspace by ID.
func (s *WorkspaceService) FindWorkspaceByID(_ context.Context, id string) (*seoedit.Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.byID[id]
	if !ok {
		return nil, seoedit.Errorf(seoedit.ENOTFOUND, "workspace not found")
	}
	return ws, nil
}

// DeleteWorkspace discards a workspace.
func (s *WorkspaceService) DeleteWorkspace(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return seoedit.Errorf(seoedit.ENOTFOUND, "workspace not found")
	}
	delete(s.byID, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
