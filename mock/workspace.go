package mock

import (
	"context"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService is a mock implementation of seoedit.WorkspaceService.
type WorkspaceService struct {
	CreateWorkspaceFn   func(ctx context.Context, site *seoedit.SiteData) (*seoedit.Workspace, error)
	FindWorkspaceByIDFn func(ctx context.Context, id string) (*seoedit.Workspace, error)
	DeleteWorkspaceFn   func(ctx context.Context, id string) error
}

func (s *WorkspaceService) CreateWorkspace(ctx context.Context, site *seoedit.SiteData) (*seoedit.Workspace, error) {
	return s.CreateWorkspaceFn(ctx, site)
}

func (s *WorkspaceService) FindWorkspaceByID(ctx context.Context, id string) (*seoedit.Workspace, error) {
	return s.FindWorkspaceByIDFn(ctx, id)
}

func (s *WorkspaceService) DeleteWorkspace(ctx context.Context, id string) error {
	return s.DeleteWorkspaceFn(ctx, id)
}
