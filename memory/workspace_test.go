package memory_test

import (
	"context"
	"testing"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() *seoedit.SiteData {
	return &seoedit.SiteData{
		URL:             "https://acme.example/",
		Title:           "Acme",
		MetaDescription: "Forged hammers",
		Content:         "Built to last.",
	}
}

func TestWorkspaceService_CreateWorkspace(t *testing.T) {
	t.Parallel()

	t.Run("assigns a uuid and builds the document", func(t *testing.T) {
		t.Parallel()

		s := memory.NewWorkspaceService(0)

		ws, err := s.CreateWorkspace(context.Background(), testSite())

		require.NoError(t, err)
		_, err = uuid.Parse(ws.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", ws.Site().Title)
		assert.Contains(t, ws.Document().Text(), "Built to last.")
	})

	t.Run("rejects invalid site", func(t *testing.T) {
		t.Parallel()

		s := memory.NewWorkspaceService(0)

		_, err := s.CreateWorkspace(context.Background(), &seoedit.SiteData{})

		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
	})

	t.Run("rejects nil site", func(t *testing.T) {
		t.Parallel()

		s := memory.NewWorkspaceService(0)

		_, err := s.CreateWorkspace(context.Background(), nil)

		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
	})

	t.Run("evicts the oldest workspace when full", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := memory.NewWorkspaceService(2)
		first, err := s.CreateWorkspace(ctx, testSite())
		require.NoError(t, err)
		second, err := s.CreateWorkspace(ctx, testSite())
		require.NoError(t, err)
		third, err := s.CreateWorkspace(ctx, testSite())
		require.NoError(t, err)

		_, err = s.FindWorkspaceByID(ctx, first.ID)
		assert.Equal(t, seoedit.ENOTFOUND, seoedit.ErrorCode(err))
		for _, id := range []string{second.ID, third.ID} {
			_, err := s.FindWorkspaceByID(ctx, id)
			assert.NoError(t, err)
		}
	})
}

func TestWorkspaceService_FindWorkspaceByID(t *testing.T) {
	t.Parallel()

	t.Run("returns the same workspace", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		s := memory.NewWorkspaceService(0)
		ws, err := s.CreateWorkspace(ctx, testSite())
		require.NoError(t, err)

		got, err := s.FindWorkspaceByID(ctx, ws.ID)

		require.NoError(t, err)
		assert.Same(t, ws, got)
	})

	t.Run("returns ENOTFOUND for unknown id", func(t *testing.T) {
		t.Parallel()

		s := memory.NewWorkspaceService(0)

		_, err := s.FindWorkspaceByID(context.Background(), "missing")

		assert.Equal(t, seoedit.ENOTFOUND, seoedit.ErrorCode(err))
	})
}

func TestWorkspaceService_DeleteWorkspace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewWorkspaceService(0)
	ws, err := s.CreateWorkspace(ctx, testSite())
	require.NoError(t, err)

	require.NoError(t, s.DeleteWorkspace(ctx, ws.ID))

	_, err = s.FindWorkspaceByID(ctx, ws.ID)
	assert.Equal(t, seoedit.ENOTFOUND, seoedit.ErrorCode(err))
	assert.Equal(t, seoedit.ENOTFOUND, seoedit.ErrorCode(s.DeleteWorkspace(ctx, ws.ID)))
}
