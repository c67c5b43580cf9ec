package mock

import (
	"context"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.Model = (*Model)(nil)

// Model is a mock implementation of seoedit.Model.
type Model struct {
	CallToolFn func(ctx context.Context, req *seoedit.ToolRequest) (*seoedit.ToolCall, error)
	GenerateFn func(ctx context.Context, req *seoedit.TextRequest) (string, error)
}

func (m *Model) CallTool(ctx context.Context, req *seoedit.ToolRequest) (*seoedit.ToolCall, error) {
	return m.CallToolFn(ctx, req)
}

func (m *Model) Generate(ctx context.Context, req *seoedit.TextRequest) (string, error) {
	return m.GenerateFn(ctx, req)
}
