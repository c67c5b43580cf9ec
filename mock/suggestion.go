package mock

import (
	"context"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.Requester = (*Requester)(nil)

// Requester is a mock implementation of seoedit.Requester.
type Requester struct {
	FacetFn   func() seoedit.Facet
	SuggestFn func(ctx context.Context, req *seoedit.SuggestionRequest) (*seoedit.Suggestion, error)
}

func (r *Requester) Facet() seoedit.Facet {
	return r.FacetFn()
}

func (r *Requester) Suggest(ctx context.Context, req *seoedit.SuggestionRequest) (*seoedit.Suggestion, error) {
	return r.SuggestFn(ctx, req)
}

var _ seoedit.Completer = (*Completer)(nil)

// Completer is a mock implementation of seoedit.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}
