package suggest

import (
	"context"

	"github.com/fwojciec/seoedit"
)

// DefaultOnError wraps a Requester so that every failure is replaced by
// seoedit.DefaultSuggestion for the request text. The returned error is
// always nil.
//
// Callers cannot distinguish a failed request from a genuine empty result.
// Wrap next in a logging decorator to keep failures visible.
func DefaultOnError(next seoedit.Requester) seoedit.Requester {
	return &defaultOnError{next: next}
}

type defaultOnError struct {
	next seoedit.Requester
}

func (r *defaultOnError) Facet() seoedit.Facet {
	return r.next.Facet()
}

func (r *defaultOnError) Suggest(ctx context.Context, req *seoedit.SuggestionRequest) (*seoedit.Suggestion, error) {
	s, err := r.next.Suggest(ctx, req)
	if err != nil || s == nil {
		var text string
		if req != nil {
			text = req.Text
		}
		return seoedit.DefaultSuggestion(r.next.Facet(), text), nil
	}
	return s, nil
}
