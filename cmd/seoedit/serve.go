package main

import (
	"fmt"

	"github.com/fwojciec/seoedit"
	seoedithttp "github.com/fwojciec/seoedit/http"
	"github.com/fwojciec/seoedit/suggest"
)

// Run executes the serve command. It blocks until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	// The API answers with the original text when the model fails; the
	// logging requester underneath still reports the failure.
	requesters := make(map[seoedit.Facet]seoedit.Requester, len(deps.Requesters))
	for f, r := range deps.Requesters {
		requesters[f] = suggest.DefaultOnError(r)
	}

	s := seoedithttp.NewServer()
	s.Analyzer = deps.Analyzer
	s.Requesters = requesters
	s.Completer = deps.Completer
	s.Workspaces = deps.Workspaces
	s.Logger = deps.Logger

	fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", c.Addr)
	if err := s.Serve(deps.Ctx, c.Addr); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}
