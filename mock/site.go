package mock

import (
	"context"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.SiteAnalyzer = (*SiteAnalyzer)(nil)

// SiteAnalyzer is a mock implementation of seoedit.SiteAnalyzer.
type SiteAnalyzer struct {
	AnalyzeFn func(ctx context.Context, url string) (*seoedit.SiteData, error)
}

func (a *SiteAnalyzer) Analyze(ctx context.Context, url string) (*seoedit.SiteData, error) {
	return a.AnalyzeFn(ctx, url)
}
