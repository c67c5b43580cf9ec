package mock

import (
	"context"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of seoedit.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, siteURL string, filter *seoedit.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *seoedit.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, siteURL, filter)
}
