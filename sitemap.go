package seoedit

import (
	"context"
	"regexp"
)

// SitemapService lists the pages a site publishes in its sitemaps, so a
// whole site can be audited in one run.
type SitemapService interface {
	// DiscoverURLs reads the sitemaps named in robots.txt, or /sitemap.xml
	// when there are none, and returns their page URLs in document order
	// without duplicates. Sitemap indexes are followed. When siteURL has a
	// path, only pages under that path are returned.
	//
	// Returns EINVALID for a malformed siteURL and EFETCH when a sitemap
	// cannot be read.
	DiscoverURLs(ctx context.Context, siteURL string, filter *URLFilter) ([]string, error)
}

// URLFilter narrows a discovered URL list. A nil filter matches everything.
type URLFilter struct {
	// Include, when non-empty, keeps only URLs matching one of the patterns.
	Include []*regexp.Regexp

	// Exclude drops URLs matching any pattern. Applied after Include.
	Exclude []*regexp.Regexp
}

// NewURLFilter compiles include and exclude patterns.
// Returns EINVALID for a pattern that does not compile.
func NewURLFilter(include, exclude []string) (*URLFilter, error) {
	if len(include) == 0 && len(exclude) == 0 {
		return nil, nil
	}
	f := &URLFilter{}
	for _, p := range include {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid include pattern %q: %v", p, err)
		}
		f.Include = append(f.Include, re)
	}
	for _, p := range exclude {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid exclude pattern %q: %v", p, err)
		}
		f.Exclude = append(f.Exclude, re)
	}
	return f, nil
}

// Match reports whether url passes the filter.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	if len(f.Include) > 0 && !matchAny(f.Include, url) {
		return false
	}
	return !matchAny(f.Exclude, url)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
