package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/bloom"
	"github.com/temoto/robotstxt"
)

var _ seoedit.SitemapService = (*SitemapService)(nil)

// DefaultMaxSitemapURLs caps the pages returned by DiscoverURLs.
const DefaultMaxSitemapURLs = 500

// maxSitemaps caps the sitemap documents read for one site, index
// entries included.
const maxSitemaps = 50

// SitemapService discovers page URLs from a site's sitemaps.
type SitemapService struct {
	client    *http.Client
	userAgent string

	// MaxURLs caps the number of URLs returned. Zero or less means
	// DefaultMaxSitemapURLs.
	MaxURLs int

	// Timeout bounds each robots.txt and sitemap request. Zero or less
	// means DefaultFetchTimeout.
	Timeout time.Duration
}

// NewSitemapService creates a SitemapService. If client is nil, a new
// http.Client is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{}
	}
	return &SitemapService{client: client, userAgent: DefaultUserAgent}
}

// do sends req under the per-request timeout. The returned cancel must be
// called once the response body is no longer needed.
func (s *SitemapService) do(req *http.Request) (*http.Response, context.CancelFunc, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, nil, err
	}
	return resp, cancel, nil
}

// DiscoverURLs returns the page URLs listed in the site's sitemaps.
// A site without sitemaps yields an empty slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, siteURL string, filter *seoedit.URLFilter) ([]string, error) {
	if err := seoedit.ValidateURL(siteURL); err != nil {
		return nil, err
	}
	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		return nil, seoedit.Errorf(seoedit.EINVALID, "Invalid URL format")
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	sitemaps, err := s.findSitemaps(ctx, root)
	if err != nil {
		return nil, err
	}

	limit := s.MaxURLs
	if limit <= 0 {
		limit = DefaultMaxSitemapURLs
	}

	w := &sitemapWalk{
		svc:     s,
		visited: make(map[string]bool),
		seen:    bloom.NewURLSet(uint(limit)*4, bloom.DefaultFalsePositiveRate),
		keep: func(u string) bool {
			return underPath(u, prefix) && filter.Match(u)
		},
		limit: limit,
		urls:  []string{},
	}
	for _, sm := range sitemaps {
		if err := w.walk(ctx, sm); err != nil {
			return nil, err
		}
		if w.full() {
			break
		}
	}
	return w.urls, nil
}

// sitemapWalk collects URLs across one DiscoverURLs call.
type sitemapWalk struct {
	svc     *SitemapService
	visited map[string]bool
	seen    *bloom.URLSet
	keep    func(string) bool
	limit   int
	urls    []string
}

func (w *sitemapWalk) full() bool {
	return len(w.urls) >= w.limit
}

// walk reads one sitemap document, following index entries.
func (w *sitemapWalk) walk(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.visited[sitemapURL] || len(w.visited) >= maxSitemaps || w.full() {
		return nil
	}
	w.visited[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return seoedit.Errorf(seoedit.EFETCH, "parse sitemap %s: %v", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return seoedit.Errorf(seoedit.EFETCH, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locs(root, "sitemap") {
			if err := w.walk(ctx, loc); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locs(root, "url") {
		if w.full() {
			break
		}
		if w.keep(loc) && w.seen.Visit(loc) {
			w.urls = append(w.urls, loc)
		}
	}
	return nil
}

// locs returns the non-empty <loc> texts of the children named tag.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if v := strings.TrimSpace(loc.Text()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// underPath reports whether rawURL's path is prefix or lies below it.
func underPath(rawURL, prefix string) bool {
	if prefix == "" {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}

// findSitemaps reads Sitemap directives from robots.txt and falls back to
// /sitemap.xml when there are none.
func (s *SitemapService) findSitemaps(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	if found, err := s.robotsSitemaps(ctx, robots); err == nil && len(found) > 0 {
		return found, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fallback := root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, fallback)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return []string{fallback}, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EFETCH, "read robots.txt: %v", err)
	}
	data, err := robotstxt.FromBytes(raw)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EFETCH, "parse robots.txt: %v", err)
	}
	return data.Sitemaps, nil
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EINVALID, "invalid URL %q: %v", target, err)
	}

	resp, cancel, err := s.do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, seoedit.Errorf(seoedit.EFETCH, "fetching %s: %v", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, seoedit.Errorf(seoedit.EFETCH, "HTTP %d for %s", resp.StatusCode, target)
	}
	return &limitedBody{Reader: io.LimitReader(resp.Body, maxBodySize), body: resp.Body, cancel: cancel}, nil
}

// limitedBody caps reads from a response body and releases its request
// timeout on Close.
type limitedBody struct {
	io.Reader
	body   io.Closer
	cancel context.CancelFunc
}

func (b *limitedBody) Close() error {
	defer b.cancel()
	return b.body.Close()
}

func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, err
	}

	resp, cancel, err := s.do(req)
	if err != nil {
		return false, err
	}
	defer cancel()
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
