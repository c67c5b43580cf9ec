package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/seoedit"
	seoedithttp "github.com/fwojciec/seoedit/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSiteServer serves content by path, replacing {{BASE}} with the
// server URL.
func newSiteServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func urlset(locs ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, l := range locs {
		fmt.Fprintf(&b, "<url><loc>{{BASE}}%s</loc></url>\n", l)
	}
	b.WriteString("</urlset>")
	return b.String()
}

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemaps named in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/robots.txt":       "User-agent: *\nDisallow: /admin/\nSitemap: {{BASE}}/pages.xml\n",
			"/pages.xml":        urlset("/", "/pricing"),
			"/sitemap.xml":      urlset("/ignored"),
			"/not-a-sitemap.md": "x",
		})

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/", srv.URL + "/pricing"}, urls)
	})

	t.Run("falls back to sitemap.xml", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": urlset("/about"),
		})

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/about"}, urls)
	})

	t.Run("returns an empty list without sitemaps", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{})

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("follows sitemap indexes and drops duplicates", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/blog.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/products.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/blog.xml</loc></sitemap>
</sitemapindex>`,
			"/blog.xml":     urlset("/blog/a", "/blog/b"),
			"/products.xml": urlset("/products/x", "/blog/a/"),
		})

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog/a", srv.URL + "/blog/b", srv.URL + "/products/x"}, urls)
	})

	t.Run("keeps pages under the site path", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": urlset("/blog", "/blog/post", "/blogroll", "/pricing"),
		})

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/blog/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog", srv.URL + "/blog/post"}, urls)
	})

	t.Run("applies the filter", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": urlset("/blog/a", "/blog/tag/x", "/pricing"),
		})
		filter, err := seoedit.NewURLFilter([]string{`/blog/`}, []string{`/tag/`})
		require.NoError(t, err)

		urls, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/blog/a"}, urls)
	})

	t.Run("caps the number of URLs", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": urlset("/a", "/b", "/c"),
		})
		svc := seoedithttp.NewSitemapService(srv.Client())
		svc.MaxURLs = 2

		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("rejects a malformed site URL", func(t *testing.T) {
		t.Parallel()

		_, err := seoedithttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "example.com", nil)

		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
	})

	t.Run("reports unreadable sitemaps", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/robots.txt": "Sitemap: {{BASE}}/missing.xml\n",
		})

		_, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		assert.Equal(t, seoedit.EFETCH, seoedit.ErrorCode(err))
	})

	t.Run("bounds each request with the timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)
		svc := seoedithttp.NewSitemapService(srv.Client())
		svc.Timeout = 50 * time.Millisecond

		start := time.Now()
		urls, err := svc.DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Empty(t, urls)
		assert.Less(t, time.Since(start), 2*time.Second)
	})

	t.Run("stops when the context is canceled", func(t *testing.T) {
		t.Parallel()

		srv := newSiteServer(t, map[string]string{
			"/sitemap.xml": urlset("/a"),
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := seoedithttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
