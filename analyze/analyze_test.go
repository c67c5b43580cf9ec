package analyze_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/analyze"
	"github.com/fwojciec/seoedit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newAnalyzer returns an Analyzer whose collaborators all succeed.
func newAnalyzer() *analyze.Analyzer {
	return &analyze.Analyzer{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html><head><title>Acme</title></head><body><h1>Hammers</h1></body></html>", nil
			},
		},
		Signals: &mock.SignalExtractor{
			ExtractSignalsFn: func(_ string) (*seoedit.PageSignals, error) {
				return &seoedit.PageSignals{
					Title:           "Acme",
					MetaDescription: "Forged hammers",
					MetaKeywords:    []string{"hammers"},
					Headings:        []seoedit.Heading{{Level: 1, Text: "Hammers", Position: 0}},
					Lang:            "en-US",
				}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, _ string) (*seoedit.ExtractResult, error) {
				return &seoedit.ExtractResult{Title: "Acme", ContentHTML: "<p>Built to last.</p>"}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(_, _ string) (string, error) {
				return "Built to last.", nil
			},
		},
		Now: func() time.Time { return fixedTime },
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("builds site data from both passes", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()

		site, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.example/", site.URL)
		assert.Equal(t, "Acme", site.Title)
		assert.Equal(t, "Forged hammers", site.MetaDescription)
		assert.Equal(t, []string{"hammers"}, site.MetaKeywords)
		assert.Equal(t, "Built to last.", site.Content)
		assert.Equal(t, []seoedit.Heading{{Level: 1, Text: "Hammers", Position: 0}}, site.Headings)
		assert.Equal(t, 3, site.WordCount)
		assert.InDelta(t, 2.0/3.0*100, site.ReadabilityScore, 0.001)
		assert.Equal(t, seoedit.ReadabilityEasy, site.ReadabilityLevel)
		assert.Equal(t, "en", site.Language)
		assert.NotEmpty(t, site.ContentHash)
		assert.Equal(t, fixedTime, site.FetchedAt)
	})

	t.Run("rejects malformed URL before fetching", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				t.Fatal("fetch must not be called")
				return "", nil
			},
		}

		_, err := a.Analyze(context.Background(), "ftp://acme.example")

		require.Error(t, err)
		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
	})

	t.Run("maps foreign fetch errors to EFETCH", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("connection reset")
			},
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		require.Error(t, err)
		assert.Equal(t, seoedit.EFETCH, seoedit.ErrorCode(err))
	})

	t.Run("passes through coded fetch errors", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", seoedit.Errorf(seoedit.EFETCH, "HTTP 404 Not Found for https://acme.example/")
			},
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		assert.Equal(t, seoedit.EFETCH, seoedit.ErrorCode(err))
		assert.Contains(t, seoedit.ErrorMessage(err), "404")
	})

	t.Run("fails with EEXTRACT when the DOM pass fails", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Signals = &mock.SignalExtractor{
			ExtractSignalsFn: func(_ string) (*seoedit.PageSignals, error) {
				return nil, errors.New("parse failure")
			},
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/")

		assert.Equal(t, seoedit.EEXTRACT, seoedit.ErrorCode(err))
	})

	t.Run("uses the fallback extractor when the primary finds nothing", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Extractor = &mock.Extractor{
			ExtractFn: func(_, _ string) (*seoedit.ExtractResult, error) {
				return &seoedit.ExtractResult{}, nil
			},
		}
		var fallbackCalled bool
		a.Fallback = &mock.Extractor{
			ExtractFn: func(_, _ string) (*seoedit.ExtractResult, error) {
				fallbackCalled = true
				return &seoedit.ExtractResult{ContentHTML: "<p>Fallback body.</p>"}, nil
			},
		}
		a.Converter = &mock.Converter{
			ConvertFn: func(html, _ string) (string, error) {
				assert.Equal(t, "<p>Fallback body.</p>", html)
				return "Fallback body.", nil
			},
		}

		site, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.True(t, fallbackCalled)
		assert.Equal(t, "Fallback body.", site.Content)
	})

	t.Run("keeps DOM fields when the content pass fails", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Extractor = &mock.Extractor{
			ExtractFn: func(_, _ string) (*seoedit.ExtractResult, error) {
				return nil, seoedit.Errorf(seoedit.EEXTRACT, "no article")
			},
		}

		site, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, "Acme", site.Title)
		assert.Len(t, site.Headings, 1)
		assert.Empty(t, site.Content)
		assert.Equal(t, 0, site.WordCount)
		assert.Zero(t, site.ReadabilityScore)
	})

	t.Run("returns empty slices when signals are absent", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Signals = &mock.SignalExtractor{
			ExtractSignalsFn: func(_ string) (*seoedit.PageSignals, error) {
				return &seoedit.PageSignals{}, nil
			},
		}

		site, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.NotNil(t, site.MetaKeywords)
		assert.NotNil(t, site.Headings)
	})

	t.Run("prefers the language detector over the lang attribute", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Language = &mock.LanguageDetector{
			DetectLanguageFn: func(text string) string {
				assert.Equal(t, "Built to last.", text)
				return "de"
			},
		}

		site, err := a.Analyze(context.Background(), "https://acme.example/")

		require.NoError(t, err)
		assert.Equal(t, "de", site.Language)
	})

	t.Run("waits on the rate limiter for the URL host", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		var domain string
		a.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, d string) error {
				domain = d
				return nil
			},
		}

		_, err := a.Analyze(context.Background(), "https://acme.example/hammers")

		require.NoError(t, err)
		assert.Equal(t, "acme.example", domain)
	})
}

func TestAnalyzer_AnalyzeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns results in input order", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		a.Concurrency = 3
		a.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://b.example/" {
					return "", seoedit.Errorf(seoedit.EFETCH, "HTTP 500 Internal Server Error for %s", url)
				}
				return "<html></html>", nil
			},
		}
		urls := []string{"https://a.example/", "https://b.example/", "https://c.example/"}

		results, err := a.AnalyzeAll(context.Background(), urls, nil)

		require.NoError(t, err)
		require.Len(t, results, 3)
		for i, r := range results {
			assert.Equal(t, urls[i], r.URL)
		}
		assert.NoError(t, results[0].Err)
		assert.Equal(t, seoedit.EFETCH, seoedit.ErrorCode(results[1].Err))
		assert.NoError(t, results[2].Err)
		assert.Len(t, analyze.Sites(results), 2)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()
		var mu sync.Mutex
		var events []analyze.ProgressType

		_, err := a.AnalyzeAll(context.Background(), []string{"https://a.example/", "notaurl"}, func(e analyze.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e.Type)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, analyze.ProgressStarted, events[0])
		assert.ElementsMatch(t, []analyze.ProgressType{analyze.ProgressCompleted, analyze.ProgressFailed}, events[1:3])
		assert.Equal(t, analyze.ProgressFinished, events[3])
	})

	t.Run("handles an empty URL list", func(t *testing.T) {
		t.Parallel()

		a := newAnalyzer()

		results, err := a.AnalyzeAll(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
