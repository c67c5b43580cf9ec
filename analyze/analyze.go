// Package analyze turns a URL into a scored seoedit.SiteData snapshot.
// It coordinates fetching, the DOM signal pass, the content pass and
// metrics.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/seoedit"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds AnalyzeAll when Concurrency is not set.
const DefaultConcurrency = 4

// Ensure Analyzer implements seoedit.SiteAnalyzer at compile time.
var _ seoedit.SiteAnalyzer = (*Analyzer)(nil)

// Analyzer runs the extraction pipeline for one or more URLs.
//
// The DOM pass and the content pass fail independently: a content pass
// failure leaves Content empty and is logged, while a DOM pass failure
// fails the whole analysis.
type Analyzer struct {
	Fetcher   seoedit.Fetcher
	Signals   seoedit.SignalExtractor
	Extractor seoedit.Extractor

	// Fallback is tried when Extractor errors or finds no article.
	Fallback  seoedit.Extractor
	Converter seoedit.Converter

	// Language is optional.
	Language seoedit.LanguageDetector

	// RateLimiter is optional. When set, each fetch waits for its host.
	RateLimiter seoedit.DomainLimiter
	Logger      *slog.Logger
	Concurrency int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Analyze fetches the page at rawURL and builds its SiteData.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*seoedit.SiteData, error) {
	if err := seoedit.ValidateURL(rawURL); err != nil {
		return nil, err
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, seoedit.Errorf(seoedit.EINVALID, "Invalid URL format")
	}

	if a.RateLimiter != nil {
		if err := a.RateLimiter.Wait(ctx, u.Host); err != nil {
			return nil, err
		}
	}

	html, err := a.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if seoedit.ErrorCode(err) == seoedit.EINTERNAL {
			return nil, seoedit.Errorf(seoedit.EFETCH, "fetch %s: %v", rawURL, err)
		}
		return nil, err
	}

	signals, err := a.Signals.ExtractSignals(html)
	if err != nil {
		if seoedit.ErrorCode(err) == seoedit.EINTERNAL {
			return nil, seoedit.Errorf(seoedit.EEXTRACT, "extract signals: %v", err)
		}
		return nil, err
	}

	content := a.content(html, rawURL)

	site := &seoedit.SiteData{
		URL:             rawURL,
		Title:           signals.Title,
		MetaDescription: signals.MetaDescription,
		MetaKeywords:    signals.MetaKeywords,
		Content:         content,
		Headings:        signals.Headings,
		CanonicalURL:    signals.CanonicalURL,
		Language:        a.language(content, signals),
		ContentHash:     computeHash(content),
		FetchedAt:       a.now(),
	}
	if site.MetaKeywords == nil {
		site.MetaKeywords = []string{}
	}
	if site.Headings == nil {
		site.Headings = []seoedit.Heading{}
	}
	seoedit.ComputeMetrics(content).Apply(site)

	return site, nil
}

// content runs the content pass and returns Markdown, or "" on failure.
func (a *Analyzer) content(html, pageURL string) string {
	logger := a.logger()

	result, err := a.Extractor.Extract(html, pageURL)
	if (err != nil || result == nil || result.ContentHTML == "") && a.Fallback != nil {
		if err != nil {
			logger.Debug("primary extractor failed, trying fallback", "url", pageURL, "err", err)
		}
		result, err = a.Fallback.Extract(html, pageURL)
	}
	if err != nil {
		logger.Warn("content extraction failed", "url", pageURL, "err", err)
		return ""
	}
	if result == nil || result.ContentHTML == "" {
		logger.Info("no article found", "url", pageURL)
		return ""
	}

	markdown, err := a.Converter.Convert(result.ContentHTML, pageURL)
	if err != nil {
		logger.Warn("markdown conversion failed", "url", pageURL, "err", err)
		return ""
	}
	return markdown
}

// language prefers detection on the body text and falls back to the
// primary subtag of the <html lang> attribute.
func (a *Analyzer) language(content string, signals *seoedit.PageSignals) string {
	if a.Language != nil {
		text := content
		if text == "" {
			text = strings.TrimSpace(signals.Title + " " + signals.MetaDescription)
		}
		if lang := a.Language.DetectLanguage(text); lang != "" {
			return lang
		}
	}
	lang, _, _ := strings.Cut(signals.Lang, "-")
	return strings.ToLower(strings.TrimSpace(lang))
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *Analyzer) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now()
}

// Result holds the outcome of analyzing a single URL in AnalyzeAll.
type Result struct {
	URL  string
	Site *seoedit.SiteData
	Err  error
}

// ProgressEvent reports progress during AnalyzeAll.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting analysis progress.
type ProgressFunc func(event ProgressEvent)

// AnalyzeAll analyzes urls concurrently and returns one Result per URL in
// input order. Individual failures are reported in Result.Err; the returned
// error is non-nil only when ctx is canceled.
func (a *Analyzer) AnalyzeAll(ctx context.Context, urls []string, progress ProgressFunc) ([]Result, error) {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	type indexed struct {
		position int
		result   Result
	}
	resultCh := make(chan indexed, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				site, err := a.Analyze(gctx, u)
				resultCh <- indexed{position: i, result: Result{URL: u, Site: site, Err: err}}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]Result, total)
	var completed atomic.Int64
	for r := range resultCh {
		results[r.position] = r.result
		n := int(completed.Add(1))
		if progress == nil {
			continue
		}
		if r.result.Err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: r.result.URL, Error: r.result.Err})
		} else {
			progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.result.URL})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

// Sites returns the snapshots of the successful results.
func Sites(results []Result) []*seoedit.SiteData {
	var sites []*seoedit.SiteData
	for _, r := range results {
		if r.Err == nil && r.Site != nil {
			sites = append(sites, r.Site)
		}
	}
	return sites
}

func computeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}
