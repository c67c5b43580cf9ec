package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/analyze"
	"github.com/fwojciec/seoedit/fs"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.Sitemap != "" {
		found, err := c.discover(deps)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", seoedit.ErrorMessage(err))
			return err
		}
		urls = append(urls, found...)
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "error: give at least one URL or --sitemap")
		return seoedit.Errorf(seoedit.EINVALID, "no URLs to analyze")
	}

	if c.Concurrency > 0 {
		deps.Analyzer.Concurrency = c.Concurrency
	}

	progress := func(event analyze.ProgressEvent) {
		switch event.Type {
		case analyze.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stderr, "Analyzing %d pages\n", event.Total)
			}
		case analyze.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, seoedit.ErrorMessage(event.Error))
		}
	}

	results, err := deps.Analyzer.AnalyzeAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	sites := analyze.Sites(results)
	if c.Out != "" {
		w := fs.NewWriter(c.Out)
		for _, site := range sites {
			if err := w.WriteSnapshot(deps.Ctx, site); err != nil {
				fmt.Fprintf(deps.Stderr, "error: writing %s: %v\n", site.URL, err)
				return err
			}
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d snapshots to %s\n", len(sites), c.Out)
	}

	if c.JSON {
		return writeResultsJSON(deps.Stdout, results)
	}

	for i, site := range sites {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printSite(deps.Stdout, site)
	}
	if len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\nAnalyzed %d of %d pages\n", len(sites), len(results))
	}
	if len(sites) == 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return seoedit.Errorf(seoedit.EFETCH, "no page could be analyzed")
	}
	return nil
}

func (c *AnalyzeCmd) discover(deps *Dependencies) ([]string, error) {
	filter, err := seoedit.NewURLFilter(c.Include, c.Exclude)
	if err != nil {
		return nil, err
	}
	urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap, filter)
	if err != nil {
		return nil, err
	}
	if c.Max > 0 && len(urls) > c.Max {
		urls = urls[:c.Max]
	}
	fmt.Fprintf(deps.Stderr, "Found %d URLs in sitemap\n", len(urls))
	return urls, nil
}

func printSite(w io.Writer, site *seoedit.SiteData) {
	fmt.Fprintln(w, site.URL)
	fmt.Fprintf(w, "  Title:        %s (%d chars)\n", orNone(site.Title), len([]rune(site.Title)))
	fmt.Fprintf(w, "  Description:  %s (%d chars)\n", orNone(site.MetaDescription), len([]rune(site.MetaDescription)))
	if len(site.MetaKeywords) > 0 {
		fmt.Fprintf(w, "  Keywords:     %s\n", strings.Join(site.MetaKeywords, ", "))
	}
	if site.Language != "" {
		fmt.Fprintf(w, "  Language:     %s\n", site.Language)
	}
	fmt.Fprintf(w, "  Words:        %d\n", site.WordCount)
	fmt.Fprintf(w, "  Readability:  %.1f (%s)\n", site.ReadabilityScore, site.ReadabilityLevel)
	fmt.Fprintf(w, "  Headings:     %d\n", len(site.Headings))
	for _, h := range site.Headings {
		fmt.Fprintf(w, "    %sH%d %s\n", strings.Repeat("  ", h.Level-1), h.Level, h.Text)
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

type resultJSON struct {
	URL   string            `json:"url"`
	Data  *seoedit.SiteData `json:"data,omitempty"`
	Error string            `json:"error,omitempty"`
}

func writeResultsJSON(w io.Writer, results []analyze.Result) error {
	out := make([]resultJSON, len(results))
	for i, r := range results {
		out[i] = resultJSON{URL: r.URL, Data: r.Site}
		if r.Err != nil {
			out[i].Error = seoedit.ErrorMessage(r.Err)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
