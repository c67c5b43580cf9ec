package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/analyze"
)

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	facet, err := seoedit.ParseFacet(c.Facet)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seoedit.ErrorMessage(err))
		return err
	}
	requester, ok := deps.Requesters[facet]
	if !ok {
		return seoedit.Errorf(seoedit.EINTERNAL, "no requester for %s", facet)
	}

	site, err := deps.Analyzer.Analyze(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seoedit.ErrorMessage(err))
		return err
	}

	var competitors []*seoedit.SiteData
	if len(c.Competitors) > 0 {
		results, err := deps.Analyzer.AnalyzeAll(deps.Ctx, c.Competitors, func(event analyze.ProgressEvent) {
			if event.Type == analyze.ProgressFailed {
				fmt.Fprintf(deps.Stderr, "  skip competitor %s: %s\n", event.URL, seoedit.ErrorMessage(event.Error))
			}
		})
		if err != nil {
			return err
		}
		competitors = analyze.Sites(results)
	}

	sg, err := requester.Suggest(deps.Ctx, &seoedit.SuggestionRequest{
		Text:        site.FacetText(facet),
		Site:        site,
		Competitors: competitors,
		SearchTerms: c.Terms,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", seoedit.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sg)
	}
	printSuggestion(deps.Stdout, sg)
	return nil
}

func printSuggestion(w io.Writer, sg *seoedit.Suggestion) {
	fmt.Fprintf(w, "Original:    %s\n", indent(sg.Original))
	fmt.Fprintf(w, "Suggestion:  %s\n", indent(orNone(sg.Suggested)))
	if sg.Reasoning != "" {
		fmt.Fprintf(w, "Reasoning:   %s\n", indent(sg.Reasoning))
	}
	if sg.Improvement != "" {
		fmt.Fprintf(w, "Improvement: %s\n", sg.Improvement)
	}
	if len(sg.PowerWords) > 0 {
		fmt.Fprintf(w, "Power words: %s\n", strings.Join(sg.PowerWords, ", "))
	}
	if sg.Scores != nil {
		fmt.Fprintf(w, "Score:       %.0f -> %.0f\n", sg.Scores.Current, sg.Scores.Suggested)
	}
	if sg.Facet == seoedit.FacetHeading && sg.Level > 0 {
		fmt.Fprintf(w, "Heading:     H%d at position %d, priority %d\n", sg.Level, sg.Position, sg.Priority)
	}
}

// indent aligns continuation lines with the value column.
func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n             ")
}
