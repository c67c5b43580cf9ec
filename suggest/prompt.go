package suggest

import (
	"fmt"
	"strings"

	"github.com/fwojciec/seoedit"
)

// SystemPrompt frames every suggestion request.
const SystemPrompt = "You are an expert SEO consultant. Provide specific, actionable suggestions to improve website content for search engines and users."

var instructions = map[seoedit.Facet]string{
	seoedit.FacetTitle:       "Analyze this page title and suggest SEO improvements. Make it more compelling and keyword-rich while keeping it under 60 characters.",
	seoedit.FacetDescription: "Analyze this meta description and suggest SEO improvements. Make it more compelling and include relevant keywords while keeping it under 160 characters.",
	seoedit.FacetHeading:     "Analyze this heading structure and suggest SEO improvements. Ensure proper hierarchy and keyword usage.",
	seoedit.FacetContent:     "Analyze this content section and suggest SEO improvements. Focus on readability, keyword usage, and engagement.",
}

// Instruction returns the facet-specific task given to the model.
func Instruction(facet seoedit.Facet) string {
	if s, ok := instructions[facet]; ok {
		return s
	}
	return instructions[seoedit.FacetContent]
}

// BuildPrompt builds the user prompt for a facet request.
func BuildPrompt(facet seoedit.Facet, req *seoedit.SuggestionRequest) string {
	var sb strings.Builder
	sb.WriteString(Instruction(facet))
	sb.WriteString("\n\n")

	if site := req.Site; site != nil {
		sb.WriteString("<page>\n")
		fmt.Fprintf(&sb, "<url>%s</url>\n", site.URL)
		if len(site.MetaKeywords) > 0 {
			fmt.Fprintf(&sb, "<keywords>%s</keywords>\n", strings.Join(site.MetaKeywords, ", "))
		}
		if site.Language != "" {
			fmt.Fprintf(&sb, "<language>%s</language>\n", site.Language)
		}
		fmt.Fprintf(&sb, "<readability>%s</readability>\n", site.ReadabilityLevel)
		sb.WriteString("</page>\n\n")
	}

	if len(req.SearchTerms) > 0 {
		fmt.Fprintf(&sb, "Target search terms: %s\n\n", strings.Join(req.SearchTerms, ", "))
	}

	if competitors := present(req.Competitors); len(competitors) > 0 {
		sb.WriteString("<competitors>\n")
		for i, c := range competitors {
			sb.WriteString("<competitor>\n")
			fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
			fmt.Fprintf(&sb, "<url>%s</url>\n", c.URL)
			fmt.Fprintf(&sb, "<content>%s</content>\n", c.FacetText(facet))
			sb.WriteString("</competitor>\n")
		}
		sb.WriteString("</competitors>\n\n")
	}

	fmt.Fprintf(&sb, "Here's the content to analyze:\n%s", req.Text)
	return sb.String()
}

// present drops nil snapshots, which JSON nulls decode to.
func present(sites []*seoedit.SiteData) []*seoedit.SiteData {
	out := make([]*seoedit.SiteData, 0, len(sites))
	for _, s := range sites {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
