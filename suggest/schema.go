package suggest

import "github.com/fwojciec/seoedit"

// Tool names, one per facet. The content tool keeps the name clients of the
// original API already expect.
const (
	TitleToolName       = "title_suggestion"
	DescriptionToolName = "description_suggestion"
	HeadingToolName     = "heading_suggestion"
	ContentToolName     = "generate_seo_suggestion"
)

func ptr(f float64) *float64 { return &f }

func str(desc string) *seoedit.Schema {
	return &seoedit.Schema{Type: seoedit.TypeString, Description: desc}
}

// baseProperties are shared by every facet schema.
func baseProperties() map[string]*seoedit.Schema {
	return map[string]*seoedit.Schema{
		"original":   str("The original content or element"),
		"suggestion": str("The improved version of the content"),
		"reasoning":  str("Explanation of why this change improves SEO"),
	}
}

// metaTool describes a title or meta description rewrite.
func metaTool(name, what string) seoedit.Tool {
	props := baseProperties()
	props["improvement"] = str("What the rewrite improves, in one sentence")
	props["powerWords"] = &seoedit.Schema{
		Type:        seoedit.TypeArray,
		Description: "Persuasive or high-intent words used in the suggestion",
		Items:       &seoedit.Schema{Type: seoedit.TypeString},
	}
	props["currentScore"] = &seoedit.Schema{
		Type:        seoedit.TypeNumber,
		Description: "Quality score of the original " + what + " from 0 to 100",
		Minimum:     ptr(0),
		Maximum:     ptr(100),
	}
	props["suggestedScore"] = &seoedit.Schema{
		Type:        seoedit.TypeNumber,
		Description: "Quality score of the suggested " + what + " from 0 to 100",
		Minimum:     ptr(0),
		Maximum:     ptr(100),
	}
	return seoedit.Tool{
		Name:        name,
		Description: "Suggest an SEO-optimized page " + what,
		Parameters: &seoedit.Schema{
			Type:       seoedit.TypeObject,
			Properties: props,
			Required:   []string{"original", "suggestion", "reasoning", "improvement", "powerWords", "currentScore", "suggestedScore"},
		},
	}
}

func headingTool() seoedit.Tool {
	props := baseProperties()
	props["priority"] = &seoedit.Schema{
		Type:        seoedit.TypeInteger,
		Description: "How important the change is, 1 (low) to 5 (critical)",
		Minimum:     ptr(1),
		Maximum:     ptr(5),
	}
	props["position"] = &seoedit.Schema{
		Type:        seoedit.TypeInteger,
		Description: "Zero-based index of the heading in the outline",
		Minimum:     ptr(0),
	}
	props["level"] = &seoedit.Schema{
		Type:        seoedit.TypeInteger,
		Description: "Suggested heading level",
		Enum:        []string{"1", "2", "3", "4", "5", "6"},
		Minimum:     ptr(1),
		Maximum:     ptr(6),
	}
	return seoedit.Tool{
		Name:        HeadingToolName,
		Description: "Suggest an improvement to the page heading structure",
		Parameters: &seoedit.Schema{
			Type:       seoedit.TypeObject,
			Properties: props,
			Required:   []string{"original", "suggestion", "reasoning", "priority", "position", "level"},
		},
	}
}

func contentTool() seoedit.Tool {
	return seoedit.Tool{
		Name:        ContentToolName,
		Description: "Generate SEO improvement suggestions for website content",
		Parameters: &seoedit.Schema{
			Type:       seoedit.TypeObject,
			Properties: baseProperties(),
			Required:   []string{"original", "suggestion", "reasoning"},
		},
	}
}

// ToolFor returns the tool the model must call for facet.
func ToolFor(facet seoedit.Facet) seoedit.Tool {
	switch facet {
	case seoedit.FacetTitle:
		return metaTool(TitleToolName, "title")
	case seoedit.FacetDescription:
		return metaTool(DescriptionToolName, "meta description")
	case seoedit.FacetHeading:
		return headingTool()
	default:
		return contentTool()
	}
}
