package suggest_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/suggest"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("includes the facet instruction and text", func(t *testing.T) {
		t.Parallel()

		prompt := suggest.BuildPrompt(seoedit.FacetTitle, &seoedit.SuggestionRequest{Text: "Home"})

		assert.True(t, strings.HasPrefix(prompt, suggest.Instruction(seoedit.FacetTitle)))
		assert.Contains(t, prompt, "under 60 characters")
		assert.True(t, strings.HasSuffix(prompt, "Here's the content to analyze:\nHome"))
	})

	t.Run("includes search terms and competitors", func(t *testing.T) {
		t.Parallel()

		prompt := suggest.BuildPrompt(seoedit.FacetDescription, &seoedit.SuggestionRequest{
			Text:        "Old",
			SearchTerms: []string{"forged hammer", "claw hammer"},
			Competitors: []*seoedit.SiteData{{URL: "https://rival.example", MetaDescription: "Rival hammers"}},
		})

		assert.Contains(t, prompt, "Target search terms: forged hammer, claw hammer")
		assert.Contains(t, prompt, "<url>https://rival.example</url>")
		assert.Contains(t, prompt, "<content>Rival hammers</content>")
	})

	t.Run("skips null competitors", func(t *testing.T) {
		t.Parallel()

		prompt := suggest.BuildPrompt(seoedit.FacetTitle, &seoedit.SuggestionRequest{
			Text:        "Home",
			Competitors: []*seoedit.SiteData{nil, {URL: "https://rival.example", Title: "Rival"}, nil},
		})

		assert.Contains(t, prompt, "<index>1</index>\n<url>https://rival.example</url>")
		assert.NotContains(t, prompt, "<index>2</index>")
	})

	t.Run("omits the competitor block when every entry is null", func(t *testing.T) {
		t.Parallel()

		prompt := suggest.BuildPrompt(seoedit.FacetTitle, &seoedit.SuggestionRequest{
			Text:        "Home",
			Competitors: []*seoedit.SiteData{nil},
		})

		assert.NotContains(t, prompt, "<competitors>")
	})

	t.Run("includes page context", func(t *testing.T) {
		t.Parallel()

		prompt := suggest.BuildPrompt(seoedit.FacetContent, &seoedit.SuggestionRequest{
			Text: "Body",
			Site: &seoedit.SiteData{URL: "https://acme.example", MetaKeywords: []string{"tools"}, ReadabilityLevel: seoedit.ReadabilityEasy},
		})

		assert.Contains(t, prompt, "<url>https://acme.example</url>")
		assert.Contains(t, prompt, "<keywords>tools</keywords>")
		assert.Contains(t, prompt, "<readability>easy</readability>")
	})
}

func TestToolFor(t *testing.T) {
	t.Parallel()

	t.Run("title schema declares score ranges", func(t *testing.T) {
		t.Parallel()

		tool := suggest.ToolFor(seoedit.FacetTitle)

		assert.Equal(t, suggest.TitleToolName, tool.Name)
		score := tool.Parameters.Properties["currentScore"]
		assert.Equal(t, seoedit.TypeNumber, score.Type)
		assert.InDelta(t, 0, *score.Minimum, 0)
		assert.InDelta(t, 100, *score.Maximum, 0)
		assert.Contains(t, tool.Parameters.Required, "powerWords")
	})

	t.Run("heading schema declares priority and level", func(t *testing.T) {
		t.Parallel()

		tool := suggest.ToolFor(seoedit.FacetHeading)

		assert.Equal(t, suggest.HeadingToolName, tool.Name)
		assert.InDelta(t, 5, *tool.Parameters.Properties["priority"].Maximum, 0)
		assert.Len(t, tool.Parameters.Properties["level"].Enum, 6)
	})

	t.Run("content schema carries only the base fields", func(t *testing.T) {
		t.Parallel()

		tool := suggest.ToolFor(seoedit.FacetContent)

		assert.Equal(t, suggest.ContentToolName, tool.Name)
		assert.Len(t, tool.Parameters.Properties, 3)
		assert.ElementsMatch(t, []string{"original", "suggestion", "reasoning"}, tool.Parameters.Required)
	})
}
