package seoedit_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/seoedit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFacet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want seoedit.Facet
	}{
		{"title", seoedit.FacetTitle},
		{"meta", seoedit.FacetDescription},
		{"Description", seoedit.FacetDescription},
		{"heading", seoedit.FacetHeading},
		{" headings ", seoedit.FacetHeading},
		{"content", seoedit.FacetContent},
	}
	for _, tt := range tests {
		got, err := seoedit.ParseFacet(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := seoedit.ParseFacet("footer")
	assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
}

func TestDefaultSuggestion(t *testing.T) {
	t.Parallel()

	s := seoedit.DefaultSuggestion(seoedit.FacetTitle, "Home")

	assert.Equal(t, seoedit.FacetTitle, s.Facet)
	assert.Equal(t, "Home", s.Original)
	assert.Empty(t, s.Suggested)
	assert.Empty(t, s.Reasoning)
}

func TestValidateURL(t *testing.T) {
	t.Parallel()

	for _, u := range []string{"https://example.com", "http://example.com/a?b=c"} {
		assert.NoError(t, seoedit.ValidateURL(u), u)
	}
	for _, u := range []string{"", "example.com", "ftp://example.com", "https://", "javascript:alert(1)"} {
		err := seoedit.ValidateURL(u)
		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err), u)
	}
}

func TestSiteData_Validate(t *testing.T) {
	t.Parallel()

	assert.Error(t, (&seoedit.SiteData{}).Validate())
	assert.NoError(t, (&seoedit.SiteData{URL: "https://example.com"}).Validate())
	err := (&seoedit.SiteData{URL: "https://example.com", Headings: []seoedit.Heading{{Level: 7}}}).Validate()
	assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
}

func TestSiteData_FacetText(t *testing.T) {
	t.Parallel()

	site := &seoedit.SiteData{
		Title:           "Acme",
		MetaDescription: "Forged hammers",
		Content:         "Built to last.",
		Headings: []seoedit.Heading{
			{Level: 1, Text: "Hammers", Position: 0},
			{Level: 2, Text: "Claw", Position: 1},
		},
	}

	tests := []struct {
		facet seoedit.Facet
		want  string
	}{
		{seoedit.FacetTitle, "Acme"},
		{seoedit.FacetDescription, "Forged hammers"},
		{seoedit.FacetHeading, "H1: Hammers\nH2: Claw"},
		{seoedit.FacetContent, "Built to last."},
	}
	for _, tt := range tests {
		t.Run(string(tt.facet), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, site.FacetText(tt.facet))
		})
	}

	t.Run("truncates long content", func(t *testing.T) {
		t.Parallel()

		long := &seoedit.SiteData{Content: strings.Repeat("é", seoedit.MaxFacetContentRunes+10)}

		got := long.FacetText(seoedit.FacetContent)

		assert.Equal(t, seoedit.MaxFacetContentRunes, len([]rune(got)))
	})

	t.Run("returns empty for nil site", func(t *testing.T) {
		t.Parallel()

		var site *seoedit.SiteData
		assert.Empty(t, site.FacetText(seoedit.FacetTitle))
	})
}
