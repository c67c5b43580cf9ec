package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		html    string
		pageURL string
		want    []string
	}{
		{
			name: "ATX headings for every level the editor reads",
			html: `<h1>Forged Hammers</h1><h2>Why forged steel</h2><h3>Heat treatment</h3>`,
			want: []string{"# Forged Hammers", "## Why forged steel", "### Heat treatment"},
		},
		{
			name: "inline emphasis and links",
			html: `<p><strong>Lifetime</strong> warranty, see <a href="https://acme.example/terms">terms</a> and <em>details</em>.</p>`,
			want: []string{"**Lifetime**", "[terms](https://acme.example/terms)", "*details*"},
		},
		{
			name:    "relative links resolved against the page",
			html:    `<p>See our <a href="/pricing">pricing</a>.</p>`,
			pageURL: "https://acme.example/products/hammers",
			want:    []string{"[pricing](https://acme.example/pricing)"},
		},
		{
			name: "lists",
			html: `<ul><li>One piece head</li><li>Balanced grip</li></ul><ol><li>Measure</li><li>Strike</li></ol>`,
			want: []string{"- One piece head", "- Balanced grip", "1. Measure", "2. Strike"},
		},
		{
			name: "fenced code keeps the language",
			html: "<pre><code class=\"language-html\">&lt;title&gt;Hammers&lt;/title&gt;\n</code></pre>",
			want: []string{"```html", "<title>Hammers</title>"},
		},
		{
			name: "inline code",
			html: `<p>Set <code>rel="canonical"</code> on duplicates.</p>`,
			want: []string{"`rel=\"canonical\"`"},
		},
		{
			name: "blockquotes",
			html: `<blockquote><p>Best hammer I own.</p></blockquote>`,
			want: []string{"> Best hammer I own."},
		},
		{
			name: "tables",
			html: `<table><thead><tr><th>Model</th><th>Weight</th></tr></thead>
<tbody><tr><td>Claw 16</td><td>16 oz</td></tr></tbody></table>`,
			want: []string{"Model", "Weight", "Claw 16", "|", "---"},
		},
	}

	conv := htmltomarkdown.NewConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := conv.Convert(tt.html, tt.pageURL)

			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, md, w)
			}
		})
	}

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		md, err := conv.Convert("\n\n<p>Built to last.</p>\n\n", "")

		require.NoError(t, err)
		assert.Equal(t, "Built to last.", md)
	})

	t.Run("rejects blank input", func(t *testing.T) {
		t.Parallel()

		_, err := conv.Convert("  \n", "")

		assert.Equal(t, seoedit.EINVALID, seoedit.ErrorCode(err))
	})
}
