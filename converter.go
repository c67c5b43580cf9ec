package seoedit

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., from an Extractor).
	// Headings become #-prefixed lines. Relative links are resolved against
	// pageURL when it is not empty.
	Convert(html, pageURL string) (string, error)
}
