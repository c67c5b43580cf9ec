package seoedit

// PageSignals holds the fields read directly from the page DOM.
type PageSignals struct {
	Title           string
	MetaDescription string
	MetaKeywords    []string
	Headings        []Heading
	CanonicalURL    string
	Lang            string
}

// SignalExtractor reads SEO signals from the page DOM.
type SignalExtractor interface {
	// ExtractSignals parses raw HTML and returns title, meta tags and headings.
	// Missing optional fields yield empty values, never an error.
	// Returns EEXTRACT if the HTML cannot be parsed.
	ExtractSignals(html string) (*PageSignals, error)
}

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	// Empty when no article could be identified.
	ContentHTML string
}

// Extractor isolates the main article of an HTML page.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// pageURL is used to resolve relative links and may be empty.
	Extract(html, pageURL string) (*ExtractResult, error)
}

// LanguageDetector guesses the natural language of a text.
type LanguageDetector interface {
	// DetectLanguage returns an ISO 639-1 code, or "" when unsure.
	DetectLanguage(text string) string
}
