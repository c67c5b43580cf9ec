// Package seoedit provides the backend of an SEO content editor.
// It scrapes a page, extracts SEO signals (title, meta tags, headings,
// readable body content), turns the content into an editable document tree
// and asks a language model for copy-editing suggestions that can be applied
// to that tree or dismissed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, readability/).
package seoedit
