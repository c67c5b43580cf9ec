// Package fs stores page snapshots as Markdown files.
package fs

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/seoedit"
	"gopkg.in/yaml.v3"
)

// URLToPath converts a page URL to a relative file path under a directory
// named after the host.
// Example: https://example.com/blog/launch → example.com/blog/launch.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", seoedit.Errorf(seoedit.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	if u.Host == "" {
		return "", seoedit.Errorf(seoedit.EINVALID, "URL %q has no host", rawURL)
	}
	host := strings.ReplaceAll(strings.ToLower(u.Host), ":", "_")

	path := strings.TrimPrefix(u.Path, "/")
	switch {
	case path == "":
		path = "index.md"
	case strings.HasSuffix(path, "/"):
		path += "index.md"
	default:
		path += ".md"
	}

	rel := filepath.Join(host, filepath.FromSlash(path))
	if !filepath.IsLocal(rel) {
		return "", seoedit.Errorf(seoedit.EINVALID, "URL %q escapes the output directory", rawURL)
	}
	return rel, nil
}

// frontmatter is the YAML header of a snapshot file.
type frontmatter struct {
	URL         string            `yaml:"url"`
	Title       string            `yaml:"title"`
	Description string            `yaml:"description"`
	Keywords    []string          `yaml:"keywords,omitempty"`
	Canonical   string            `yaml:"canonical,omitempty"`
	Language    string            `yaml:"language,omitempty"`
	WordCount   int               `yaml:"words"`
	Readability float64           `yaml:"readability"`
	Level       string            `yaml:"readability_level"`
	Headings    []seoedit.Heading `yaml:"headings,omitempty"`
	ContentHash string            `yaml:"content_hash,omitempty"`
	FetchedAt   string            `yaml:"fetched"`
}

// FormatSnapshot renders site as Markdown content under a YAML frontmatter.
func FormatSnapshot(site *seoedit.SiteData) (string, error) {
	fm, err := yaml.Marshal(frontmatter{
		URL:         site.URL,
		Title:       site.Title,
		Description: site.MetaDescription,
		Keywords:    site.MetaKeywords,
		Canonical:   site.CanonicalURL,
		Language:    site.Language,
		WordCount:   site.WordCount,
		Readability: site.ReadabilityScore,
		Level:       site.ReadabilityLevel,
		Headings:    site.Headings,
		ContentHash: site.ContentHash,
		FetchedAt:   site.FetchedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(site.Content)
	if site.Content != "" && !strings.HasSuffix(site.Content, "\n") {
		b.WriteString("\n")
	}
	return b.String(), nil
}

var _ seoedit.SnapshotWriter = (*Writer)(nil)

// Writer writes snapshots as Markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteSnapshot writes site to <baseDir>/<host>/<path>.md, replacing any
// earlier snapshot of the same page.
func (w *Writer) WriteSnapshot(ctx context.Context, site *seoedit.SiteData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := site.Validate(); err != nil {
		return err
	}

	rel, err := URLToPath(site.URL)
	if err != nil {
		return err
	}
	content, err := FormatSnapshot(site)
	if err != nil {
		return err
	}

	full := filepath.Join(w.baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, []byte(content), 0o644)
}
