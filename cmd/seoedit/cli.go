package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/seoedit"
	"github.com/fwojciec/seoedit/analyze"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Analyzer   *analyze.Analyzer
	Sitemaps   seoedit.SitemapService
	Requesters map[seoedit.Facet]seoedit.Requester
	Completer  seoedit.Completer
	Workspaces seoedit.WorkspaceService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"YAML file with flag defaults" placeholder:"PATH"`
	Verbose bool            `short:"v" help:"Log at debug level"`

	Browser   bool          `help:"Render pages in headless Chrome instead of a plain HTTP GET"`
	Timeout   time.Duration `default:"15s" help:"Page fetch timeout"`
	UserAgent string        `name:"user-agent" help:"User-Agent sent when fetching pages"`
	RPS       float64       `name:"rps" default:"1" help:"Requests per second per domain (0 disables limiting)"`

	Provider        string `enum:"gemini,anthropic" default:"gemini" help:"Model provider (gemini, anthropic)"`
	Model           string `help:"Model name, defaults to the provider's default"`
	GeminiAPIKey    string `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"Gemini API key"`
	AnthropicAPIKey string `name:"anthropic-api-key" env:"ANTHROPIC_API_KEY" help:"Anthropic API key"`

	Serve   ServeCmd   `cmd:"" help:"Serve the editor JSON API"`
	Analyze AnalyzeCmd `cmd:"" help:"Scrape pages and report their SEO signals"`
	Suggest SuggestCmd `cmd:"" help:"Ask the model for a suggestion on one page"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string `default:"localhost:3000" env:"SEOEDIT_ADDR" help:"Listen address"`
	MaxWorkspaces int    `name:"max-workspaces" default:"256" help:"Workspaces kept in memory before the oldest is evicted"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URLs        []string `arg:"" optional:"" name:"url" help:"Pages to analyze"`
	Sitemap     string   `short:"s" help:"Analyze every page listed in this site's sitemaps"`
	Include     []string `short:"I" help:"With --sitemap, keep only URLs matching a regex (repeatable)"`
	Exclude     []string `short:"X" help:"With --sitemap, drop URLs matching a regex (repeatable)"`
	Max         int      `default:"100" help:"With --sitemap, analyze at most this many pages"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
	JSON        bool     `help:"Print results as JSON"`
	Out         string   `short:"o" type:"path" help:"Also write each page as Markdown with YAML frontmatter under this directory"`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	URL         string   `arg:"" help:"Page to improve"`
	Facet       string   `short:"f" default:"title" help:"What to improve: title, description, heading or content"`
	Terms       []string `short:"t" name:"term" help:"Search term the page should rank for (repeatable)"`
	Competitors []string `short:"C" name:"competitor" help:"Competing page URL (repeatable)"`
	JSON        bool     `help:"Print the suggestion as JSON"`
}
