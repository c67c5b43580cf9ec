// Package slog decorates seoedit services with structured logging.
package slog

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/seoedit"
)

var _ seoedit.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch: successes at info, failures at
// warn with their error code.
type LoggingFetcher struct {
	next   seoedit.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next. A nil logger discards.
func NewLoggingFetcher(next seoedit.Fetcher, logger *slog.Logger) *LoggingFetcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, pageURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"host", hostOf(pageURL),
			"url", pageURL,
			"duration", time.Since(begin),
		}
		if err != nil {
			f.logger.WarnContext(ctx, "fetch failed", append(attrs, "code", seoedit.ErrorCode(err), "err", err)...)
			return
		}
		f.logger.InfoContext(ctx, "fetched page", append(attrs, "bytes", len(html))...)
	}(time.Now())
	return f.next.Fetch(ctx, pageURL)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// hostOf returns the host of rawURL, or "" when it has none.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
