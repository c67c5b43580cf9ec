package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/seoedit"
)

// Ensure LoggingExtractor implements seoedit.Extractor.
var _ seoedit.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging. name identifies
// the wrapped implementation in log lines.
type LoggingExtractor struct {
	next   seoedit.Extractor
	name   string
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next seoedit.Extractor, name string, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, name: name, logger: logger}
}

// Extract logs how much content the wrapped extractor found.
func (e *LoggingExtractor) Extract(html, pageURL string) (result *seoedit.ExtractResult, err error) {
	defer func(begin time.Time) {
		var size int
		if result != nil {
			size = len(result.ContentHTML)
		}
		e.logger.Debug("extract",
			"extractor", e.name,
			"url", pageURL,
			"content_bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}
