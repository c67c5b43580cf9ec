package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seoedit"
)

// Ensure LoggingRequester implements seoedit.Requester.
var _ seoedit.Requester = (*LoggingRequester)(nil)

// LoggingRequester wraps a Requester with logging. Failures are logged at
// warn level so they stay visible when a caller replaces them with a
// default suggestion.
type LoggingRequester struct {
	next   seoedit.Requester
	logger *slog.Logger
}

// NewLoggingRequester creates a new LoggingRequester.
func NewLoggingRequester(next seoedit.Requester, logger *slog.Logger) *LoggingRequester {
	return &LoggingRequester{next: next, logger: logger}
}

// Facet delegates to the wrapped requester.
func (r *LoggingRequester) Facet() seoedit.Facet {
	return r.next.Facet()
}

// Suggest logs the facet and outcome.
func (r *LoggingRequester) Suggest(ctx context.Context, req *seoedit.SuggestionRequest) (s *seoedit.Suggestion, err error) {
	defer func(begin time.Time) {
		if err != nil {
			r.logger.Warn("suggestion failed",
				"facet", r.next.Facet(),
				"duration", time.Since(begin),
				"code", seoedit.ErrorCode(err),
				"err", err,
			)
			return
		}
		r.logger.Info("suggestion",
			"facet", r.next.Facet(),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return r.next.Suggest(ctx, req)
}
