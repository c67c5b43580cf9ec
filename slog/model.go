package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/seoedit"
)

// Ensure LoggingModel implements seoedit.Model.
var _ seoedit.Model = (*LoggingModel)(nil)

// LoggingModel wraps a Model with logging. Prompts are not logged.
type LoggingModel struct {
	next   seoedit.Model
	logger *slog.Logger
}

// NewLoggingModel creates a new LoggingModel.
func NewLoggingModel(next seoedit.Model, logger *slog.Logger) *LoggingModel {
	return &LoggingModel{next: next, logger: logger}
}

// CallTool logs the tool name and outcome.
func (m *LoggingModel) CallTool(ctx context.Context, req *seoedit.ToolRequest) (call *seoedit.ToolCall, err error) {
	defer func(begin time.Time) {
		var tool string
		if req != nil {
			tool = req.Tool.Name
		}
		m.logger.Info("model call",
			"tool", tool,
			"duration", time.Since(begin),
			"code", seoedit.ErrorCode(err),
			"err", err,
		)
	}(time.Now())
	return m.next.CallTool(ctx, req)
}

// Generate logs the completion length and outcome.
func (m *LoggingModel) Generate(ctx context.Context, req *seoedit.TextRequest) (text string, err error) {
	defer func(begin time.Time) {
		m.logger.Info("model generate",
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Generate(ctx, req)
}
