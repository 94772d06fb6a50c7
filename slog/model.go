// Package slog provides logging decorators for locqa services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingModel implements locqa.Model.
var _ locqa.Model = (*LoggingModel)(nil)

// LoggingModel wraps a Model with debug logging of model calls.
type LoggingModel struct {
	next   locqa.Model
	logger *slog.Logger
}

// NewLoggingModel creates a new LoggingModel.
func NewLoggingModel(next locqa.Model, logger *slog.Logger) *LoggingModel {
	return &LoggingModel{next: next, logger: logger}
}

// Embed delegates to the wrapped model and logs the call.
func (m *LoggingModel) Embed(ctx context.Context, text string) (vec []float64, err error) {
	defer func(begin time.Time) {
		m.logger.Debug("embed",
			"chars", len([]rune(text)),
			"dimension", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Embed(ctx, text)
}

// Locate delegates to the wrapped model and logs the located span.
func (m *LoggingModel) Locate(ctx context.Context, question, context string) (a *locqa.Answer, err error) {
	defer func(begin time.Time) {
		start, end := locqa.NoOffset, locqa.NoOffset
		if a != nil {
			start, end = a.Start, a.End
		}
		m.logger.Debug("locate answer",
			"question", question,
			"start", start,
			"end", end,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Locate(ctx, question, context)
}
