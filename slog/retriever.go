package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingRetriever implements locqa.Retriever.
var _ locqa.Retriever = (*LoggingRetriever)(nil)

// LoggingRetriever wraps a Retriever and logs every question.
type LoggingRetriever struct {
	next   locqa.Retriever
	logger *slog.Logger
}

// NewLoggingRetriever creates a new LoggingRetriever.
func NewLoggingRetriever(next locqa.Retriever, logger *slog.Logger) *LoggingRetriever {
	return &LoggingRetriever{next: next, logger: logger}
}

// RetrieveAndAnswer delegates to the wrapped retriever and logs the outcome.
func (r *LoggingRetriever) RetrieveAndAnswer(ctx context.Context, question string) (res *locqa.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{"question", question, "duration", time.Since(begin)}
		if res != nil {
			attrs = append(attrs, "distance", res.Distance, "found", res.Highlight.Found)
		}
		if err != nil {
			r.logger.Error("retrieve and answer", append(attrs, "err", err)...)
			return
		}
		r.logger.Info("retrieve and answer", attrs...)
	}(time.Now())
	return r.next.RetrieveAndAnswer(ctx, question)
}
