package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locqa"
)

// Ensure LoggingRecordStore implements locqa.RecordStore.
var _ locqa.RecordStore = (*LoggingRecordStore)(nil)

// LoggingRecordStore wraps a RecordStore with logging of loads and persists.
type LoggingRecordStore struct {
	next   locqa.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next locqa.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// Exists delegates to the wrapped store.
func (s *LoggingRecordStore) Exists(ctx context.Context) (bool, error) {
	return s.next.Exists(ctx)
}

// Persist delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) Persist(ctx context.Context, store *locqa.Store) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("persist store",
			"records", store.Len(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Persist(ctx, store)
}

// Load delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) Load(ctx context.Context) (store *locqa.Store, err error) {
	defer func(begin time.Time) {
		s.logger.Info("load store",
			"records", store.Len(),
			"dimension", store.Dimension(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}
