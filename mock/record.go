package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.RecordStore = (*RecordStore)(nil)

// RecordStore is a mock implementation of locqa.RecordStore.
type RecordStore struct {
	ExistsFn  func(ctx context.Context) (bool, error)
	PersistFn func(ctx context.Context, store *locqa.Store) error
	LoadFn    func(ctx context.Context) (*locqa.Store, error)
}

func (s *RecordStore) Exists(ctx context.Context) (bool, error) {
	return s.ExistsFn(ctx)
}

func (s *RecordStore) Persist(ctx context.Context, store *locqa.Store) error {
	return s.PersistFn(ctx, store)
}

func (s *RecordStore) Load(ctx context.Context) (*locqa.Store, error) {
	return s.LoadFn(ctx)
}

var _ locqa.StoreBuilder = (*StoreBuilder)(nil)

// StoreBuilder is a mock implementation of locqa.StoreBuilder.
type StoreBuilder struct {
	BuildFn func(ctx context.Context, pairs []locqa.Pair) (*locqa.Store, error)
}

func (b *StoreBuilder) Build(ctx context.Context, pairs []locqa.Pair) (*locqa.Store, error) {
	return b.BuildFn(ctx, pairs)
}

var _ locqa.DatasetReader = (*DatasetReader)(nil)

// DatasetReader is a mock implementation of locqa.DatasetReader.
type DatasetReader struct {
	ReadPairsFn func(ctx context.Context) ([]locqa.Pair, error)
}

func (r *DatasetReader) ReadPairs(ctx context.Context) ([]locqa.Pair, error) {
	return r.ReadPairsFn(ctx)
}
