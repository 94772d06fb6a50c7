package qa_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/mock"
	"github.com/fwojciec/locqa/qa"
	"github.com/fwojciec/locqa/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chopinStore(t *testing.T) *locqa.Store {
	t.Helper()
	s, err := locqa.NewStore([]*locqa.Record{
		{Context: "Chopin died in Paris.", Vector: []float64{1, 0}},
		{Context: "Chopin was born in 1810.", Vector: []float64{0, 1}},
	})
	require.NoError(t, err)
	return s
}

// chopinModel embeds questions about death near the first passage and
// answers by looking for "Paris".
func chopinModel() *mock.Model {
	return &mock.Model{
		EmbedFn: func(_ context.Context, text string) ([]float64, error) {
			if text == "Where did Chopin die?" {
				return []float64{0.9, 0.1}, nil
			}
			return []float64{0.1, 0.9}, nil
		},
		LocateFn: func(_ context.Context, _, context string) (*locqa.Answer, error) {
			start, end := locqa.LocateAnswer(context, "Paris")
			return &locqa.Answer{Text: "Paris", Start: start, End: end}, nil
		},
	}
}

func TestService_RetrieveAndAnswer(t *testing.T) {
	t.Parallel()

	t.Run("highlights answer in nearest passage", func(t *testing.T) {
		t.Parallel()

		svc := qa.NewService(chopinStore(t), chopinModel(), "")

		r, err := svc.RetrieveAndAnswer(context.Background(), "  Where did Chopin die?  ")

		require.NoError(t, err)
		assert.Equal(t, "Where did Chopin die?", r.Question)
		assert.Equal(t, "Chopin died in Paris.", r.Context)
		assert.Equal(t, "Paris", r.Answer)
		assert.Equal(t, locqa.Highlight{Prefix: "Chopin died in ", Answer: "Paris", Suffix: ".", Found: true}, r.Highlight)
	})

	t.Run("reports no answer without error", func(t *testing.T) {
		t.Parallel()

		svc := qa.NewService(chopinStore(t), chopinModel(), locqa.MetricEuclidean)

		r, err := svc.RetrieveAndAnswer(context.Background(), "When was Chopin born?")

		require.NoError(t, err)
		assert.Equal(t, "Chopin was born in 1810.", r.Context)
		assert.False(t, r.Highlight.Found)
		assert.Equal(t, "Chopin was born in 1810.", r.Highlight.Prefix)
		assert.Equal(t, "Paris", r.Answer)
	})

	t.Run("treats nil answer as not localized", func(t *testing.T) {
		t.Parallel()

		model := chopinModel()
		model.LocateFn = func(context.Context, string, string) (*locqa.Answer, error) { return nil, nil }
		svc := qa.NewService(chopinStore(t), model, "")

		r, err := svc.RetrieveAndAnswer(context.Background(), "Where did Chopin die?")

		require.NoError(t, err)
		assert.False(t, r.Highlight.Found)
		assert.Empty(t, r.Answer)
	})

	t.Run("rejects blank question before embedding", func(t *testing.T) {
		t.Parallel()

		model := &mock.Model{
			EmbedFn: func(context.Context, string) ([]float64, error) {
				t.Fatal("embed must not be called")
				return nil, nil
			},
		}
		svc := qa.NewService(chopinStore(t), model, "")

		_, err := svc.RetrieveAndAnswer(context.Background(), " \t ")

		require.Error(t, err)
		assert.Equal(t, locqa.EINVALID, locqa.ErrorCode(err))
		assert.Equal(t, "question required", locqa.ErrorMessage(err))
	})

	t.Run("returns ENOTFOUND for empty store", func(t *testing.T) {
		t.Parallel()

		empty, err := locqa.NewStore(nil)
		require.NoError(t, err)
		svc := qa.NewService(empty, chopinModel(), "")

		_, err = svc.RetrieveAndAnswer(context.Background(), "Where did Chopin die?")

		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})

	t.Run("propagates model errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("model down")
		model := chopinModel()
		model.LocateFn = func(context.Context, string, string) (*locqa.Answer, error) { return nil, boom }
		svc := qa.NewService(chopinStore(t), model, "")

		_, err := svc.RetrieveAndAnswer(context.Background(), "Where did Chopin die?")

		assert.ErrorIs(t, err, boom)
	})
}

func TestOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("loads existing store without building", func(t *testing.T) {
		t.Parallel()

		want := chopinStore(t)
		records := &mock.RecordStore{
			ExistsFn: func(context.Context) (bool, error) { return true, nil },
			LoadFn:   func(context.Context) (*locqa.Store, error) { return want, nil },
		}

		got, err := qa.OpenStore(context.Background(), records, nil, nil)

		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("builds and persists missing store", func(t *testing.T) {
		t.Parallel()

		built := chopinStore(t)
		var persisted *locqa.Store
		records := &mock.RecordStore{
			ExistsFn:  func(context.Context) (bool, error) { return false, nil },
			PersistFn: func(_ context.Context, s *locqa.Store) error { persisted = s; return nil },
		}
		source := &mock.DatasetReader{
			ReadPairsFn: func(context.Context) ([]locqa.Pair, error) {
				return []locqa.Pair{{Question: "q", Context: "Chopin died in Paris."}}, nil
			},
		}
		builder := &mock.StoreBuilder{
			BuildFn: func(_ context.Context, pairs []locqa.Pair) (*locqa.Store, error) {
				require.Len(t, pairs, 1)
				return built, nil
			},
		}

		got, err := qa.OpenStore(context.Background(), records, source, builder)

		require.NoError(t, err)
		assert.Same(t, built, got)
		assert.Same(t, built, persisted)
	})

	t.Run("returns ENOTFOUND when missing and nothing to build from", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordStore{
			ExistsFn: func(context.Context) (bool, error) { return false, nil },
		}

		_, err := qa.OpenStore(context.Background(), records, nil, nil)

		assert.Equal(t, locqa.ENOTFOUND, locqa.ErrorCode(err))
	})

	t.Run("surfaces build failure", func(t *testing.T) {
		t.Parallel()

		records := &mock.RecordStore{
			ExistsFn: func(context.Context) (bool, error) { return false, nil },
		}
		source := &mock.DatasetReader{
			ReadPairsFn: func(context.Context) ([]locqa.Pair, error) { return nil, nil },
		}
		builder := &mock.StoreBuilder{
			BuildFn: func(context.Context, []locqa.Pair) (*locqa.Store, error) {
				return nil, locqa.Errorf(locqa.EINVALID, "source dataset is empty")
			},
		}

		_, err := qa.OpenStore(context.Background(), records, source, builder)

		assert.Equal(t, locqa.EINVALID, locqa.ErrorCode(err))
	})

	t.Run("second open reads what the first persisted", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		records := sqlite.NewRecordStore(filepath.Join(t.TempDir(), "store.db"))
		builds := 0
		builder := &mock.StoreBuilder{
			BuildFn: func(context.Context, []locqa.Pair) (*locqa.Store, error) {
				builds++
				return chopinStore(t), nil
			},
		}
		source := &mock.DatasetReader{
			ReadPairsFn: func(context.Context) ([]locqa.Pair, error) { return []locqa.Pair{{Context: "x"}}, nil },
		}

		_, err := qa.OpenStore(ctx, records, source, builder)
		require.NoError(t, err)
		store, err := qa.OpenStore(ctx, records, source, builder)
		require.NoError(t, err)

		assert.Equal(t, 1, builds)
		assert.Equal(t, 2, store.Len())

		m, err := locqa.Nearest([]float64{0.9, 0.1}, store)
		require.NoError(t, err)
		assert.Equal(t, "Chopin died in Paris.", m.Record.Context)
	})
}
