// Package qa sequences question answering: embed the question, retrieve the
// nearest passage, localize the answer and highlight it.
package qa

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/locqa"
)

var _ locqa.Retriever = (*Service)(nil)

// Service implements locqa.Retriever over an in-memory store.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	store  *locqa.Store
	model  locqa.Model
	metric locqa.Metric
}

// NewService creates a Service. An empty metric selects Euclidean distance.
func NewService(store *locqa.Store, model locqa.Model, metric locqa.Metric) *Service {
	if metric == "" {
		metric = locqa.MetricEuclidean
	}
	return &Service{store: store, model: model, metric: metric}
}

// RetrieveAndAnswer answers question using the closest stored passage.
func (s *Service) RetrieveAndAnswer(ctx context.Context, question string) (*locqa.Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "question required")
	}

	vec, err := s.model.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	match, err := locqa.NearestBy(vec, s.store, s.metric)
	if err != nil {
		return nil, err
	}
	passage := match.Record.Context

	answer, err := s.model.Locate(ctx, question, passage)
	if err != nil {
		return nil, fmt.Errorf("locate answer: %w", err)
	}

	start, end := locqa.NoOffset, locqa.NoOffset
	var text string
	if answer != nil {
		start, end, text = answer.Start, answer.End, answer.Text
	}
	h := locqa.Extract(passage, start, end)
	if h.Found {
		text = h.Answer
	}

	return &locqa.Result{
		Question:  question,
		Context:   passage,
		Distance:  match.Distance,
		Answer:    text,
		Highlight: h,
	}, nil
}

// OpenStore returns the persisted store, building and persisting it first
// when no artifact exists. Only the build path reads the dataset or calls
// the embedding model.
func OpenStore(ctx context.Context, records locqa.RecordStore, source locqa.DatasetReader, builder locqa.StoreBuilder) (*locqa.Store, error) {
	exists, err := records.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check store: %w", err)
	}
	if exists {
		return records.Load(ctx)
	}

	if source == nil || builder == nil {
		return nil, locqa.Errorf(locqa.ENOTFOUND, "store does not exist and no dataset is configured to build it")
	}

	pairs, err := source.ReadPairs(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	store, err := builder.Build(ctx, pairs)
	if err != nil {
		return nil, fmt.Errorf("build store: %w", err)
	}

	if err := records.Persist(ctx, store); err != nil {
		return nil, fmt.Errorf("persist store: %w", err)
	}
	return store, nil
}
