package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Retriever = (*Retriever)(nil)

// Retriever is a mock implementation of locqa.Retriever.
type Retriever struct {
	RetrieveAndAnswerFn func(ctx context.Context, question string) (*locqa.Result, error)
}

func (r *Retriever) RetrieveAndAnswer(ctx context.Context, question string) (*locqa.Result, error) {
	return r.RetrieveAndAnswerFn(ctx, question)
}
