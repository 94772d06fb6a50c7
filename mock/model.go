package mock

import (
	"context"

	"github.com/fwojciec/locqa"
)

var _ locqa.Model = (*Model)(nil)

// Model is a mock implementation of locqa.Model.
type Model struct {
	EmbedFn  func(ctx context.Context, text string) ([]float64, error)
	LocateFn func(ctx context.Context, question, context string) (*locqa.Answer, error)
}

func (m *Model) Embed(ctx context.Context, text string) ([]float64, error) {
	return m.EmbedFn(ctx, text)
}

func (m *Model) Locate(ctx context.Context, question, context string) (*locqa.Answer, error) {
	return m.LocateFn(ctx, question, context)
}

var _ locqa.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of locqa.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
