package locqa

import "context"

// Embedder turns text into a fixed-dimension embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// AnswerLocator finds the answer to a question inside a context.
type AnswerLocator interface {
	// Locate returns the answer text and its rune offsets in context.
	// Offsets are NoOffset when the answer could not be localized; that is
	// not an error.
	Locate(ctx context.Context, question, context string) (*Answer, error)
}

// Model provides both capabilities the retrieval pipeline needs.
type Model interface {
	Embedder
	AnswerLocator
}
