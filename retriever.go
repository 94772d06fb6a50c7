package locqa

import "context"

// Result is the outcome of answering a question against the store.
type Result struct {
	Question string  `json:"question"`
	Context  string  `json:"context"`
	Distance float64 `json:"distance"`

	// Answer is the model's answer text. It may be set even when the span
	// could not be localized in Context.
	Answer string `json:"answer"`

	Highlight Highlight `json:"highlight"`
}

// Retriever answers questions against a vector store.
type Retriever interface {
	// RetrieveAndAnswer finds the closest context for question and
	// highlights the answer inside it.
	// Returns EINVALID for a blank question and ENOTFOUND for an empty store.
	// A missing answer span is reported through Highlight.Found, not an error.
	RetrieveAndAnswer(ctx context.Context, question string) (*Result, error)
}
