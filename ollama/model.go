// Package ollama implements locqa.Model on a local Ollama server through
// langchaingo.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/locqa"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// Default configuration values.
const (
	DefaultServerURL      = "http://localhost:11434"
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultAnswerModel    = "llama3.2"
)

// Ensure Model implements locqa.Model at compile time.
var _ locqa.Model = (*Model)(nil)

// Config holds configuration for the Ollama model.
type Config struct {
	// ServerURL is the Ollama API base URL (default: http://localhost:11434).
	ServerURL string

	// EmbeddingModel produces passage and question vectors (default: nomic-embed-text).
	EmbeddingModel string

	// AnswerModel extracts answers from passages (default: llama3.2).
	AnswerModel string
}

// Model implements locqa.Model using an embedder and a chat model.
type Model struct {
	embedder embeddings.Embedder
	llm      llms.Model
}

// NewModel connects to Ollama with cfg. The answer model is asked to reply in JSON.
func NewModel(cfg Config) (*Model, error) {
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.AnswerModel == "" {
		cfg.AnswerModel = DefaultAnswerModel
	}

	embedLLM, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("init embedding model: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(embedLLM)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	answerLLM, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.AnswerModel),
		ollama.WithFormat("json"),
	)
	if err != nil {
		return nil, fmt.Errorf("init answer model: %w", err)
	}

	return NewModelWith(embedder, answerLLM), nil
}

// NewModelWith creates a Model from an existing embedder and chat model.
func NewModelWith(embedder embeddings.Embedder, llm llms.Model) *Model {
	return &Model{embedder: embedder, llm: llm}
}

// Embed returns the embedding of text.
func (m *Model) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "text required")
	}

	values, err := m.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, locqa.Errorf(locqa.EINTERNAL, "ollama returned no embedding")
	}

	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Locate asks the answer model for a verbatim span and finds its offsets.
func (m *Model) Locate(ctx context.Context, question, context string) (*locqa.Answer, error) {
	if question == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "question required")
	}
	if context == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "context required")
	}

	raw, err := llms.GenerateFromSinglePrompt(ctx, m.llm, BuildPrompt(question, context),
		llms.WithTemperature(0),
	)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "ollama returned malformed answer: %v", err)
	}
	return locqa.NewAnswer(context, resp.Answer), nil
}

// BuildPrompt builds the single-turn prompt for answer extraction.
func BuildPrompt(question, context string) string {
	var sb strings.Builder
	sb.WriteString("Answer the question with the shortest span copied verbatim from the passage.\n")
	sb.WriteString(`Reply with a JSON object {"answer": "<span>"}. Use an empty string if the passage does not contain the answer.`)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Passage: %s\n\n", context)
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
