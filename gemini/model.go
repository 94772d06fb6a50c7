// Package gemini implements locqa.Model on the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/locqa"
	"google.golang.org/genai"
)

// Default model names.
const (
	DefaultEmbeddingModel = "gemini-embedding-001"
	DefaultAnswerModel    = "gemini-2.5-flash"
)

// Ensure Model implements locqa.Model at compile time.
var _ locqa.Model = (*Model)(nil)

// Model implements locqa.Model using Google Gemini.
type Model struct {
	client         *genai.Client
	embeddingModel string
	answerModel    string
}

// NewModel creates a new Model. Empty model names select the defaults.
func NewModel(client *genai.Client, embeddingModel, answerModel string) *Model {
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}
	if answerModel == "" {
		answerModel = DefaultAnswerModel
	}
	return &Model{client: client, embeddingModel: embeddingModel, answerModel: answerModel}
}

// Embed returns the embedding of text.
func (m *Model) Embed(ctx context.Context, text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "text required")
	}

	result, err := m.client.Models.EmbedContent(ctx, m.embeddingModel,
		[]*genai.Content{genai.NewContentFromText(text, "user")},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 || result.Embeddings[0] == nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "gemini returned no embedding")
	}

	values := result.Embeddings[0].Values
	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}

// Locate asks Gemini to extract the answer from context and finds its offsets.
func (m *Model) Locate(ctx context.Context, question, context string) (*locqa.Answer, error) {
	if question == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "question required")
	}
	if context == "" {
		return nil, locqa.Errorf(locqa.EINVALID, "context required")
	}

	result, err := m.client.Models.GenerateContent(ctx, m.answerModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(question, context)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnswer(context, result.Text())
}

// BuildConfig returns the GenerateContentConfig for answer extraction.
// The response is constrained to a JSON object with a single answer field.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract answers from a passage. Reply with the shortest span copied verbatim from the passage that answers the question. If the passage does not contain the answer, reply with an empty answer.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"answer": {Type: genai.TypeString},
			},
			Required: []string{"answer"},
		},
	}
}

// BuildUserPrompt builds the user prompt containing the passage and question.
func BuildUserPrompt(question, context string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<passage>%s</passage>\n\n", context)
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}

// ParseAnswer decodes a {"answer": "..."} response and locates the answer
// in context.
func ParseAnswer(context, raw string) (*locqa.Answer, error) {
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "gemini returned malformed answer: %v", err)
	}
	return locqa.NewAnswer(context, resp.Answer), nil
}
