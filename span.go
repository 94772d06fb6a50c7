package locqa

import (
	"strings"
	"unicode/utf8"
)

// NoOffset marks an answer boundary the model could not localize.
const NoOffset = -1

// Answer is the answer model's output for a question over a context.
// Start and End are character (rune) offsets into the context, or NoOffset.
type Answer struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Highlight partitions a context around an answer span for rendering.
// Prefix+Answer+Suffix always equals the original context.
type Highlight struct {
	Prefix string `json:"prefix"`
	Answer string `json:"answer"`
	Suffix string `json:"suffix"`

	// Found is false when no answer span was localized.
	Found bool `json:"found"`
}

// Extract splits context into prefix, answer and suffix using rune offsets.
// Sentinel, reversed or out-of-range offsets yield the whole context as the
// prefix with Found unset. An empty span is split but not marked found.
func Extract(context string, start, end int) Highlight {
	n := utf8.RuneCountInString(context)
	if start < 0 || end < 0 || start > end || end > n {
		return Highlight{Prefix: context}
	}

	startByte := runeOffset(context, start)
	endByte := startByte + runeOffset(context[startByte:], end-start)
	return Highlight{
		Prefix: context[:startByte],
		Answer: context[startByte:endByte],
		Suffix: context[endByte:],
		Found:  start < end,
	}
}

// runeOffset returns the byte index of the n-th rune of s.
// n must not exceed the rune count of s.
func runeOffset(s string, n int) int {
	i := 0
	for n > 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n--
	}
	return i
}

// LocateAnswer returns the rune offsets of the first exact occurrence of
// answer inside context. Returns NoOffset for both when the trimmed answer is
// empty or absent.
func LocateAnswer(context, answer string) (start, end int) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return NoOffset, NoOffset
	}
	i := strings.Index(context, answer)
	if i < 0 {
		return NoOffset, NoOffset
	}
	start = utf8.RuneCountInString(context[:i])
	return start, start + utf8.RuneCountInString(answer)
}

// NewAnswer returns an Answer for text with offsets located in context.
func NewAnswer(context, text string) *Answer {
	start, end := LocateAnswer(context, text)
	return &Answer{Text: strings.TrimSpace(text), Start: start, End: end}
}
