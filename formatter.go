package locqa

import "strings"

// FormatResult formats a result for terminal display.
// The answer span is wrapped in double brackets inside the context.
func FormatResult(r *Result) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Context: " + r.Context + "\n\n")
	if !r.Highlight.Found {
		sb.WriteString("Answer: No answer found\n")
		return sb.String()
	}
	sb.WriteString("Answer: " + r.Highlight.Answer + "\n\n")
	sb.WriteString(r.Highlight.Prefix + "[[" + r.Highlight.Answer + "]]" + r.Highlight.Suffix + "\n")
	return sb.String()
}
