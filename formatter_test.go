package locqa_test

import (
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	t.Parallel()

	t.Run("brackets the answer inside the context", func(t *testing.T) {
		t.Parallel()

		r := &locqa.Result{
			Context:   "Chopin died in Paris.",
			Highlight: locqa.Extract("Chopin died in Paris.", 15, 20),
		}

		expected := "Context: Chopin died in Paris.\n\nAnswer: Paris\n\nChopin died in [[Paris]].\n"
		assert.Equal(t, expected, locqa.FormatResult(r))
	})

	t.Run("reports missing answer distinctly", func(t *testing.T) {
		t.Parallel()

		r := &locqa.Result{
			Context:   "Chopin died in Paris.",
			Highlight: locqa.Extract("Chopin died in Paris.", locqa.NoOffset, locqa.NoOffset),
		}

		expected := "Context: Chopin died in Paris.\n\nAnswer: No answer found\n"
		assert.Equal(t, expected, locqa.FormatResult(r))
	})

	t.Run("returns empty string for nil result", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, locqa.FormatResult(nil))
	})
}
