package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/locqa"
	main "github.com/fwojciec/locqa/cmd/locqa"
	"github.com/fwojciec/locqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints highlighted answer", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveAndAnswerFn: func(_ context.Context, question string) (*locqa.Result, error) {
				return &locqa.Result{
					Question:  question,
					Context:   "Chopin died in Paris.",
					Answer:    "Paris",
					Highlight: locqa.Extract("Chopin died in Paris.", 15, 20),
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		cmd := &main.AskCmd{Question: "Where did Chopin die?"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Context: Chopin died in Paris.\n\nAnswer: Paris\n\nChopin died in [[Paris]].\n", stdout.String())
	})

	t.Run("prints no answer", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveAndAnswerFn: func(_ context.Context, question string) (*locqa.Result, error) {
				return &locqa.Result{
					Context:   "Chopin died in Paris.",
					Highlight: locqa.Highlight{Prefix: "Chopin died in Paris."},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Retriever: retriever,
		}

		err := (&main.AskCmd{Question: "Who?"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Answer: No answer found")
	})

	t.Run("reports error message", func(t *testing.T) {
		t.Parallel()

		retriever := &mock.Retriever{
			RetrieveAndAnswerFn: func(_ context.Context, question string) (*locqa.Result, error) {
				return nil, locqa.Errorf(locqa.EINVALID, "question required")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Retriever: retriever,
		}

		err := (&main.AskCmd{Question: " "}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, "error: question required\n", stderr.String())
	})
}

func TestExampleCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("explicit seed is deterministic", func(t *testing.T) {
		t.Parallel()

		pool := []string{"a?", "b?", "c?", "d?"}
		var asked []string
		retriever := &mock.Retriever{
			RetrieveAndAnswerFn: func(_ context.Context, question string) (*locqa.Result, error) {
				asked = append(asked, question)
				return &locqa.Result{Question: question}, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Config:    &main.Config{Examples: pool},
			Retriever: retriever,
			Seed:      func() uint64 { panic("seed must not be drawn") },
		}

		cmd := &main.ExampleCmd{Seed: 99}
		require.NoError(t, cmd.Run(deps))
		require.NoError(t, cmd.Run(deps))

		require.Len(t, asked, 2)
		assert.Equal(t, locqa.PickExample(99, pool), asked[0])
		assert.Equal(t, asked[0], asked[1])
	})

	t.Run("falls back to default examples", func(t *testing.T) {
		t.Parallel()

		var asked string
		retriever := &mock.Retriever{
			RetrieveAndAnswerFn: func(_ context.Context, question string) (*locqa.Result, error) {
				asked = question
				return &locqa.Result{Question: question}, nil
			},
		}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Config:    &main.Config{},
			Retriever: retriever,
			Seed:      func() uint64 { return 5 },
		}

		require.NoError(t, (&main.ExampleCmd{}).Run(deps))

		assert.Equal(t, locqa.PickExample(5, locqa.DefaultExamples), asked)
	})
}
