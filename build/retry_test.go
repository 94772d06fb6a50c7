package build_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays is used for fast unit tests.
var noDelays = []time.Duration{0, 0, 0}

func TestEmbedWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on first attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		embed := func(ctx context.Context, text string) ([]float64, error) {
			attempts++
			return []float64{1}, nil
		}

		vec, err := build.EmbedWithRetry(context.Background(), "x", embed, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, []float64{1}, vec)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		var attempts int
		var retried []int
		embed := func(ctx context.Context, text string) ([]float64, error) {
			attempts++
			if attempts < 4 {
				return nil, errors.New("503 unavailable")
			}
			return []float64{2}, nil
		}

		vec, err := build.EmbedWithRetry(context.Background(), "x", embed, func(attempt int, err error) {
			retried = append(retried, attempt)
		}, noDelays)

		require.NoError(t, err)
		assert.Equal(t, []float64{2}, vec)
		assert.Equal(t, 4, attempts)
		assert.Equal(t, []int{2, 3, 4}, retried)
	})

	t.Run("returns last error after max retries", func(t *testing.T) {
		t.Parallel()

		var attempts int
		boom := errors.New("503 unavailable")
		embed := func(ctx context.Context, text string) ([]float64, error) {
			attempts++
			return nil, boom
		}

		_, err := build.EmbedWithRetry(context.Background(), "x", embed, nil, noDelays)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry invalid input", func(t *testing.T) {
		t.Parallel()

		var attempts int
		embed := func(ctx context.Context, text string) ([]float64, error) {
			attempts++
			return nil, locqa.Errorf(locqa.EINVALID, "text required")
		}

		_, err := build.EmbedWithRetry(context.Background(), "", embed, nil, noDelays)

		assert.Equal(t, locqa.EINVALID, locqa.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("nil delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		var attempts int
		embed := func(ctx context.Context, text string) ([]float64, error) {
			attempts++
			return nil, errors.New("fail")
		}

		_, err := build.EmbedWithRetry(context.Background(), "x", embed, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		embed := func(ctx context.Context, text string) ([]float64, error) {
			cancel()
			return nil, errors.New("fail")
		}

		_, err := build.EmbedWithRetry(ctx, "x", embed, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
