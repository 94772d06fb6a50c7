package build

import (
	"context"
	"time"

	"github.com/fwojciec/locqa"
)

// EmbedFunc is the signature of locqa.Embedder.Embed.
type EmbedFunc func(ctx context.Context, text string) ([]float64, error)

// RetryFunc is called before each retry with the attempt number about to
// run and the error that caused it.
type RetryFunc func(attempt int, err error)

// DefaultRetryDelays returns the backoff delays for embedding retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// EmbedWithRetry calls embed, retrying once per entry in delays after
// waiting that long. EINVALID errors are not retried.
func EmbedWithRetry(ctx context.Context, text string, embed EmbedFunc, onRetry RetryFunc, delays []time.Duration) ([]float64, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		vec, err := embed(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || locqa.ErrorCode(err) == locqa.EINVALID {
			break
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if onRetry != nil {
			onRetry(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
