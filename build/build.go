// Package build computes vector stores from source datasets.
// It embeds passages concurrently, optionally rate limited, and keeps the
// output in dataset order.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/locqa"
	"github.com/fwojciec/locqa/bloom"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DefaultConcurrency is used when Builder.Concurrency is not positive.
const DefaultConcurrency = 4

var _ locqa.StoreBuilder = (*Builder)(nil)

// Builder embeds dataset passages into a locqa.Store.
type Builder struct {
	Embedder locqa.Embedder

	// TokenCounter, if set, is used to report tokens embedded.
	TokenCounter locqa.TokenCounter

	// Limiter, if set, throttles embedding calls.
	Limiter *rate.Limiter

	Concurrency int

	// Dedupe embeds each distinct context once instead of once per pair.
	Dedupe bool

	// RetryDelays are the waits between embedding attempts for a passage.
	// Nil disables retries.
	RetryDelays []time.Duration

	// Progress, if set, receives events as the build proceeds.
	Progress ProgressFunc

	// Logger, if set, receives warnings that do not fail the build.
	Logger *slog.Logger

	mu sync.Mutex
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressEmbedded
	ProgressFinished
	ProgressRetried
)

// ProgressEvent reports progress during a build.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Skipped   int
	Tokens    int

	// Passage, Attempt and Err describe a ProgressRetried event.
	Passage int
	Attempt int
	Err     error
}

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(event ProgressEvent)

// NewLimiter returns a limiter allowing rps embedding calls per second,
// or nil for rps <= 0.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Build embeds the context of every pair and returns the resulting store.
// Returns EINVALID for an empty dataset, an empty context, or embeddings of
// differing dimension.
func (b *Builder) Build(ctx context.Context, pairs []locqa.Pair) (*locqa.Store, error) {
	if b.Embedder == nil {
		return nil, locqa.Errorf(locqa.EINTERNAL, "builder has no embedder")
	}
	if len(pairs) == 0 {
		return nil, locqa.Errorf(locqa.EINVALID, "source dataset is empty")
	}

	passages, skipped, err := b.passages(pairs)
	if err != nil {
		return nil, err
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(passages)
	vectors := make([][]float64, total)
	var completed, tokens, dimension atomic.Int64

	b.report(ProgressEvent{Type: ProgressStarted, Total: total, Skipped: skipped})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, text := range passages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if b.Limiter != nil {
				if err := b.Limiter.Wait(gctx); err != nil {
					return err
				}
			}
			vec, err := EmbedWithRetry(gctx, text, b.Embedder.Embed, func(attempt int, err error) {
				b.report(ProgressEvent{Type: ProgressRetried, Passage: i, Attempt: attempt, Err: err})
			}, b.RetryDelays)
			if err != nil {
				return fmt.Errorf("embed passage %d: %w", i, err)
			}
			if len(vec) == 0 {
				return locqa.Errorf(locqa.EINVALID, "passage %d has an empty embedding", i)
			}
			// The first embedding to arrive fixes the store dimension.
			if d := int64(len(vec)); !dimension.CompareAndSwap(0, d) && dimension.Load() != d {
				return locqa.Errorf(locqa.EINVALID, "passage %d has embedding dimension %d, want %d", i, d, dimension.Load())
			}
			vectors[i] = vec

			if b.TokenCounter != nil {
				n, err := b.TokenCounter.CountTokens(gctx, text)
				if err != nil {
					b.logger().Warn("count tokens", "passage", i, "err", err)
				} else {
					tokens.Add(int64(n))
				}
			}

			b.report(ProgressEvent{
				Type:      ProgressEmbedded,
				Completed: int(completed.Add(1)),
				Total:     total,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	records := make([]*locqa.Record, total)
	for i, vec := range vectors {
		records[i] = &locqa.Record{Context: passages[i], Vector: vec}
	}

	b.report(ProgressEvent{
		Type:      ProgressFinished,
		Completed: total,
		Total:     total,
		Skipped:   skipped,
		Tokens:    int(tokens.Load()),
	})

	return locqa.NewStore(records)
}

// passages returns the contexts to embed in dataset order and how many
// pairs were skipped as duplicates.
func (b *Builder) passages(pairs []locqa.Pair) ([]string, int, error) {
	var filter *bloom.Filter
	var seen map[uint64][]string
	if b.Dedupe {
		filter = bloom.NewFilter(uint(len(pairs)), 0.001)
		seen = make(map[uint64][]string, len(pairs))
	}

	out := make([]string, 0, len(pairs))
	skipped := 0
	for i, p := range pairs {
		if strings.TrimSpace(p.Context) == "" {
			return nil, 0, locqa.Errorf(locqa.EINVALID, "pair %d: context required", i)
		}
		if b.Dedupe {
			h := xxhash.Sum64String(p.Context)
			// A negative from the filter is definite, so the exact check is
			// only needed when it says the passage may have been seen.
			if filter.TestAndAdd(p.Context) && slices.Contains(seen[h], p.Context) {
				skipped++
				continue
			}
			seen[h] = append(seen[h], p.Context)
		}
		out = append(out, p.Context)
	}
	return out, skipped, nil
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.Logger
}

func (b *Builder) report(event ProgressEvent) {
	if b.Progress == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Progress(event)
}

// FormatTokens formats a token count for display, rounding to thousands.
func FormatTokens(tokens int) string {
	if tokens < 1000 {
		return fmt.Sprintf("~%d tokens", tokens)
	}
	return fmt.Sprintf("~%dk tokens", (tokens+500)/1000)
}
