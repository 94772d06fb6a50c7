package locqa_test

import (
	"testing"

	"github.com/fwojciec/locqa"
	"github.com/stretchr/testify/assert"
)

func TestPickExample(t *testing.T) {
	t.Parallel()

	t.Run("is deterministic for a seed", func(t *testing.T) {
		t.Parallel()

		for seed := uint64(0); seed < 20; seed++ {
			assert.Equal(t,
				locqa.PickExample(seed, locqa.DefaultExamples),
				locqa.PickExample(seed, locqa.DefaultExamples),
			)
		}
	})

	t.Run("picks from the pool", func(t *testing.T) {
		t.Parallel()

		pool := []string{"a", "b", "c"}
		seen := map[string]bool{}
		for seed := uint64(0); seed < 100; seed++ {
			q := locqa.PickExample(seed, pool)
			assert.Contains(t, pool, q)
			seen[q] = true
		}
		assert.Len(t, seen, 3)
	})

	t.Run("returns empty string for empty pool", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, locqa.PickExample(42, nil))
	})
}
