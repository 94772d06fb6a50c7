// Package bloom provides passage deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter over passage texts.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected passages
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a passage to the filter.
func (f *Filter) Add(passage string) {
	f.f.AddString(passage)
}

// Test returns true if the passage might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(passage string) bool {
	return f.f.TestString(passage)
}

// TestAndAdd reports whether the passage might already be present and adds it.
func (f *Filter) TestAndAdd(passage string) bool {
	return f.f.TestAndAddString(passage)
}

// EstimatedCount returns the approximate number of passages in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
