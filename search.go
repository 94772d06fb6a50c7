package locqa

import "math"

// Metric names a distance function used by NearestBy.
type Metric string

// Supported metrics.
const (
	MetricEuclidean Metric = "euclidean"
	MetricCosine    Metric = "cosine"
)

// Validate returns EINVALID for an unknown metric.
func (m Metric) Validate() error {
	switch m {
	case MetricEuclidean, MetricCosine:
		return nil
	}
	return Errorf(EINVALID, "unknown metric %q", string(m))
}

// Distance returns the distance between a and b under the metric.
// Both vectors must have the same length.
func (m Metric) Distance(a, b []float64) float64 {
	if m == MetricCosine {
		return CosineDistance(a, b)
	}
	return EuclideanDistance(a, b)
}

// EuclideanDistance returns sqrt(Σ (a_i - b_i)^2).
func EuclideanDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// CosineDistance returns 1 minus the cosine similarity of a and b.
// A zero-magnitude vector has distance 1 to everything.
func CosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

// Match is the outcome of a nearest-neighbour search.
type Match struct {
	Record   *Record `json:"record"`
	Distance float64 `json:"distance"`
}

// Nearest returns the record closest to query by Euclidean distance.
func Nearest(query []float64, store *Store) (*Match, error) {
	return NearestBy(query, store, MetricEuclidean)
}

// NearestBy scans every record and returns the one with the minimum distance
// to query. Ties go to the record that comes first in store order.
// Returns ENOTFOUND for an empty store and EINVALID on dimension mismatch.
func NearestBy(query []float64, store *Store, metric Metric) (*Match, error) {
	if err := metric.Validate(); err != nil {
		return nil, err
	}
	if store == nil || store.Len() == 0 {
		return nil, Errorf(ENOTFOUND, "store has no records")
	}
	if len(query) != store.Dimension() {
		return nil, Errorf(EINVALID, "query has dimension %d, store has %d", len(query), store.Dimension())
	}

	var best *Match
	for _, r := range store.records {
		d := metric.Distance(query, r.Vector)
		// NaN never wins; a store of only NaN distances falls back to the first record.
		if best == nil || d < best.Distance || (math.IsNaN(best.Distance) && !math.IsNaN(d)) {
			best = &Match{Record: r, Distance: d}
		}
	}
	return best, nil
}
