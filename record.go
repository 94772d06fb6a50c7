package locqa

import "context"

// Record is a passage paired with its embedding vector.
type Record struct {
	ID      int64     `json:"id"`
	Context string    `json:"context"`
	Vector  []float64 `json:"vector"`
}

// Dimension returns the length of the record's vector.
func (r *Record) Dimension() int {
	return len(r.Vector)
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Context == "" {
		return Errorf(EINVALID, "record context required")
	}
	if len(r.Vector) == 0 {
		return Errorf(EINVALID, "record vector required")
	}
	return nil
}

// Store is an ordered, read-only collection of records that all share one
// dimension. A Store is safe for concurrent use once constructed.
type Store struct {
	records   []*Record
	dimension int
}

// NewStore returns a Store holding records in the given order.
// Returns EINVALID if any record is invalid or dimensions differ.
func NewStore(records []*Record) (*Store, error) {
	s := &Store{records: make([]*Record, 0, len(records))}
	for i, r := range records {
		if r == nil {
			return nil, Errorf(EINVALID, "record %d is nil", i)
		}
		if err := r.Validate(); err != nil {
			return nil, Errorf(EINVALID, "record %d: %s", i, ErrorMessage(err))
		}
		if i == 0 {
			s.dimension = r.Dimension()
		} else if r.Dimension() != s.dimension {
			return nil, Errorf(EINVALID, "record %d has dimension %d, want %d", i, r.Dimension(), s.dimension)
		}
		s.records = append(s.records, r)
	}
	return s, nil
}

// Len returns the number of records in the store. A nil store is empty.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// Dimension returns the shared vector dimension, or 0 for an empty store.
func (s *Store) Dimension() int {
	if s == nil {
		return 0
	}
	return s.dimension
}

// Records returns the records in store order. The returned slice is a copy;
// the records themselves must not be modified.
func (s *Store) Records() []*Record {
	if s == nil {
		return nil
	}
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}

// Pair is a single (question, context) entry of a source dataset.
type Pair struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

// DatasetReader reads the source dataset a store is built from.
type DatasetReader interface {
	// ReadPairs returns every pair in dataset order.
	ReadPairs(ctx context.Context) ([]Pair, error)
}

// StoreBuilder computes a Store from source pairs.
type StoreBuilder interface {
	// Build embeds every pair's context and returns the resulting store.
	// Returns EINVALID if pairs is empty or embedding dimensions disagree.
	Build(ctx context.Context, pairs []Pair) (*Store, error)
}

// RecordStore persists a Store. The persisted artifact is written once and
// is read-only afterwards.
type RecordStore interface {
	// Exists reports whether a complete persisted artifact is present.
	Exists(ctx context.Context) (bool, error)

	// Persist durably writes every record of the store. A crash while
	// persisting must not leave an artifact that Exists reports as present.
	Persist(ctx context.Context, store *Store) error

	// Load reads all records back in insertion order.
	// Returns ENOTFOUND if no artifact exists and ECORRUPT if it cannot be parsed.
	Load(ctx context.Context) (*Store, error)
}
