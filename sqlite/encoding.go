package sqlite

import (
	"encoding/binary"
	"math"

	"github.com/fwojciec/locqa"
)

// encodeVector encodes a vector as little-endian IEEE 754 float64 values
// without a length prefix.
func encodeVector(vec []float64) []byte {
	b := make([]byte, len(vec)*8)
	for i, v := range vec {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(v))
	}
	return b
}

// decodeVector decodes a blob produced by encodeVector.
// Returns ECORRUPT unless the blob holds exactly dim values.
func decodeVector(b []byte, dim int) ([]float64, error) {
	if len(b) != dim*8 {
		return nil, locqa.Errorf(locqa.ECORRUPT, "embedding blob has %d bytes, want %d", len(b), dim*8)
	}
	vec := make([]float64, dim)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
	}
	return vec, nil
}
