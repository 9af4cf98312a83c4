// Package hash provides xxHash64 digests over numeric series.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hasher accumulates float and integer series into a single xxHash64 digest.
//
// Every series is prefixed with its length so that ([1], [2]) and ([1, 2])
// produce different digests. A Hasher is not safe for concurrent use.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// New creates an empty Hasher.
func New() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// Floats mixes the IEEE-754 bits of values into the digest.
func (h *Hasher) Floats(values []float64) {
	h.word(uint64(len(values)))
	for _, v := range values {
		h.word(math.Float64bits(v))
	}
}

// Ints mixes values into the digest.
func (h *Hasher) Ints(values []int64) {
	h.word(uint64(len(values)))
	for _, v := range values {
		h.word(uint64(v))
	}
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

func (h *Hasher) word(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])
}

// Floats returns the digest of the given float series.
func Floats(series ...[]float64) uint64 {
	h := New()
	for _, s := range series {
		h.Floats(s)
	}

	return h.Sum64()
}
