package fingerprint

import "github.com/cespare/xxhash/v2"

// mask63 clears the top bit so fingerprints fit signed 64-bit storage
// columns uniformly.
const mask63 = 1<<63 - 1

// Sum hashes the raw document text with xxhash64 and returns the lower 63
// bits. The value is used for equality comparison only, never for ordering.
// Collision-free in practice for corpora below ~100k documents.
func Sum(text string) int64 {
	return int64(xxhash.Sum64String(text) & mask63)
}

// Hash64 exposes Sum behind the corpus.Fingerprinter interface.
type Hash64 struct{}

func (Hash64) Sum(text string) int64 { return Sum(text) }
