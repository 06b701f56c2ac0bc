package ai

import "strings"

// VectorDim is the fixed length of every text vector. The vector index and
// all similarity math assume exactly this dimension.
const VectorDim = 100

// vectorNorm divides every bucket after accumulation.
const vectorNorm = 1000

// TextVector folds a string into a fixed-length bag-of-characters vector:
// the i-th rune's code point is added into bucket i mod 100, then every
// bucket is divided by 1000. Deterministic, case-insensitive, and pure.
//
// This is not a semantic embedding: collisions are common and similar
// meanings do not land near each other. It is kept as-is because stored
// vectors and search results depend on it.
func TextVector(text string) []float64 {
	vec := make([]float64, VectorDim)
	i := 0
	for _, r := range strings.ToLower(text) {
		vec[i%VectorDim] += float64(r)
		i++
	}
	for j := range vec {
		vec[j] /= vectorNorm
	}
	return vec
}
