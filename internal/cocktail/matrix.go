package cocktail

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// CompatibilityMatrix is the n x n grid of pair scores for a phage panel.
// The diagonal is fixed to the self-pair identity
type CompatibilityMatrix struct {
	// PhageIDs are the panel's phage ids, in input order
	PhageIDs []string `json:"phageIds"`

	// Pairs[r][c] is the scoring detail for phage r versus phage c
	Pairs [][]PairDetails `json:"pairs"`
}

// BuildMatrix scores every ordered pair of phages. It is pure and
// deterministic: identical inputs always produce an identical matrix
func BuildMatrix(features []PhageFeatures, metric Metric, threshold float64) CompatibilityMatrix {
	n := len(features)

	ids := make([]string, n)
	for i, f := range features {
		ids[i] = f.ID
	}

	pairs := make([][]PairDetails, n)
	for r := 0; r < n; r++ {
		pairs[r] = make([]PairDetails, n)
		for c := 0; c < n; c++ {
			// the diagonal scores a phage against itself and short-circuits
			// to the identity pair
			pairs[r][c] = Score(&features[r], &features[c], metric, threshold)
		}
	}

	return CompatibilityMatrix{PhageIDs: ids, Pairs: pairs}
}

// MatrixCache memoizes built matrices, keyed by a content hash of the
// feature panel and the scoring config. It is caller-owned with explicit
// invalidation: there is no package-level state. Like every other input
// it is not synchronized for concurrent mutation
type MatrixCache struct {
	matrices map[string]CompatibilityMatrix
}

// NewMatrixCache returns an empty cache
func NewMatrixCache() *MatrixCache {
	return &MatrixCache{matrices: make(map[string]CompatibilityMatrix)}
}

// Matrix returns the memoized matrix for the panel and config, building
// and storing it on the first call
func (mc *MatrixCache) Matrix(features []PhageFeatures, metric Metric, threshold float64) CompatibilityMatrix {
	key := panelKey(features, metric, threshold)
	if m, cached := mc.matrices[key]; cached {
		return m
	}

	m := BuildMatrix(features, metric, threshold)
	mc.matrices[key] = m
	return m
}

// Invalidate drops the cached matrix for one panel and config, if present
func (mc *MatrixCache) Invalidate(features []PhageFeatures, metric Metric, threshold float64) {
	delete(mc.matrices, panelKey(features, metric, threshold))
}

// Purge drops every cached matrix
func (mc *MatrixCache) Purge() {
	mc.matrices = make(map[string]CompatibilityMatrix)
}

// Len is the number of cached matrices
func (mc *MatrixCache) Len() int {
	return len(mc.matrices)
}

// panelKey hashes a feature panel plus scoring config into a cache key.
// Every scored field is written, string fields are length-prefixed so
// crafted names can't collide, and domain counts are written in sorted
// key order so map iteration doesn't leak into the key
func panelKey(features []PhageFeatures, metric Metric, threshold float64) string {
	h := sha256.New()
	field := func(s string) {
		fmt.Fprintf(h, "%d:%s", len(s), s)
	}

	field(string(metric))
	fmt.Fprintf(h, "%g\n", threshold)

	for _, f := range features {
		field(f.ID)
		field(f.Name)
		field(f.Host)
		field(string(f.Lifecycle))
		field(string(f.LysisTiming))
		fmt.Fprintf(h, "%t|%d|%t|", f.HasSieGenes, f.SieGeneCount, f.HasImmunityRegion)

		fmt.Fprintf(h, "%d:", len(f.ReceptorHints))
		for _, hint := range f.ReceptorHints {
			field(hint)
		}

		keys := make([]string, 0, len(f.DomainCounts))
		for key := range f.DomainCounts {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Fprintf(h, "%d:", len(keys))
		for _, key := range keys {
			field(key)
			fmt.Fprintf(h, "=%d;", f.DomainCounts[key])
		}
		fmt.Fprintln(h)
	}

	return hex.EncodeToString(h.Sum(nil))
}
