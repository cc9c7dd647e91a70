package cocktail

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPanel() []PhageFeatures {
	return []PhageFeatures{
		lyticPhage("p1", "E. coli", map[string]int{"Pfam:A": 2}),
		lyticPhage("p2", "K. pneumoniae", map[string]int{"Pfam:B": 1}),
		riskyTemperate("p3", "S. aureus", map[string]int{"Pfam:A": 2, "Pfam:C": 1}),
	}
}

func TestBuildMatrix(t *testing.T) {
	panel := testPanel()
	matrix := BuildMatrix(panel, WeightedJaccard, 0.0)

	require.Len(t, matrix.Pairs, len(panel))
	assert.Equal(t, []string{"p1", "p2", "p3"}, matrix.PhageIDs)

	for r := range matrix.Pairs {
		require.Len(t, matrix.Pairs[r], len(panel))
		for c := range matrix.Pairs[r] {
			pair := matrix.Pairs[r][c]
			if r == c {
				// diagonal is the self-pair identity
				assert.Equal(t, 1.0, pair.Score)
				assert.True(t, pair.Compatible)
				assert.Equal(t, 1.0, pair.DomainSimilarity)
				continue
			}
			assert.Equal(t, pair.Score, matrix.Pairs[c][r].Score, "matrix asymmetric at (%d,%d)", r, c)
		}
	}
}

// identical inputs always produce identical matrices
func TestBuildMatrix_deterministic(t *testing.T) {
	first := BuildMatrix(testPanel(), WeightedJaccard, 0.0)
	second := BuildMatrix(testPanel(), WeightedJaccard, 0.0)

	if !reflect.DeepEqual(first, second) {
		t.Error("BuildMatrix() is not deterministic over identical inputs")
	}
}

func TestMatrixCache(t *testing.T) {
	cache := NewMatrixCache()
	panel := testPanel()

	first := cache.Matrix(panel, WeightedJaccard, 0.0)
	assert.Equal(t, 1, cache.Len())

	// a repeat call hits the cache and returns the identical matrix
	second := cache.Matrix(panel, WeightedJaccard, 0.0)
	assert.Equal(t, 1, cache.Len())
	if !reflect.DeepEqual(first, second) {
		t.Error("cached matrix differs from the first build")
	}

	// the cached matrix matches a direct build
	direct := BuildMatrix(panel, WeightedJaccard, 0.0)
	if !reflect.DeepEqual(first, direct) {
		t.Error("cached matrix differs from a direct build")
	}

	// a different config is a different key
	cache.Matrix(panel, Jaccard, 0.0)
	assert.Equal(t, 2, cache.Len())
	cache.Matrix(panel, WeightedJaccard, 0.15)
	assert.Equal(t, 3, cache.Len())

	cache.Invalidate(panel, WeightedJaccard, 0.0)
	assert.Equal(t, 2, cache.Len())

	cache.Purge()
	assert.Equal(t, 0, cache.Len())
}

// a changed feature changes the cache key
func TestMatrixCache_featureSensitivity(t *testing.T) {
	cache := NewMatrixCache()

	panel := testPanel()
	cache.Matrix(panel, WeightedJaccard, 0.0)

	edited := testPanel()
	edited[0].HasImmunityRegion = true
	cache.Matrix(edited, WeightedJaccard, 0.0)

	assert.Equal(t, 2, cache.Len())

	// the Sie flag is keyed on its own: a caller-built panel can set it
	// independently of the count, and the scorer reads only the flag
	flagged := testPanel()
	flagged[0].HasSieGenes = true
	cache.Matrix(flagged, WeightedJaccard, 0.0)

	assert.Equal(t, 3, cache.Len())
}

// adjacent string fields can't be shuffled into a colliding key
func TestMatrixCache_noFieldCollisions(t *testing.T) {
	cache := NewMatrixCache()

	first := []PhageFeatures{{ID: "p1", Name: "alpha|E. coli", Lifecycle: Lytic}}
	second := []PhageFeatures{{ID: "p1", Name: "alpha", Host: "E. coli", Lifecycle: Lytic}}

	cache.Matrix(first, WeightedJaccard, 0.0)
	cache.Matrix(second, WeightedJaccard, 0.0)
	assert.Equal(t, 2, cache.Len())

	// receptor hints hash per-hint, not as one joined string
	joined := []PhageFeatures{{ID: "p2", ReceptorHints: []string{"a,b"}}}
	split := []PhageFeatures{{ID: "p2", ReceptorHints: []string{"a", "b"}}}

	cache.Matrix(joined, WeightedJaccard, 0.0)
	cache.Matrix(split, WeightedJaccard, 0.0)
	assert.Equal(t, 4, cache.Len())
}
