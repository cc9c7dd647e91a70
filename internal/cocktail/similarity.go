package cocktail

// Metric selects how two domain-count profiles are compared
type Metric string

const (
	// WeightedJaccard is the ratio of the element-wise minimum sum to the
	// element-wise maximum sum over two domain-count multisets
	WeightedJaccard Metric = "weightedJaccard"

	// Jaccard is plain presence/absence Jaccard over the domain keys
	Jaccard Metric = "jaccard"
)

// Similarity is the result of comparing two domain-count profiles
type Similarity struct {
	// Value is in [0,1]
	Value float64 `json:"value"`

	// SharedDistinct is the number of domain keys present in both profiles,
	// identical under either metric
	SharedDistinct int `json:"sharedDistinct"`
}

// DomainSimilarity compares two domain-count profiles under the metric.
// Empty profiles compare as zero similarity
func DomainSimilarity(a, b map[string]int, metric Metric) Similarity {
	shared := 0
	for key := range a {
		if b[key] > 0 {
			shared++
		}
	}

	var value float64
	switch metric {
	case Jaccard:
		union := len(a)
		for key := range b {
			if a[key] == 0 {
				union++
			}
		}
		if union > 0 {
			value = float64(shared) / float64(union)
		}
	default: // WeightedJaccard
		minSum, maxSum := 0, 0
		for key, countA := range a {
			countB := b[key]
			minSum += min(countA, countB)
			maxSum += max(countA, countB)
		}
		for key, countB := range b {
			if a[key] == 0 {
				maxSum += countB
			}
		}
		if maxSum > 0 {
			value = float64(minSum) / float64(maxSum)
		}
	}

	return Similarity{
		Value:          clamp(value, 0, 1),
		SharedDistinct: shared,
	}
}

// clamp bounds v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
