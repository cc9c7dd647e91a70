package cocktail

import (
	"fmt"
	"sort"
)

// CocktailSelection is the result of a greedy cocktail build
type CocktailSelection struct {
	// Chosen phage indices into the input panel, in selection order
	Chosen []int `json:"chosen"`

	// Coverage is the sorted list of covered target hosts
	Coverage []string `json:"coverage"`

	// CoveragePercent is covered hosts over target hosts, 0-100
	CoveragePercent float64 `json:"coveragePercent"`

	// AvgCompat is the mean pairwise score among the chosen phages,
	// 0 when fewer than two are chosen
	AvgCompat float64 `json:"avgCompat"`

	// Rationale explains each selection step in order
	Rationale []string `json:"rationale"`

	// TargetCount is the number of target hosts the build aimed to cover
	TargetCount int `json:"targetCount"`
}

// candidate is one phage under consideration during a selection step
type candidate struct {
	index     int
	gain      int
	avgCompat float64
	composite float64
}

// better is the selection comparator: a candidate wins only with a
// strictly greater composite, so ties keep the earlier index. This
// tie-break is load-bearing for determinism, not an iteration accident
func better(challenger, incumbent *candidate) bool {
	if incumbent == nil {
		return true
	}
	return challenger.composite > incumbent.composite
}

// SelectCocktail greedily picks up to maxSize phages maximizing target-host
// coverage. Every phage added must clear the compatibility threshold against
// every phage already in the set (a clique constraint, not an average), so
// the greedy result is an approximation: deterministic and explainable, not
// globally optimal. A partial result is final when no candidate qualifies
func SelectCocktail(
	matrix CompatibilityMatrix,
	features []PhageFeatures,
	targetHosts []string,
	maxSize int,
	threshold float64,
) CocktailSelection {
	targets := make(map[string]bool, len(targetHosts))
	for _, host := range targetHosts {
		targets[host] = true
	}

	var chosen []int
	covered := make(map[string]bool)
	var rationale []string

	for len(chosen) < maxSize && len(covered) < len(targets) {
		var best *candidate

		for i := range features {
			if containsIndex(chosen, i) {
				continue
			}

			// clique constraint: the candidate must individually clear the
			// threshold against every phage already chosen
			qualified := true
			for _, j := range chosen {
				if matrix.Pairs[i][j].Score < threshold {
					qualified = false
					break
				}
			}
			if !qualified {
				continue
			}

			gain := 0
			if host := features[i].Host; host != "" && targets[host] && !covered[host] {
				gain = 1
			}
			if gain == 0 {
				continue
			}

			avg := 0.0
			if len(chosen) > 0 {
				for _, j := range chosen {
					avg += matrix.Pairs[i][j].Score
				}
				avg /= float64(len(chosen))
			}

			c := candidate{
				index:     i,
				gain:      gain,
				avgCompat: avg,
				composite: float64(gain) + 0.5*avg,
			}
			if better(&c, best) {
				best = &c
			}
		}

		if best == nil {
			break
		}

		chosen = append(chosen, best.index)
		if host := features[best.index].Host; host != "" && targets[host] {
			covered[host] = true
		}
		rationale = append(rationale, fmt.Sprintf(
			"added %s: +%d new host(s), avg compatibility %.2f with the set so far",
			phageLabel(features[best.index]), best.gain, best.avgCompat,
		))
	}

	coverage := make([]string, 0, len(covered))
	for host := range covered {
		coverage = append(coverage, host)
	}
	sort.Strings(coverage)

	coveragePercent := 0.0
	if len(targets) > 0 {
		coveragePercent = float64(len(coverage)) / float64(len(targets)) * 100
	}

	return CocktailSelection{
		Chosen:          chosen,
		Coverage:        coverage,
		CoveragePercent: coveragePercent,
		AvgCompat:       setAvgCompat(matrix, chosen),
		Rationale:       rationale,
		TargetCount:     len(targets),
	}
}

// setAvgCompat is the mean score over all unordered pairs in the set,
// 0 when the set has fewer than two members
func setAvgCompat(matrix CompatibilityMatrix, chosen []int) float64 {
	if len(chosen) < 2 {
		return 0
	}

	sum, pairs := 0.0, 0
	for i := 0; i < len(chosen); i++ {
		for j := i + 1; j < len(chosen); j++ {
			sum += matrix.Pairs[chosen[i]][chosen[j]].Score
			pairs++
		}
	}
	return sum / float64(pairs)
}

func containsIndex(indices []int, i int) bool {
	for _, j := range indices {
		if j == i {
			return true
		}
	}
	return false
}

// phageLabel is the phage's name, falling back to its id
func phageLabel(f PhageFeatures) string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}
