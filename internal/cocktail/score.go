package cocktail

import (
	"fmt"
	"math"
	"sort"
)

// CompatibilityFactor is one explained contribution to a pair's score
type CompatibilityFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Reason       string  `json:"reason"`
}

// PairDetails is the full scoring result for one pair of phages.
// Every rule is symmetric, so PairDetails is symmetric under swapping the pair
type PairDetails struct {
	// Score is in [-1,1]
	Score float64 `json:"score"`

	// Compatible is whether Score cleared the configured threshold
	Compatible bool `json:"compatible"`

	DomainSimilarity      float64 `json:"domainSimilarity"`
	SharedDistinctDomains int     `json:"sharedDistinctDomains"`

	// Factors that contributed to the score, sorted by descending |contribution|
	Factors []CompatibilityFactor `json:"factors"`
}

// rule is one pure compatibility rule. It returns nil when it doesn't apply
type rule func(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor

// rules is the fixed policy table. Every rule is evaluated on every
// non-self pair, in this order, and the contributions are summed
var rules = []rule{
	bothLyticRule,
	anyTemperateRule,
	bothTemperateRule,
	lysisTimingRule,
	sieGeneRule,
	immunityConflictRule,
	receptorOverlapRule,
	hostRangeRule,
	domainSimilarityRule,
	temperateSimilarityRule,
}

func bothLyticRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.Lifecycle != Lytic || b.Lifecycle != Lytic {
		return nil
	}
	return &CompatibilityFactor{
		Name:         "both lytic",
		Contribution: 0.18,
		Reason:       "both phages are strictly lytic and cannot lysogenize the host",
	}
}

func anyTemperateRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.Lifecycle != Temperate && b.Lifecycle != Temperate {
		return nil
	}
	return &CompatibilityFactor{
		Name:         "temperate lifecycle",
		Contribution: -0.12,
		Reason:       "a temperate phage can lysogenize and shield the host from co-infection",
	}
}

func bothTemperateRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.Lifecycle != Temperate || b.Lifecycle != Temperate {
		return nil
	}
	return &CompatibilityFactor{
		Name:         "both temperate",
		Contribution: -0.18,
		Reason:       "two temperate phages compound the lysogeny risk",
	}
}

func lysisTimingRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.LysisTiming == TimingUnknown || b.LysisTiming == TimingUnknown {
		return nil
	}
	if a.LysisTiming != b.LysisTiming {
		first, second := orderedPair(string(a.LysisTiming), string(b.LysisTiming))
		return &CompatibilityFactor{
			Name:         "staggered lysis timing",
			Contribution: 0.20,
			Reason:       fmt.Sprintf("%s and %s lysis stagger the kill window", first, second),
		}
	}
	return &CompatibilityFactor{
		Name:         "matching lysis timing",
		Contribution: -0.08,
		Reason:       fmt.Sprintf("both lyse %s, competing for the same window", a.LysisTiming),
	}
}

func sieGeneRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	switch {
	case a.HasSieGenes && b.HasSieGenes:
		return &CompatibilityFactor{
			Name:         "mutual superinfection exclusion",
			Contribution: -0.30,
			Reason: fmt.Sprintf(
				"both phages carry Sie genes (%d and %d) and can block each other",
				min(a.SieGeneCount, b.SieGeneCount), max(a.SieGeneCount, b.SieGeneCount),
			),
		}
	case a.HasSieGenes || b.HasSieGenes:
		return &CompatibilityFactor{
			Name:         "one-sided superinfection exclusion",
			Contribution: -0.15,
			Reason:       "one phage carries Sie genes and may lock the other out",
		}
	}
	return nil
}

func immunityConflictRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if !a.HasImmunityRegion || !b.HasImmunityRegion {
		return nil
	}
	if a.Lifecycle != Temperate || b.Lifecycle != Temperate {
		return nil
	}
	return &CompatibilityFactor{
		Name:         "immunity conflict",
		Contribution: -0.25,
		Reason:       "two temperate phages with immunity regions can repress each other",
	}
}

func receptorOverlapRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if len(a.ReceptorHints) == 0 || len(b.ReceptorHints) == 0 {
		return nil
	}

	hintsB := make(map[string]bool, len(b.ReceptorHints))
	for _, hint := range b.ReceptorHints {
		hintsB[hint] = true
	}
	for _, hint := range a.ReceptorHints {
		if hintsB[hint] {
			return &CompatibilityFactor{
				Name:         "shared receptor",
				Contribution: -0.20,
				Reason:       fmt.Sprintf("both target %s, so receptor-loss resistance blocks both", hint),
			}
		}
	}

	return &CompatibilityFactor{
		Name:         "distinct receptors",
		Contribution: 0.15,
		Reason:       "disjoint receptor targets make simultaneous resistance unlikely",
	}
}

func hostRangeRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.Host == "" || b.Host == "" || a.Host == b.Host {
		return nil
	}
	first, second := orderedPair(a.Host, b.Host)
	return &CompatibilityFactor{
		Name:         "complementary hosts",
		Contribution: 0.22,
		Reason:       fmt.Sprintf("different host targets: %s vs %s", first, second),
	}
}

// orderedPair sorts two labels so reason text reads the same no matter
// which phage came first in the pair
func orderedPair(x, y string) (string, string) {
	if x > y {
		return y, x
	}
	return x, y
}

// domain-similarity band cutoffs
const (
	highSimilarityCutoff = 0.35
	lowSimilarityCutoff  = 0.12
)

func domainSimilarityRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	switch {
	case sim.Value >= highSimilarityCutoff:
		penalty := clamp(sim.Value*0.9, 0.15, 0.75)
		return &CompatibilityFactor{
			Name:         "high domain similarity",
			Contribution: -penalty,
			Reason: fmt.Sprintf(
				"%.0f%% domain overlap suggests shared resistance mechanisms",
				sim.Value*100,
			),
		}
	case sim.Value <= lowSimilarityCutoff:
		return &CompatibilityFactor{
			Name:         "distinct domain profiles",
			Contribution: 0.16,
			Reason:       "largely disjoint protein domains imply independent infection machinery",
		}
	}
	return &CompatibilityFactor{
		Name:         "moderate domain similarity",
		Contribution: 0.04,
		Reason:       "partially overlapping domain profiles",
	}
}

func temperateSimilarityRule(a, b *PhageFeatures, sim Similarity) *CompatibilityFactor {
	if a.Lifecycle != Temperate && b.Lifecycle != Temperate {
		return nil
	}
	if sim.Value < 0.5 {
		return nil
	}
	return &CompatibilityFactor{
		Name:         "temperate near-relative",
		Contribution: -0.20,
		Reason:       "a temperate phage this similar to its partner risks homoimmunity",
	}
}

// Score applies the full rule table to a pair of phages. A self-pair
// short-circuits to a perfect score with a single identity factor.
// The score is clamped to [-1,1] and never errors: missing annotation
// simply disables the rules that need it
func Score(a, b *PhageFeatures, metric Metric, threshold float64) PairDetails {
	if a.ID == b.ID {
		return PairDetails{
			Score:                 1,
			Compatible:            true,
			DomainSimilarity:      1,
			SharedDistinctDomains: a.DistinctDomains,
			Factors: []CompatibilityFactor{
				{Name: "self", Contribution: 1, Reason: "a phage is always compatible with itself"},
			},
		}
	}

	sim := DomainSimilarity(a.DomainCounts, b.DomainCounts, metric)

	sum := 0.0
	var factors []CompatibilityFactor
	for _, r := range rules {
		if factor := r(a, b, sim); factor != nil {
			sum += factor.Contribution
			factors = append(factors, *factor)
		}
	}

	// stable sort keeps rule order between equal magnitudes
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Contribution) > math.Abs(factors[j].Contribution)
	})

	score := clamp(sum, -1, 1)
	return PairDetails{
		Score:                 score,
		Compatible:            score >= threshold,
		DomainSimilarity:      sim.Value,
		SharedDistinctDomains: sim.SharedDistinct,
		Factors:               factors,
	}
}
