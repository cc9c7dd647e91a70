package cocktail

import (
	"math"
	"testing"
)

func TestDomainSimilarity(t *testing.T) {
	type args struct {
		a      map[string]int
		b      map[string]int
		metric Metric
	}
	tests := []struct {
		name       string
		args       args
		wantValue  float64
		wantShared int
	}{
		{
			"weighted jaccard partial overlap",
			args{
				a:      map[string]int{"Pfam:A": 2, "Pfam:B": 1},
				b:      map[string]int{"Pfam:A": 1, "Pfam:C": 1},
				metric: WeightedJaccard,
			},
			// min sum 1, max sum 2+1+1
			0.25,
			1,
		},
		{
			"presence jaccard partial overlap",
			args{
				a:      map[string]int{"Pfam:A": 2, "Pfam:B": 1},
				b:      map[string]int{"Pfam:A": 1, "Pfam:C": 1},
				metric: Jaccard,
			},
			// 1 shared over 3 in the union. multiplicity is ignored
			1.0 / 3.0,
			1,
		},
		{
			"weighted jaccard disjoint",
			args{
				a:      map[string]int{"Pfam:A": 3},
				b:      map[string]int{"Pfam:B": 2},
				metric: WeightedJaccard,
			},
			0,
			0,
		},
		{
			"both empty",
			args{
				a:      map[string]int{},
				b:      map[string]int{},
				metric: WeightedJaccard,
			},
			0,
			0,
		},
		{
			"one empty",
			args{
				a:      map[string]int{"Pfam:A": 1},
				b:      map[string]int{},
				metric: Jaccard,
			},
			0,
			0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DomainSimilarity(tt.args.a, tt.args.b, tt.args.metric)
			if math.Abs(got.Value-tt.wantValue) > 1e-9 {
				t.Errorf("DomainSimilarity() Value = %v, want %v", got.Value, tt.wantValue)
			}
			if got.SharedDistinct != tt.wantShared {
				t.Errorf("DomainSimilarity() SharedDistinct = %v, want %v", got.SharedDistinct, tt.wantShared)
			}
		})
	}
}

// any non-empty profile compared with itself is identical under both metrics
func TestDomainSimilarity_selfIdentity(t *testing.T) {
	profile := map[string]int{"Pfam:A": 3, "Pfam:B": 1, "Unknown:X": 7}

	for _, metric := range []Metric{WeightedJaccard, Jaccard} {
		got := DomainSimilarity(profile, profile, metric)
		if got.Value != 1 {
			t.Errorf("DomainSimilarity(A, A, %s) = %v, want 1", metric, got.Value)
		}
		if got.SharedDistinct != 3 {
			t.Errorf("DomainSimilarity(A, A, %s) SharedDistinct = %d, want 3", metric, got.SharedDistinct)
		}
	}
}

func TestDomainSimilarity_symmetry(t *testing.T) {
	a := map[string]int{"Pfam:A": 2, "Pfam:B": 5}
	b := map[string]int{"Pfam:B": 1, "Pfam:C": 4}

	for _, metric := range []Metric{WeightedJaccard, Jaccard} {
		ab := DomainSimilarity(a, b, metric)
		ba := DomainSimilarity(b, a, metric)
		if ab != ba {
			t.Errorf("DomainSimilarity not symmetric under %s: %v vs %v", metric, ab, ba)
		}
	}
}
