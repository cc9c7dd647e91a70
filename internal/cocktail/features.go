// Package cocktail scores pairwise phage compatibility and selects
// cocktails of phages that cover a set of target hosts
package cocktail

import (
	"sort"
	"strings"
)

// Lifecycle is a phage's replication strategy
type Lifecycle string

const (
	// Lytic phages always kill the host cell
	Lytic Lifecycle = "lytic"

	// Temperate phages can integrate and lysogenize the host
	Temperate Lifecycle = "temperate"

	// LifecycleUnknown is for phages without a recognizable lifecycle annotation
	LifecycleUnknown Lifecycle = "unknown"
)

// LysisTiming is the expression phase of a phage's lysis genes
type LysisTiming string

const (
	// TimingEarly lysis genes sit in the first third of the genome
	TimingEarly LysisTiming = "early"

	// TimingMiddle lysis genes sit in the middle third
	TimingMiddle LysisTiming = "middle"

	// TimingLate lysis genes sit in the last third
	TimingLate LysisTiming = "late"

	// TimingUnknown is for phages without recognizable lysis genes
	TimingUnknown LysisTiming = "unknown"
)

// GeneAnnotation is a single annotated gene on a phage genome.
// Only the name/product text and the gene's position are used
type GeneAnnotation struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Product string `json:"product,omitempty"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// ProteinDomain is a single protein domain called on a phage's proteome
type ProteinDomain struct {
	DomainID    string `json:"domainId"`
	DomainName  string `json:"domainName,omitempty"`
	DomainType  string `json:"domainType,omitempty"`
	Description string `json:"description,omitempty"`
}

// PhageFeatures are the structured compatibility features of a single phage,
// derived once from its gene and domain annotations and read-only thereafter
type PhageFeatures struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Host is the phage's host label. Empty when unannotated
	Host string `json:"host,omitempty"`

	Lifecycle   Lifecycle   `json:"lifecycle"`
	LysisTiming LysisTiming `json:"lysisTiming"`

	// HasSieGenes is whether any superinfection-exclusion gene was annotated
	HasSieGenes  bool `json:"hasSieGenes"`
	SieGeneCount int  `json:"sieGeneCount"`

	HasImmunityRegion bool `json:"hasImmunityRegion"`

	// ReceptorHints are the names of domains that look like host-receptor
	// binding machinery, sorted and duplicate-free
	ReceptorHints []string `json:"receptorHints"`

	// DomainCounts maps a domain key ("type:id") to its occurrence count
	DomainCounts map[string]int `json:"domainCounts"`

	DistinctDomains int `json:"distinctDomains"`
}

// keyword families for lysis-timing inference. A gene's category is decided
// by precedence: a late hit always wins, an early hit is set before a middle
// hit is considered
var (
	earlyLysisKeywords = []string{"holin", "pinholin", "antiholin"}

	middleLysisKeywords = []string{"endolysin", "lysozyme", "lysin", "muramidase", "amidase", "n-acetylmuramoyl"}

	lateLysisKeywords = []string{"spanin", "rz protein", "rz1", "i-spanin", "o-spanin"}
)

// superinfection-exclusion and immunity keyword sets
var (
	sieKeywords = []string{"superinfection exclusion", "superinfection", "sie protein", "sieb", "siea", "exclusion protein", "imm protein"}

	immunityKeywords = []string{"immunity region", "immunity repressor", "ci repressor", "ci protein", "prophage repressor", "immunity protein"}
)

// receptorKeywords flag domains involved in host receptor recognition
var receptorKeywords = []string{"receptor", "tail fiber", "tail fibre", "tail spike", "tailspike", "adhesin", "receptor-binding", "receptor binding", "baseplate"}

// genome position thirds for the final lysis-timing call
const (
	earlyTimingCutoff  = 0.33
	middleTimingCutoff = 0.67
)

// Extract derives the compatibility features of one phage from its summary
// and its gene and domain annotations. Missing optional fields degrade to
// unknown/empty defaults: extraction never fails
func Extract(p PhageInput) PhageFeatures {
	hasSie, sieCount := detectSieGenes(p.Genes)
	counts := buildDomainCounts(p.Domains)

	return PhageFeatures{
		ID:                p.ID,
		Name:              p.Name,
		Host:              p.Host,
		Lifecycle:         normalizeLifecycle(p.Lifecycle),
		LysisTiming:       inferLysisTiming(p.Genes, p.GenomeLength),
		HasSieGenes:       hasSie,
		SieGeneCount:      sieCount,
		HasImmunityRegion: detectImmunityRegion(p.Genes),
		ReceptorHints:     extractReceptorHints(p.Domains),
		DomainCounts:      counts,
		DistinctDomains:   len(counts),
	}
}

// ExtractAll derives features for a slice of phages, preserving input order
func ExtractAll(phages []PhageInput) []PhageFeatures {
	features := make([]PhageFeatures, len(phages))
	for i, p := range phages {
		features[i] = Extract(p)
	}
	return features
}

// normalizeLifecycle maps a free-text lifecycle annotation onto the
// lytic/temperate/unknown triple
func normalizeLifecycle(annotation string) Lifecycle {
	lowered := strings.ToLower(annotation)

	if strings.Contains(lowered, "temperate") || strings.Contains(lowered, "lysogen") {
		return Temperate
	}
	if strings.Contains(lowered, "lytic") {
		return Lytic
	}
	return LifecycleUnknown
}

// geneText is the lowercased name+product text a gene is matched against
func geneText(g GeneAnnotation) string {
	return strings.ToLower(g.Name + " " + g.Product)
}

// containsAny is whether text contains at least one of the keywords
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// inferLysisTiming classifies a phage's lysis timing from its lysis genes.
//
// Per gene the category precedence is: an early-family hit sets early, a
// middle-family hit sets middle only if the category is still unset, and a
// late-family hit unconditionally overrides to late. Every categorized gene
// contributes its midpoint position fraction to an average, and the final
// call is made on that average position alone (early < 0.33, middle < 0.67,
// else late). Returns unknown if no gene matched or genomeLength <= 0
func inferLysisTiming(genes []GeneAnnotation, genomeLength int) LysisTiming {
	if genomeLength <= 0 {
		return TimingUnknown
	}

	fractionSum := 0.0
	matched := 0
	for _, g := range genes {
		text := geneText(g)

		category := TimingUnknown
		if containsAny(text, earlyLysisKeywords) {
			category = TimingEarly
		}
		if category == TimingUnknown && containsAny(text, middleLysisKeywords) {
			category = TimingMiddle
		}
		if containsAny(text, lateLysisKeywords) {
			category = TimingLate
		}

		if category == TimingUnknown {
			continue
		}

		midpoint := float64(g.Start+g.End) / 2.0
		fractionSum += midpoint / float64(genomeLength)
		matched++
	}

	if matched == 0 {
		return TimingUnknown
	}

	avg := fractionSum / float64(matched)
	if avg < earlyTimingCutoff {
		return TimingEarly
	}
	if avg < middleTimingCutoff {
		return TimingMiddle
	}
	return TimingLate
}

// detectSieGenes counts genes annotated as superinfection exclusion.
// Each gene counts at most once no matter how many keywords it matches
func detectSieGenes(genes []GeneAnnotation) (hasSie bool, count int) {
	for _, g := range genes {
		if containsAny(geneText(g), sieKeywords) {
			count++
		}
	}
	return count > 0, count
}

// detectImmunityRegion is whether any gene looks like part of a
// lysogeny immunity region
func detectImmunityRegion(genes []GeneAnnotation) bool {
	for _, g := range genes {
		if containsAny(geneText(g), immunityKeywords) {
			return true
		}
	}
	return false
}

// extractReceptorHints collects the display names of domains that look like
// receptor-binding machinery. The result is sorted and duplicate-free
func extractReceptorHints(domains []ProteinDomain) []string {
	seen := make(map[string]bool)
	for _, d := range domains {
		text := strings.ToLower(d.DomainName + " " + d.Description)
		if !containsAny(text, receptorKeywords) {
			continue
		}

		hint := d.DomainName
		if hint == "" {
			hint = d.DomainID
		}
		seen[hint] = true
	}

	hints := make([]string, 0, len(seen))
	for hint := range seen {
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return hints
}

// domainKey is the counting key for one domain call
func domainKey(d ProteinDomain) string {
	domainType := d.DomainType
	if domainType == "" {
		domainType = "Unknown"
	}
	return domainType + ":" + d.DomainID
}

// buildDomainCounts tallies domain occurrences per key
func buildDomainCounts(domains []ProteinDomain) map[string]int {
	counts := make(map[string]int)
	for _, d := range domains {
		counts[domainKey(d)]++
	}
	return counts
}
