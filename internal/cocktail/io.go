package cocktail

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	json "github.com/goccy/go-json"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// PhageInput is one phage as supplied by the host application: its summary
// plus its gene and domain annotations
type PhageInput struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Host         string `json:"host,omitempty"`
	Lifecycle    string `json:"lifecycle,omitempty"`
	GenomeLength int    `json:"genomeLength,omitempty"`

	Genes   []GeneAnnotation `json:"genes"`
	Domains []ProteinDomain  `json:"domains"`
}

// Report is the command output written as JSON
type Report struct {
	// Time, ex:
	// "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds it took to execute the command
	Execution float64 `json:"execution"`

	Metric    Metric  `json:"metric"`
	Threshold float64 `json:"threshold"`

	Phages []PhageFeatures `json:"phages"`

	Matrix *CompatibilityMatrix `json:"matrix,omitempty"`

	Selection *CocktailSelection `json:"selection,omitempty"`
}

// ReadPhages parses the phage annotation file. This is the one place a
// caller-visible error can originate: an unreadable or unparsable file, or
// a phage whose gene/domain collections are missing entirely. Empty
// collections are fine and degrade to unknown features downstream
func ReadPhages(path string) ([]PhageInput, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read phage annotations: %w", err)
	}

	var phages []PhageInput
	if err := json.Unmarshal(contents, &phages); err != nil {
		return nil, fmt.Errorf("failed to parse phage annotations in %s: %w", path, err)
	}

	for _, p := range phages {
		if p.ID == "" {
			return nil, fmt.Errorf("phage in %s is missing an id", path)
		}
		if p.Genes == nil {
			return nil, fmt.Errorf("phage %s has no gene annotations", p.ID)
		}
		if p.Domains == nil {
			return nil, fmt.Errorf("phage %s has no domain annotations", p.ID)
		}
	}

	return phages, nil
}

// ObservedHosts is the sorted, duplicate-free list of host labels seen in
// the panel. It is the default target-host set when the caller names none
func ObservedHosts(features []PhageFeatures) []string {
	seen := make(map[string]bool)
	for _, f := range features {
		if f.Host != "" {
			seen[f.Host] = true
		}
	}

	hosts := make([]string, 0, len(seen))
	for host := range seen {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// writeReport writes the report as indented JSON to the output path, or to
// stdout when no path was given
func writeReport(out string, report Report) error {
	contents, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	contents = append(contents, '\n')

	if out == "" {
		_, err = os.Stdout.Write(contents)
		return err
	}
	if err := os.WriteFile(out, contents, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

// printMatrix writes the matrix as a console table of scores, one row
// per phage
func printMatrix(w io.Writer, matrix CompatibilityMatrix, features []PhageFeatures) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprint(tw, "phage")
	for _, f := range features {
		fmt.Fprintf(tw, "\t%s", phageLabel(f))
	}
	fmt.Fprintln(tw)

	for r, row := range matrix.Pairs {
		fmt.Fprint(tw, phageLabel(features[r]))
		for _, pair := range row {
			marker := ""
			if !pair.Compatible {
				marker = "!"
			}
			fmt.Fprintf(tw, "\t%+.2f%s", pair.Score, marker)
		}
		fmt.Fprintln(tw)
	}

	tw.Flush()
}

// printSelection writes the cocktail, its coverage, and the step-by-step
// rationale to the console
func printSelection(w io.Writer, selection CocktailSelection, features []PhageFeatures) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', tabwriter.TabIndent)

	fmt.Fprintln(tw, "phage\thost\tlifecycle\tlysis")
	for _, i := range selection.Chosen {
		f := features[i]
		host := f.Host
		if host == "" {
			host = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", phageLabel(f), host, f.Lifecycle, f.LysisTiming)
	}
	tw.Flush()

	fmt.Fprintf(w, "\ncoverage: %.0f%% of %d target host(s)\n", selection.CoveragePercent, selection.TargetCount)
	if len(selection.Chosen) > 1 {
		fmt.Fprintf(w, "avg pairwise compatibility: %+.2f\n", selection.AvgCompat)
	}

	for _, step := range selection.Rationale {
		fmt.Fprintf(w, "  - %s\n", step)
	}
}
