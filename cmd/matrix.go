package cmd

import (
	"github.com/joyshmitz/phagemix/internal/cocktail"
	"github.com/spf13/cobra"
)

var metricHelp = `domain-similarity metric. Either "weightedJaccard" (multiset,
the default) or "jaccard" (presence/absence).`

var thresholdHelp = `minimum pairwise score for two phages to count as compatible.
Common presets: -0.10 (permissive), 0.00, 0.15, 0.30 (strict).`

// matrixCmd scores every pair of phages in the annotation file
var matrixCmd = &cobra.Command{
	Use:                        "matrix",
	Short:                      "Score pairwise compatibility for every phage in a panel",
	Run:                        cocktail.MatrixCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Build the full pairwise compatibility matrix for a panel of phages.

Each phage's gene and domain annotations are reduced to compatibility
features (lifecycle, lysis timing, superinfection exclusion, immunity
regions, receptor hints, domain profile). Every pair is then scored with a
fixed, explainable rule set and the ranked contributing factors are kept
alongside each score.`,
	Aliases: []string{"score", "pairs"},
}

// set flags
func init() {
	matrixCmd.Flags().StringP("in", "i", "", "path to a JSON file of phage annotations")
	matrixCmd.Flags().StringP("out", "o", "", "output file name. Prints a console table when omitted")
	matrixCmd.Flags().StringP("metric", "m", "weightedJaccard", metricHelp)
	matrixCmd.Flags().Float64P("threshold", "t", 0.0, thresholdHelp)

	matrixCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(matrixCmd)
}
