package cmd

import (
	"github.com/joyshmitz/phagemix/internal/cocktail"
	"github.com/spf13/cobra"
)

var hostsHelp = `comma separated list of target host labels.
Defaults to every host label observed in the panel.`

// cocktailCmd greedily selects a compatible cocktail covering the target hosts
var cocktailCmd = &cobra.Command{
	Use:                        "cocktail",
	Short:                      "Select a small compatible cocktail that covers the target hosts",
	Run:                        cocktail.CocktailCmd,
	SuggestionsMinimumDistance: 2,
	Long: `Greedily select up to max-size phages maximizing target-host coverage.

Every phage added to the cocktail must clear the compatibility threshold
against every phage already in it, so the final set is a compatibility
clique. Each selection step is explained in the output rationale. The
result is a deterministic greedy approximation, not a global optimum.`,
	Aliases: []string{"select", "mix"},
}

// set flags
func init() {
	cocktailCmd.Flags().StringP("in", "i", "", "path to a JSON file of phage annotations")
	cocktailCmd.Flags().StringP("out", "o", "", "output file name. Prints a console report when omitted")
	cocktailCmd.Flags().StringP("metric", "m", "weightedJaccard", metricHelp)
	cocktailCmd.Flags().Float64P("threshold", "t", 0.0, thresholdHelp)
	cocktailCmd.Flags().IntP("max-size", "s", 3, "maximum number of phages in the cocktail (2-5)")
	cocktailCmd.Flags().StringP("hosts", "H", "", hostsHelp)

	cocktailCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(cocktailCmd)
}
