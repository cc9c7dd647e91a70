// Package cmd is for command line interactions with the phagemix application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use: "phagemix",
	Short: `Estimate pairwise phage compatibility and select therapeutic cocktails.
Scores derive from annotation heuristics, not wet-lab data`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func init() {
	cobra.OnInitialize(initSettings)
}

// initSettings reads in a settings file, if one is present next to the binary
func initSettings() {
	viper.SetConfigName("settings")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // no settings file is fine, flags carry the defaults
}
