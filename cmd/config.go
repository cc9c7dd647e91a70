package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd prints the resolved settings
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved settings",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := json.MarshalIndent(viper.AllSettings(), "", "  ")
		if err == nil {
			fmt.Println(string(b))
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
