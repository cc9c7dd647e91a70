package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd regenerates the Markdown command docs. Hidden: it's for releases
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Generate Markdown docs for every command",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := "docs"
		if len(args) > 0 {
			dir = args[0]
		}

		if err := doc.GenMarkdownTree(rootCmd, dir); err != nil {
			log.Fatalf("failed to generate docs: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
