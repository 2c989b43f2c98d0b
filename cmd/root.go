package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version can be set at build time using ldflags
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "bundlecheck",
	Short: "A static heuristic analyzer for frontend code bundles",
	Long: `Bundle Health Checker analyzes frontend bundles (HTML/CSS/JS) for
size problems, duplicated code patterns and performance anti-patterns.

It aggregates the findings into a weighted 0-100 score with a letter
grade, and can normalize and blend Lighthouse audit reports into the
same shape.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Bundle Health Checker - Use 'bundlecheck help' for available commands")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is .bundlecheck.yaml)")
	rootCmd.PersistentFlags().StringP("format", "f", "table", "output format (table, json, markdown)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	// Add version command
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bundlecheck version %s\n", Version)
		},
	})
}
