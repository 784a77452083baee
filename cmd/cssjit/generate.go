package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssjit"
	"github.com/yacobolo/cssjit/internal/report"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate the CSS class accessor",
	Long: `Scan Go sources and markup files for CSS class literals and write
cssjit_*.gen.go next to the marker type. Artifacts are only rewritten
when their content changes.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("dry-run", false, "Discover and render without writing artifacts")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	config := buildConfig()
	logger := newLogger()
	config.Logger = &logger

	result, err := cssjit.Generate(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if getBoolWithFallback("quiet", false) {
		return nil
	}
	printResult(result)
	return nil
}

// printResult writes the summary, plus statistics in verbose mode.
func printResult(result *cssjit.GenerateResult) {
	colors := useColors()
	report.NewReporter(os.Stdout, colors).PrintSummary(result)

	verbose := report.NewVerboseReporter(os.Stdout, colors)
	if getBoolWithFallback("verbose", false) {
		verbose.PrintStatistics(result)
		verbose.PrintCategories(result)
	}
	verbose.PrintWarnings(result)
}
