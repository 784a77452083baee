package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssjit"
)

var rootCmd = &cobra.Command{
	Use:   "cssjit",
	Short: "CSS class discovery for JIT CSS generators",
	Long: `Discover the CSS class literals a Go project references and generate
a Go accessor listing them for a JIT CSS generator.

Generation is opt-in: annotate one type with //cssjit:partial.`,
	// Default behavior: run generate when no subcommand is given.
	// We must call loadConfig here because PreRunE of generateCmd
	// is not triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose output")
	pf.Bool("quiet", false, "Suppress all output (exit code only)")
	pf.String("color", "auto", "Color output: auto|always|never")
	pf.String("log-level", "", "Diagnostic log level: trace|debug|info|warn|error")
	pf.String("config", defaultConfigPath, "Config file path")

	// Scanning and emission settings, shared by generate, list and watch
	pf.String("root", ".", "Project root; globs are relative to it")
	pf.StringSlice("sources", cssjit.DefaultSources, "Glob patterns for Go source files")
	pf.StringSlice("files", cssjit.DefaultFiles, "Glob patterns for auxiliary markup files")
	pf.String("pattern-override", "", "Regular expression replacing the default class pattern; needs a (?P<value>...) group")
	pf.String("file-extension-filter", cssjit.DefaultExtensionFilter, "Pipe-delimited suffixes of markup files to scan")
	pf.String("marker", cssjit.DefaultMarkerName, "Name of the marker type")
	pf.StringSlice("helpers", cssjit.DefaultHelpers, "Single-argument helper calls whose literal is a class")
	pf.StringSlice("attribute-builders", cssjit.DefaultAttributeBuilders, `Attribute builder calls ("*" for any)`)
	pf.StringSlice("markup-writers", cssjit.DefaultMarkupWriters, `Markup content calls ("*" for any)`)
	pf.String("mode", string(cssjit.ModeCombined), "Emission mode: combined|categories")
	pf.String("output-dir", "", "Artifact directory (default: the marker's directory)")

	rootCmd.Flags().Bool("dry-run", false, "Discover and render without writing artifacts")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
