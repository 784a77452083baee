package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .cssjit.yaml config file",
	Long:  `Create a .cssjit.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created " + defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# cssjit configuration
# Precedence: flags > CSSJIT_* environment > this file > defaults

root: .
verbose: false
color: auto                # auto | always | never

# Inputs (globs relative to root)
sources:
  - "**/*.go"
files:
  - "**/*"
file-extension-filter: ".cshtml|.razor|.templ|.html"

# Recognition
marker: MonorailCSS
helpers:
  - CssClass
  - AddClass
attribute-builders:
  - AddAttribute
markup-writers:
  - AddMarkupContent
# pattern-override: 'data-class="(?P<value>[^"]*)"'

# Emission
mode: combined             # combined | categories
# output-dir: internal/ui  # default: the marker's directory
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
