package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/cssjit"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the discovered CSS classes",
	Long: `Scan like generate but print the aggregated class set instead of
writing artifacts. Text output prints one quoted literal per line.
--category restricts the set to one scanner family: attribute, helper,
markup or file.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		config := buildConfig()
		logger := newLogger()
		config.Logger = &logger

		d, err := cssjit.Discover(cmd.Context(), config)
		if err != nil {
			return fmt.Errorf("discovery failed: %w", err)
		}

		if name := getStringWithFallback("category", ""); name != "" {
			category, err := cssjit.ParseCategory(name)
			if err != nil {
				return err
			}
			d = d.Only(category)
		}

		format := cssjit.DetermineOutputFormat(getStringWithFallback("format", "text"))
		return cssjit.WriteList(os.Stdout, d, format)
	},
}

func init() {
	listCmd.Flags().String("format", "text", "Output format: text|json")
	listCmd.Flags().String("category", "", "Only list classes of one category: attribute|helper|markup|file")
}
