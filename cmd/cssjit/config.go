package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/cssjit"
)

const (
	defaultConfigPath = ".cssjit.yaml"
	envPrefix         = "CSSJIT_"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence — only flags that were explicitly set)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSJIT_* prefix)
	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to its flat config key:
// CSSJIT_FILE_EXTENSION_FILTER -> file-extension-filter.
func envKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, envPrefix)),
		"_", "-",
	)
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() cssjit.Config {
	return cssjit.Config{
		Root:              getStringWithFallback("root", "."),
		Sources:           getStringsWithFallback("sources", cssjit.DefaultSources),
		Files:             getStringsWithFallback("files", cssjit.DefaultFiles),
		PatternOverride:   k.String("pattern-override"),
		Extensions:        cssjit.ParseExtensionFilter(getStringWithFallback("file-extension-filter", cssjit.DefaultExtensionFilter)),
		MarkerName:        getStringWithFallback("marker", cssjit.DefaultMarkerName),
		Helpers:           getStringsWithFallback("helpers", cssjit.DefaultHelpers),
		AttributeBuilders: getStringsWithFallback("attribute-builders", cssjit.DefaultAttributeBuilders),
		MarkupWriters:     getStringsWithFallback("markup-writers", cssjit.DefaultMarkupWriters),
		Mode:              cssjit.Mode(getStringWithFallback("mode", string(cssjit.ModeCombined))),
		OutputDir:         k.String("output-dir"),
		DryRun:            getBoolWithFallback("dry-run", false),
	}
}

// getStringWithFallback returns the key's value, or defaultVal when unset or empty.
func getStringWithFallback(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback returns the key's value, or defaultVal when unset.
func getBoolWithFallback(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getStringsWithFallback reads a list key. YAML and flags give lists;
// environment variables give one comma-separated string.
func getStringsWithFallback(key string, defaultVal []string) []string {
	var values []string
	switch v := k.Get(key).(type) {
	case string:
		values = splitList(v)
	case []string:
		values = v
	case []any:
		for _, item := range v {
			values = append(values, fmt.Sprint(item))
		}
	}
	if len(values) == 0 {
		return defaultVal
	}
	return values
}

// splitList splits comma-separated values into a slice
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
