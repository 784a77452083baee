package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/cssjit"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssjit.yaml")
	configContent := `
root: site
verbose: true
file-extension-filter: ".templ|.html"
marker: Styles
helpers:
  - Tw
mode: categories
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "site", k.String("root"))
	assert.True(t, k.Bool("verbose"))

	config := buildConfig()
	assert.Equal(t, "site", config.Root)
	assert.Equal(t, []string{".templ", ".html"}, config.Extensions)
	assert.Equal(t, "Styles", config.MarkerName)
	assert.Equal(t, []string{"Tw"}, config.Helpers)
	assert.Equal(t, cssjit.ModeCategories, config.Mode)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config — should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.cssjit.yaml"))

	config := buildConfig()
	assert.Equal(t, ".", config.Root)
	assert.Equal(t, cssjit.DefaultSources, config.Sources)
	assert.Equal(t, cssjit.DefaultFiles, config.Files)
	assert.Equal(t, []string{".cshtml", ".razor"}, config.Extensions)
	assert.Equal(t, cssjit.DefaultMarkerName, config.MarkerName)
	assert.Equal(t, cssjit.DefaultHelpers, config.Helpers)
	assert.Equal(t, cssjit.DefaultAttributeBuilders, config.AttributeBuilders)
	assert.Equal(t, cssjit.DefaultMarkupWriters, config.MarkupWriters)
	assert.Equal(t, cssjit.ModeCombined, config.Mode)
	assert.Empty(t, config.OutputDir)
	assert.Empty(t, config.PatternOverride)
	assert.False(t, config.DryRun)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssjit.yaml")
	configContent := `
output-dir: from-file
helpers:
  - FromFile
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("CSSJIT_OUTPUT_DIR", "from-env")
	t.Setenv("CSSJIT_HELPERS", "CssClass, Tw")
	t.Setenv("CSSJIT_FILE_EXTENSION_FILTER", ".templ")

	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, "from-env", config.OutputDir)
	assert.Equal(t, []string{"CssClass", "Tw"}, config.Helpers)
	assert.Equal(t, []string{".templ"}, config.Extensions)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"CSSJIT_VERBOSE", "verbose"},
		{"CSSJIT_OUTPUT_DIR", "output-dir"},
		{"CSSJIT_FILE_EXTENSION_FILTER", "file-extension-filter"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Empty(t, splitList(""))
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".cssjit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "marker: MonorailCSS")
	assert.Contains(t, string(data), "mode: combined")
}

func TestInitCommand_DefaultConfigLoads(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".cssjit.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(defaultConfig), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildConfig()
	assert.Equal(t, []string{".cshtml", ".razor", ".templ", ".html"}, config.Extensions)
	assert.Equal(t, []string{"CssClass", "AddClass"}, config.Helpers)
	_, err := config.Resolve()
	require.NoError(t, err)
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".cssjit.yaml", []byte("existing: true"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".cssjit.yaml", []byte("existing: true"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".cssjit.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "marker: MonorailCSS")
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := rootCmd
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })

	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "cssjit dev\n", buf.String())
}

func TestGenerateCommand(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	src := `package ui

//cssjit:partial
type MonorailCSS struct{}

func (MonorailCSS) CssClass(s string) string { return s }

var _ = MonorailCSS{}.CssClass("bg-red-300")
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ui.go"), []byte(src), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"generate", "--root", dir, "--quiet"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, cssjit.ClassesArtifact))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bg-red-300",`)

	_, err = os.Stat(filepath.Join(dir, cssjit.APIArtifact))
	require.NoError(t, err)
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.Equal(t, "default", getStringWithFallback("flag-key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	// No keys set - should return default
	assert.False(t, getBoolWithFallback("flag-key", false))
	assert.True(t, getBoolWithFallback("flag-key", true))
}

func TestGetStringsWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, []string{"x"}, getStringsWithFallback("flag-key", []string{"x"}))

	require.NoError(t, k.Set("helpers", []any{"A", "B"}))
	assert.Equal(t, []string{"A", "B"}, getStringsWithFallback("helpers", nil))
}
