package cssjit

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Defaults for the configuration surface.
const (
	DefaultMarkerName      = "MonorailCSS"
	DefaultExtensionFilter = ".cshtml|.razor"
)

var (
	// DefaultHelpers are the single-argument helper calls whose literal is a class value.
	DefaultHelpers = []string{"CssClass", "AddClass"}
	// DefaultAttributeBuilders are the three-argument attribute builder calls.
	DefaultAttributeBuilders = []string{"AddAttribute"}
	// DefaultMarkupWriters are the two-argument calls whose literal is markup.
	DefaultMarkupWriters = []string{"AddMarkupContent"}
	// DefaultSources selects the Go files scanned for call sites.
	DefaultSources = []string{"**/*.go"}
	// DefaultFiles selects the auxiliary files offered to the extension filter.
	DefaultFiles = []string{"**/*"}
)

// Config holds generator configuration
type Config struct {
	Root              string   // Project root, "." when empty
	Sources           []string // Globs for Go files, relative to Root
	Files             []string // Globs for auxiliary text files, relative to Root
	PatternOverride   string   // Replaces DefaultPattern when set
	Extensions        []string // Path suffixes of auxiliary files to scan
	MarkerName        string   // Marker type name, compared case-insensitively
	Helpers           []string // Helper call names ("CssClass")
	AttributeBuilders []string // Attribute builder names; "*" accepts any
	MarkupWriters     []string // Markup writer names; "*" accepts any
	Mode              Mode     // Emission mode, ModeCombined when empty
	OutputDir         string   // Artifact directory; the marker's directory when empty
	DryRun            bool     // Emit but do not write artifacts
	Logger            *zerolog.Logger
	Cache             *Cache // Reused across passes by long-running hosts
}

// ErrInvalidExtensionFilter is returned for an empty extension filter entry.
var ErrInvalidExtensionFilter = errors.New("invalid file extension filter")

// ParseExtensionFilter splits a pipe-delimited suffix list. A blank filter
// yields nil, which selects the defaults. Empty entries are kept so Resolve
// can reject them.
func ParseExtensionFilter(filter string) []string {
	if strings.TrimSpace(filter) == "" {
		return nil
	}
	parts := strings.Split(filter, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// validateExtensions rejects empty suffixes, which would accept every file.
func validateExtensions(exts []string) error {
	for i, ext := range exts {
		if ext == "" {
			return fmt.Errorf("%w %q: entry %d is empty", ErrInvalidExtensionFilter, strings.Join(exts, "|"), i+1)
		}
	}
	return nil
}

// EmissionConfig is the resolved, immutable configuration of one pass.
type EmissionConfig struct {
	Pattern           *Pattern
	Extensions        []string
	MarkerName        string
	Helpers           []string
	AttributeBuilders []string
	MarkupWriters     []string
	Mode              Mode
	Logger            zerolog.Logger

	fingerprint string
}

// Resolve validates the configuration and compiles the pattern. Errors
// returned here are configuration errors and end the pass.
func (c Config) Resolve() (*EmissionConfig, error) {
	pattern, err := CompilePattern(c.PatternOverride)
	if err != nil {
		return nil, err
	}

	mode, err := ParseMode(string(c.Mode))
	if err != nil {
		return nil, err
	}

	if err := validateExtensions(c.Extensions); err != nil {
		return nil, err
	}

	ec := &EmissionConfig{
		Pattern:           pattern,
		Extensions:        orDefault(c.Extensions, ParseExtensionFilter(DefaultExtensionFilter)),
		MarkerName:        c.MarkerName,
		Helpers:           orDefault(c.Helpers, DefaultHelpers),
		AttributeBuilders: orDefault(c.AttributeBuilders, DefaultAttributeBuilders),
		MarkupWriters:     orDefault(c.MarkupWriters, DefaultMarkupWriters),
		Mode:              mode,
		Logger:            zerolog.Nop(),
	}
	if ec.MarkerName == "" {
		ec.MarkerName = DefaultMarkerName
	}
	if c.Logger != nil {
		ec.Logger = *c.Logger
	}
	ec.fingerprint = ec.computeFingerprint()

	return ec, nil
}

// DefaultEmissionConfig returns the resolved defaults.
func DefaultEmissionConfig() *EmissionConfig {
	ec, err := Config{}.Resolve()
	if err != nil {
		panic(fmt.Sprintf("default configuration: %v", err))
	}
	return ec
}

// Fingerprint identifies the scanning-relevant settings. Cached unit
// results are only valid for the fingerprint they were computed under.
func (c *EmissionConfig) Fingerprint() string {
	if c.fingerprint == "" {
		return c.computeFingerprint()
	}
	return c.fingerprint
}

func (c *EmissionConfig) computeFingerprint() string {
	h := sha256.New()
	write := func(field string, values ...string) {
		fmt.Fprintf(h, "%s=%d", field, len(values))
		for _, v := range values {
			fmt.Fprintf(h, ":%d:%s", len(v), v)
		}
		h.Write([]byte{0})
	}
	write("pattern", c.Pattern.Expr())
	write("extensions", c.Extensions...)
	write("marker", c.MarkerName)
	write("helpers", c.Helpers...)
	write("attribute-builders", c.AttributeBuilders...)
	write("markup-writers", c.MarkupWriters...)
	return hex.EncodeToString(h.Sum(nil))
}

// AcceptsFile reports whether path ends with one of the configured suffixes.
func (c *EmissionConfig) AcceptsFile(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return fallback
	}
	return values
}
