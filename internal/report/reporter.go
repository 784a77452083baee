// Package report renders generation results for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/yacobolo/cssjit"
)

// Reporter prints the one-line outcome of a generation pass
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// ShouldUseColors resolves the --color flag: "always", "never" or "auto".
func ShouldUseColors(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, _ := os.Stdout.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// PrintSummary outputs the result of one pass
func (r *Reporter) PrintSummary(result *cssjit.GenerateResult) {
	if result.Marker == nil {
		fmt.Fprintln(r.w, RenderStyle(StyleWarning, "No marker found", r.useColors)+
			" "+RenderStyle(StyleMuted, fmt.Sprintf("(add %s to a type named after the marker)", cssjit.MarkerDirective), r.useColors))
		r.printRemoved(result.Removed)
		return
	}

	status := RenderStyle(StyleSuccess, "✓", r.useColors)
	if len(result.Written) == 0 && len(result.Removed) == 0 {
		status = RenderStyle(StyleMuted, "=", r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s for %s (%s, %s) in %s\n",
		status,
		pluralizeCount(result.Classes, "class", "classes"),
		RenderStyle(StyleHeading, result.Marker.QualifiedName(), r.useColors),
		pluralizeCount(result.SourcesScanned, "source", "sources"),
		pluralizeCount(result.FilesScanned, "file", "files"),
		result.Duration.Round(time.Millisecond))

	for _, path := range result.Written {
		fmt.Fprintf(r.w, "  wrote %s\n", RenderStyle(StyleHeading, relPath(path), r.useColors))
	}
	r.printRemoved(result.Removed)
}

func (r *Reporter) printRemoved(paths []string) {
	for _, path := range paths {
		fmt.Fprintf(r.w, "  removed %s\n", RenderStyle(StyleMuted, relPath(path), r.useColors))
	}
}

// PrintError outputs a failed pass
func (r *Reporter) PrintError(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleFailure, "✗", r.useColors), err)
}

// relPath shortens path relative to the working directory when possible.
func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, abs)
	if err != nil {
		return path
	}
	return rel
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
