package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/cssjit"
)

// VerboseReporter handles detailed statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs input and cache statistics
func (r *VerboseReporter) PrintStatistics(result *cssjit.GenerateResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleHeading, "Scan Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	fmt.Fprintf(r.w, "Sources Scanned:  %d\n", result.SourcesScanned)
	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:    %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Cache Hits:       %d\n", result.CacheHits)
	fmt.Fprintf(r.w, "Dynamic Sites:    %d\n", result.Misses)
	fmt.Fprintf(r.w, "Mode:             %s\n", result.Mode)
	if result.OutputDir != "" {
		fmt.Fprintf(r.w, "Output Directory: %s\n", relPath(result.OutputDir))
	}
}

// PrintCategories outputs per-category counts in emission order
func (r *VerboseReporter) PrintCategories(result *cssjit.GenerateResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleHeading, "Classes by Source", r.useColors))
	fmt.Fprintln(r.w, "-----------------")

	for _, c := range cssjit.Categories {
		count := result.Counts[c]
		fmt.Fprintf(r.w, "%-24s %5d found, %5d distinct\n", c.Label()+":", count.Occurrences, count.Distinct)
	}
	fmt.Fprintf(r.w, "%-24s %5d distinct\n", "Total:", result.Classes)
}

// PrintWarnings shows generation warnings
func (r *VerboseReporter) PrintWarnings(result *cssjit.GenerateResult) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleWarning, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "-----------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}
