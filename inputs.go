package cssjit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ScanStats tracks input discovery
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files offered to the scanners
	FilesSkipped    int // Generated or gitignored files
}

// Add accumulates other into s.
func (s *ScanStats) Add(other ScanStats) {
	s.FilesDiscovered += other.FilesDiscovered
	s.FilesScanned += other.FilesScanned
	s.FilesSkipped += other.FilesSkipped
}

// Inputs are the units of one pass, sorted by path
type Inputs struct {
	Root    string
	Sources []string // Go files, relative to Root
	Files   []string // Auxiliary files accepted by the extension filter
	// Artifacts are previously generated files found by the source globs.
	// They are never scanned; Generate removes the ones it no longer owns.
	Artifacts []string
	Stats     ScanStats
}

// inputFilter decides which discovered paths are skipped
type inputFilter struct {
	gitignore   *ignore.GitIgnore
	skipTemplGo bool
}

// newInputFilter loads root's .gitignore. A missing file is fine.
func newInputFilter(root string, cfg *EmissionConfig) inputFilter {
	f := inputFilter{skipTemplGo: hasExtension(cfg.Extensions, ".templ")}
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		f.gitignore = gi
	}
	return f
}

// skip reports whether rel (slash separated, relative to the root) is
// excluded from scanning.
func (f inputFilter) skip(rel string) bool {
	if isGeneratedArtifact(rel) {
		return true
	}
	// templ output duplicates the .templ file when both are scanned
	if f.skipTemplGo && isTemplGenerated(rel) {
		return true
	}
	return f.ignored(rel)
}

// ignored reports whether .gitignore excludes rel.
func (f inputFilter) ignored(rel string) bool {
	return f.gitignore != nil && f.gitignore.MatchesPath(rel)
}

// isTemplGenerated checks if a file is a templ-generated Go file
// Handles both _templ.go and .templ.go suffix variations
func isTemplGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go")
}

// isGeneratedArtifact matches the names Emit produces.
func isGeneratedArtifact(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, "cssjit_") && strings.HasSuffix(base, ".gen.go")
}

func hasExtension(exts []string, want string) bool {
	for _, ext := range exts {
		if ext == want {
			return true
		}
	}
	return false
}

// CollectInputs expands the source and file globs below root.
func CollectInputs(root string, sources, files []string, cfg *EmissionConfig) (*Inputs, error) {
	if root == "" {
		root = "."
	}
	filter := newInputFilter(root, cfg)
	in := &Inputs{Root: root}

	var stats ScanStats
	var err error
	in.Sources, in.Artifacts, stats, err = expandGlobs(root, orDefault(sources, DefaultSources), filter, func(rel string) bool {
		return strings.HasSuffix(rel, ".go")
	})
	if err != nil {
		return nil, err
	}
	in.Stats.Add(stats)

	in.Files, _, stats, err = expandGlobs(root, orDefault(files, DefaultFiles), filter, cfg.AcceptsFile)
	if err != nil {
		return nil, err
	}
	in.Stats.Add(stats)

	return in, nil
}

// expandGlobs expands patterns relative to root, keeping regular files
// accepted by accept. Generated artifacts that are not gitignored are
// returned separately. Results are deduplicated and sorted.
func expandGlobs(root string, patterns []string, filter inputFilter, accept func(string) bool) ([]string, []string, ScanStats, error) {
	var stats ScanStats
	var kept, generated []string
	seen := make(map[string]bool)
	fsys := os.DirFS(root)

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, rel := range matches {
			if seen[rel] || !accept(rel) {
				continue
			}
			seen[rel] = true
			stats.FilesDiscovered++

			if isGeneratedArtifact(rel) && !filter.ignored(rel) && isRegular(fsys, rel) {
				generated = append(generated, rel)
			}
			if filter.skip(rel) || !isRegular(fsys, rel) {
				stats.FilesSkipped++
				continue
			}
			kept = append(kept, rel)
			stats.FilesScanned++
		}
	}

	sort.Strings(kept)
	sort.Strings(generated)
	return kept, generated, stats, nil
}

func isRegular(fsys fs.FS, rel string) bool {
	info, err := fs.Stat(fsys, rel)
	return err == nil && info.Mode().IsRegular()
}
