package cssjit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// CategoryCount summarizes one category of a pass
type CategoryCount struct {
	Occurrences int // Literals found, duplicates included
	Distinct    int // Distinct literals
}

// Discovery is the aggregated state of a pass before emission
type Discovery struct {
	Config    *EmissionConfig
	Inputs    *Inputs
	Marker    *Marker  // nil when no marker was found
	Ignored   []Marker // Extra marker candidates, in input order
	Results   CategoryResults
	Set       *ClassSet // nil when no marker was found
	Misses    int
	CacheHits int
	Warnings  []string
}

// Counts returns per-category totals.
func (d *Discovery) Counts() map[Category]CategoryCount {
	counts := make(map[Category]CategoryCount, len(Categories))
	for _, c := range Categories {
		distinct := len(Union(d.Results[c]))
		counts[c] = CategoryCount{Occurrences: d.Results.Occurrences(c), Distinct: distinct}
	}
	return counts
}

// Only returns a copy of d restricted to category c. The class set is
// re-aggregated from that category alone.
func (d *Discovery) Only(c Category) *Discovery {
	out := *d
	out.Results = CategoryResults{}
	if seqs, ok := d.Results[c]; ok {
		out.Results[c] = seqs
	}
	if d.Marker != nil {
		out.Set = Aggregate(*d.Marker, out.Results)
	}
	return &out
}

// GenerateResult reports the outcome of Generate
type GenerateResult struct {
	SourcesScanned int
	FilesScanned   int
	FilesSkipped   int
	CacheHits      int
	Misses         int // Recognized call sites without literal arguments
	Marker         *Marker
	Classes        int
	Counts         map[Category]CategoryCount
	Mode           Mode
	OutputDir      string
	Artifacts      []Artifact
	Written        []string // Artifact paths whose content changed
	Removed        []string // Stale artifacts of the other mode or of a previous marker
	Warnings       []string
	Duration       time.Duration
}

// Generate is the main entry point: it discovers the class set and writes
// the artifacts next to the marker. Without a marker nothing is written.
func Generate(ctx context.Context, config Config) (*GenerateResult, error) {
	start := time.Now()

	d, err := Discover(ctx, config)
	if err != nil {
		return nil, err
	}
	log := d.Config.Logger

	result := &GenerateResult{
		SourcesScanned: len(d.Inputs.Sources),
		FilesScanned:   len(d.Inputs.Files),
		FilesSkipped:   d.Inputs.Stats.FilesSkipped,
		CacheHits:      d.CacheHits,
		Misses:         d.Misses,
		Marker:         d.Marker,
		Counts:         d.Counts(),
		Mode:           d.Config.Mode,
		Warnings:       d.Warnings,
	}

	if d.Set == nil {
		log.Info().Msg("no marker declaration found; nothing to generate")
		if !config.DryRun {
			// Output of an earlier pass would reference a type that is gone
			result.Removed, err = removeOrphanedArtifacts(d.Inputs.Root, d.Inputs.Artifacts, "")
			if err != nil {
				return nil, fmt.Errorf("cleanup failed: %w", err)
			}
		}
		result.Duration = time.Since(start)
		return result, nil
	}
	result.Classes = d.Set.Len()

	artifacts, err := Emit(NewEmitPlan(d.Set), d.Config.Mode)
	if err != nil {
		return nil, fmt.Errorf("emit failed: %w", err)
	}
	result.Artifacts = artifacts
	result.OutputDir = outputDir(config, d.Marker)

	if config.DryRun {
		result.Duration = time.Since(start)
		return result, nil
	}

	result.Written, err = writeArtifacts(result.OutputDir, artifacts)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.Removed, err = removeStaleArtifacts(result.OutputDir, artifacts)
	if err != nil {
		return nil, fmt.Errorf("cleanup failed: %w", err)
	}
	orphaned, err := removeOrphanedArtifacts(d.Inputs.Root, d.Inputs.Artifacts, result.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("cleanup failed: %w", err)
	}
	result.Removed = append(result.Removed, orphaned...)

	log.Debug().
		Str("marker", d.Marker.QualifiedName()).
		Int("classes", result.Classes).
		Int("written", len(result.Written)).
		Int("cache_hits", result.CacheHits).
		Msg("generation complete")

	result.Duration = time.Since(start)
	return result, nil
}

// Discover scans every input and aggregates the class set without
// emitting anything.
func Discover(ctx context.Context, config Config) (*Discovery, error) {
	ec, err := config.Resolve()
	if err != nil {
		return nil, err
	}
	log := ec.Logger

	root := config.Root
	if root == "" {
		root = "."
	}

	// 1. Collect inputs
	inputs, err := CollectInputs(root, config.Sources, config.Files, ec)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	log.Debug().
		Int("sources", len(inputs.Sources)).
		Int("files", len(inputs.Files)).
		Int("skipped", inputs.Stats.FilesSkipped).
		Msg("collected inputs")

	// 2. Scan units
	units, hits, warnings, err := scanUnits(ctx, root, inputs, ec, config.Cache)
	if err != nil {
		return nil, err
	}

	d := &Discovery{
		Config:    ec,
		Inputs:    inputs,
		Results:   CategoryResults{},
		CacheHits: hits,
		Warnings:  warnings,
	}

	// 3. Merge in input order and select the marker
	var candidates []Marker
	for _, u := range units {
		candidates = append(candidates, u.Markers...)
		d.Results.Merge(u.Results)
		d.Misses += u.Misses
	}

	marker, ignored, ok := SelectMarker(candidates)
	if !ok {
		return d, nil
	}
	d.Marker = &marker
	d.Ignored = ignored
	for _, m := range ignored {
		msg := fmt.Sprintf("ignoring marker %s at %s; using %s at %s",
			m.QualifiedName(), m.Position(), marker.QualifiedName(), marker.Position())
		log.Warn().Str("ignored", m.Position()).Str("selected", marker.Position()).Msg("multiple marker declarations")
		d.Warnings = append(d.Warnings, msg)
	}

	// 4. Aggregate
	d.Set = Aggregate(marker, d.Results)
	return d, nil
}

// scanUnits scans sources then files concurrently. Results are returned
// in input order regardless of scheduling.
func scanUnits(ctx context.Context, root string, inputs *Inputs, ec *EmissionConfig, cache *Cache) ([]UnitResult, int, []string, error) {
	type unit struct {
		kind unitKind
		rel  string
	}
	all := make([]unit, 0, len(inputs.Sources)+len(inputs.Files))
	for _, rel := range inputs.Sources {
		all = append(all, unit{unitSource, rel})
	}
	for _, rel := range inputs.Files {
		all = append(all, unit{unitFile, rel})
	}

	results := make([]UnitResult, len(all))
	warnings := make([]string, len(all))
	var hits atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, u := range all {
		i, u := i, u
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(root, filepath.FromSlash(u.rel))
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			r, hit, err := cache.scan(ec, u.kind, path, content, func() (UnitResult, error) {
				if u.kind == unitFile {
					return ScanFileUnit(ctx, path, string(content), ec)
				}
				src, err := ParseSource(path, content)
				if err != nil {
					return UnitResult{}, err
				}
				return ScanSource(src, ec), nil
			})
			if err != nil {
				if u.kind == unitSource && ctx.Err() == nil {
					ec.Logger.Warn().Err(err).Str("file", path).Msg("skipping unparsable source")
					warnings[i] = fmt.Sprintf("Failed to parse %s: %v", path, err)
					return nil
				}
				return err
			}
			if hit {
				hits.Add(1)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, nil, err
	}

	var kept []string
	for _, w := range warnings {
		if w != "" {
			kept = append(kept, w)
		}
	}
	return results, int(hits.Load()), kept, nil
}

// outputDir is Config.OutputDir, relative to Root, or the marker's directory.
func outputDir(config Config, marker *Marker) string {
	if config.OutputDir == "" {
		return filepath.Dir(marker.File)
	}
	if filepath.IsAbs(config.OutputDir) {
		return config.OutputDir
	}
	root := config.Root
	if root == "" {
		root = "."
	}
	return filepath.Join(root, config.OutputDir)
}

// writeArtifacts writes each artifact whose bytes differ from disk and
// returns the paths written.
func writeArtifacts(dir string, artifacts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	for _, a := range artifacts {
		path := filepath.Join(dir, a.Name)
		existing, err := os.ReadFile(path)
		if err == nil && bytes.Equal(existing, a.Content) {
			continue
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("read %s: %w", path, err)
		}
		if err := os.WriteFile(path, a.Content, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// removeStaleArtifacts deletes artifacts left in dir by the other mode.
func removeStaleArtifacts(dir string, current []Artifact) ([]string, error) {
	keep := make(map[string]bool, len(current))
	for _, a := range current {
		keep[a.Name] = true
	}

	var removed []string
	for _, name := range ArtifactNames() {
		if keep[name] {
			continue
		}
		path := filepath.Join(dir, name)
		ok, err := removeGenerated(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// removeOrphanedArtifacts deletes previously generated files found below
// root outside dir. An empty dir means no marker owns any output and every
// artifact goes.
func removeOrphanedArtifacts(root string, found []string, dir string) ([]string, error) {
	var owned string
	if dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		owned = abs
	}

	var removed []string
	for _, rel := range found {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if owned != "" {
			parent, err := filepath.Abs(filepath.Dir(path))
			if err != nil {
				return removed, err
			}
			if parent == owned {
				continue
			}
		}
		ok, err := removeGenerated(path)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// removeGenerated deletes path if it exists and starts with
// GeneratedHeader. Hand-written files with a matching name are kept.
func removeGenerated(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if !bytes.HasPrefix(content, []byte(GeneratedHeader)) {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("remove %s: %w", path, err)
	}
	return true, nil
}
