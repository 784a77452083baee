package cssjit

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"

	"golang.org/x/tools/go/ast/inspector"
)

// SourceUnit is one parsed Go file offered to the source scanners
type SourceUnit struct {
	Path string
	Fset *token.FileSet
	File *ast.File
}

// ParseSource parses Go source with comments, which marker discovery needs
func ParseSource(path string, src []byte) (SourceUnit, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return SourceUnit{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return SourceUnit{Path: path, Fset: fset, File: file}, nil
}

func (u SourceUnit) line(pos token.Pos) int {
	if u.Fset == nil || !pos.IsValid() {
		return 0
	}
	return u.Fset.Position(pos).Line
}

func (u SourceUnit) position(pos token.Pos) string {
	if u.Fset == nil || !pos.IsValid() {
		return u.Path
	}
	p := u.Fset.Position(pos)
	return fmt.Sprintf("%s:%d:%d", u.Path, p.Line, p.Column)
}

// UnitResult is everything one input unit contributes to a pass
type UnitResult struct {
	Path    string
	Results CategoryResults
	Markers []Marker
	Misses  int // Recognized call sites skipped for non-literal arguments
}

// callNodes filters the inspector down to call expressions
var callNodes = []ast.Node{(*ast.CallExpr)(nil)}

// ScanAttributeCalls returns the class value of every attribute builder
// call in unit, one sequence per call site.
func ScanAttributeCalls(unit SourceUnit, cfg *EmissionConfig) [][]string {
	return scanCalls(unit, cfg, ShapeAttribute)
}

// ScanHelperCalls returns the literal of every helper call in unit.
func ScanHelperCalls(unit SourceUnit, cfg *EmissionConfig) [][]string {
	return scanCalls(unit, cfg, ShapeHelper)
}

// ScanMarkupCalls returns the pattern matches of every markup content
// literal in unit, one sequence per call site.
func ScanMarkupCalls(unit SourceUnit, cfg *EmissionConfig) [][]string {
	return scanCalls(unit, cfg, ShapeMarkup)
}

func scanCalls(unit SourceUnit, cfg *EmissionConfig, want Shape) [][]string {
	var results [][]string
	inspector.New([]*ast.File{unit.File}).Preorder(callNodes, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		if ClassifyCall(call, cfg) != want {
			return
		}
		if values, ok := extractSite(unit, call, want, cfg); ok {
			results = append(results, values)
		}
	})
	return results
}

// ScanSource runs every source scanner and marker discovery over unit in a
// single traversal.
func ScanSource(unit SourceUnit, cfg *EmissionConfig) UnitResult {
	result := UnitResult{
		Path:    unit.Path,
		Results: CategoryResults{},
		Markers: FindMarkers(unit, cfg),
	}

	inspector.New([]*ast.File{unit.File}).Preorder(callNodes, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		shape := ClassifyCall(call, cfg)
		if shape == ShapeNone {
			return
		}
		values, ok := extractSite(unit, call, shape, cfg)
		if !ok {
			result.Misses++
			return
		}
		result.Results.Add(categoryForShape(shape), values)
	})

	return result
}

// extractSite extracts one call site, tracing misses
func extractSite(unit SourceUnit, call *ast.CallExpr, shape Shape, cfg *EmissionConfig) ([]string, bool) {
	values, ok := ExtractLiterals(call, shape, cfg)
	if !ok {
		cfg.Logger.Trace().
			Str("pos", unit.position(call.Pos())).
			Stringer("shape", shape).
			Msg("skipping call site without a literal class argument")
		return nil, false
	}
	if len(values) == 0 {
		cfg.Logger.Trace().
			Str("pos", unit.position(call.Pos())).
			Msg("markup literal contains no class attribute")
	}
	return values, true
}

// ScanFile pattern-matches the text of one auxiliary file. The boolean is
// false when the extension filter rejects path.
func ScanFile(ctx context.Context, path, text string, cfg *EmissionConfig) ([]string, bool, error) {
	if !cfg.AcceptsFile(path) {
		return nil, false, nil
	}
	values, err := cfg.Pattern.ExtractContext(ctx, text)
	if err != nil {
		return nil, true, fmt.Errorf("scan %s: %w", path, err)
	}
	cfg.Logger.Trace().Str("file", path).Int("matches", len(values)).Msg("scanned markup file")
	return values, true, nil
}

// ScanFileUnit wraps ScanFile into a UnitResult.
func ScanFileUnit(ctx context.Context, path, text string, cfg *EmissionConfig) (UnitResult, error) {
	result := UnitResult{Path: path, Results: CategoryResults{}}
	values, ok, err := ScanFile(ctx, path, text, cfg)
	if err != nil || !ok {
		return result, err
	}
	result.Results.Add(CategoryFile, values)
	return result, nil
}
