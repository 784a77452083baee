package cssjit

import (
	"fmt"
	"go/ast"
	"go/token"
	"strings"
)

// MarkerDirective marks a type declaration as open for generated
// accessors. Text after the directive is kept verbatim as the marker's
// modifiers:
//
//	//cssjit:partial static
//	type MonorailCSS struct{}
const MarkerDirective = "//cssjit:partial"

// FallbackNamespace replaces an empty marker namespace so artifacts always
// have a package clause.
const FallbackNamespace = "root"

// Marker is the type declaration that receives the generated accessors.
type Marker struct {
	Namespace string // Go package name, possibly empty
	Name      string // Type identifier as declared
	Modifiers string // Directive arguments, verbatim
	Static    bool   // Modifiers contain "static": accessors are package functions
	Exported  bool   // Name is exported: accessors are exported
	File      string // Path of the declaring file
	Line      int
}

// Position returns "file:line" for diagnostics.
func (m Marker) Position() string {
	return fmt.Sprintf("%s:%d", m.File, m.Line)
}

// QualifiedName returns "namespace.Name" using the fallback namespace.
func (m Marker) QualifiedName() string {
	return ResolveNamespace(m.Namespace) + "." + m.Name
}

// IsMarkerCandidate is the cheap syntactic marker predicate. The
// directive is looked up first, so the name comparison only runs for
// declarations that opted in. It returns the verbatim modifiers.
func IsMarkerCandidate(decl *ast.GenDecl, spec *ast.TypeSpec, markerName string) (string, bool) {
	modifiers, ok := directiveModifiers(spec.Doc, decl.Doc)
	if !ok {
		return "", false
	}
	if !strings.EqualFold(spec.Name.Name, markerName) {
		return "", false
	}
	return modifiers, true
}

// FindMarkers returns every marker candidate declared at the top level of
// unit, in source order.
func FindMarkers(unit SourceUnit, cfg *EmissionConfig) []Marker {
	var markers []Marker
	for _, decl := range unit.File.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			modifiers, ok := IsMarkerCandidate(gen, ts, cfg.MarkerName)
			if !ok {
				continue
			}
			markers = append(markers, Marker{
				Namespace: unit.File.Name.Name,
				Name:      ts.Name.Name,
				Modifiers: modifiers,
				Static:    hasModifier(modifiers, "static"),
				Exported:  ts.Name.IsExported(),
				File:      unit.Path,
				Line:      unit.line(ts.Pos()),
			})
		}
	}
	return markers
}

// SelectMarker applies the first-wins policy to candidates gathered in
// input order. The ignored candidates are returned so callers can warn.
func SelectMarker(candidates []Marker) (Marker, []Marker, bool) {
	if len(candidates) == 0 {
		return Marker{}, nil, false
	}
	return candidates[0], candidates[1:], true
}

// ResolveNamespace substitutes FallbackNamespace for the global namespace.
func ResolveNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" || ns == "_" {
		return FallbackNamespace
	}
	return ns
}

// directiveModifiers finds MarkerDirective in the comment groups and
// returns the text following it.
func directiveModifiers(groups ...*ast.CommentGroup) (string, bool) {
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, MarkerDirective)
			if !ok {
				continue
			}
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

func hasModifier(modifiers, want string) bool {
	for _, f := range strings.Fields(modifiers) {
		if f == want {
			return true
		}
	}
	return false
}
