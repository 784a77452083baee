package cssjit

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helperSet(marker Marker, classes ...string) *ClassSet {
	results := CategoryResults{}
	for _, c := range classes {
		results.Add(CategoryHelper, []string{c})
	}
	return Aggregate(marker, results)
}

func artifactMap(artifacts []Artifact) map[string]string {
	m := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		m[a.Name] = string(a.Content)
	}
	return m
}

// typeCheck compiles the marker declaration together with the artifacts.
func typeCheck(t *testing.T, pkg, markerSrc string, artifacts []Artifact) *types.Package {
	t.Helper()
	fset := token.NewFileSet()

	files := []*ast.File{}
	f, err := parser.ParseFile(fset, "marker.go", "package "+pkg+"\n\n"+markerSrc, parser.ParseComments)
	require.NoError(t, err)
	files = append(files, f)

	for _, a := range artifacts {
		f, err := parser.ParseFile(fset, a.Name, a.Content, parser.ParseComments)
		require.NoError(t, err, a.Name)
		files = append(files, f)
	}

	conf := types.Config{Importer: importer.Default()}
	p, err := conf.Check(pkg, fset, files, nil)
	require.NoError(t, err)
	return p
}

func TestEmitCombined(t *testing.T) {
	set := helperSet(Marker{Namespace: "ui", Name: "MonorailCSS", Exported: true}, "bg-red-300", "bg-red-200")

	artifacts, err := Emit(NewEmitPlan(set), ModeCombined)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	got := artifactMap(artifacts)

	assert.Equal(t, `// Code generated by cssjit. DO NOT EDIT.
// Marker: MonorailCSS //cssjit:partial

package ui

// CssClassValues returns the CSS classes discovered in markup files and marked calls.
func (MonorailCSS) CssClassValues() []string {
	return monorailCSSClasses()
}
`, got[APIArtifact])

	assert.Equal(t, `// Code generated by cssjit. DO NOT EDIT.
// Marker: MonorailCSS //cssjit:partial

package ui

// monorailCSSClasses returns the CSS classes discovered for MonorailCSS.
//
// Attribute builder calls: 0 found, 0 distinct.
// Helper calls: 2 found, 2 distinct.
// Markup content calls: 0 found, 0 distinct.
// Markup files: 0 found, 0 distinct.
func monorailCSSClasses() []string {
	return []string{
		"bg-red-200",
		"bg-red-300",
	}
}
`, got[ClassesArtifact])

	pkg := typeCheck(t, "ui", "type MonorailCSS struct{}\n", artifacts)
	obj, _, _ := types.LookupFieldOrMethod(pkg.Scope().Lookup("MonorailCSS").Type(), false, pkg, "CssClassValues")
	require.NotNil(t, obj)
}

func TestEmitEmptySet(t *testing.T) {
	set := helperSet(Marker{Name: "MonorailCSS", Modifiers: "static", Static: true, Exported: true})

	artifacts, err := Emit(NewEmitPlan(set), ModeCombined)
	require.NoError(t, err)

	got := artifactMap(artifacts)
	assert.Contains(t, got[ClassesArtifact], "package root\n")
	assert.Contains(t, got[ClassesArtifact], "\treturn []string{}\n")
	assert.Contains(t, got[APIArtifact], "// Marker: MonorailCSS //cssjit:partial static\n")
	assert.Contains(t, got[APIArtifact], "\nfunc CssClassValues() []string {\n")

	pkg := typeCheck(t, "root", "type MonorailCSS struct{}\n", artifacts)
	assert.NotNil(t, pkg.Scope().Lookup("CssClassValues"))
}

func TestEmitAccessibility(t *testing.T) {
	tests := []struct {
		name     string
		marker   Marker
		markerGo string
		want     string
	}{
		{
			name:     "exported instance",
			marker:   Marker{Namespace: "ui", Name: "MonorailCSS", Exported: true},
			markerGo: "type MonorailCSS struct{}\n",
			want:     "func (MonorailCSS) CssClassValues() []string {",
		},
		{
			name:     "unexported instance",
			marker:   Marker{Namespace: "ui", Name: "monorailCss"},
			markerGo: "type monorailCss struct{}\n",
			want:     "func (monorailCss) cssClassValues() []string {",
		},
		{
			name:     "exported static",
			marker:   Marker{Namespace: "ui", Name: "MonorailCSS", Modifiers: "static", Static: true, Exported: true},
			markerGo: "type MonorailCSS struct{}\n",
			want:     "func CssClassValues() []string {",
		},
		{
			name:     "unexported static",
			marker:   Marker{Namespace: "ui", Name: "monorailcss", Modifiers: "static", Static: true},
			markerGo: "type monorailcss struct{}\n",
			want:     "func cssClassValues() []string {",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []Mode{ModeCombined, ModeCategories} {
				artifacts, err := Emit(NewEmitPlan(helperSet(tt.marker, "p-4")), mode)
				require.NoError(t, err)
				assert.Contains(t, artifactMap(artifacts)[APIArtifact], tt.want, mode)
				typeCheck(t, "ui", tt.markerGo, artifacts)
			}
		})
	}
}

func TestEmitCategories(t *testing.T) {
	results := CategoryResults{
		CategoryAttribute: {{"btn"}},
		CategoryHelper:    {{"bg-red-200"}, {"btn"}},
		CategoryFile:      {{"nav"}},
	}
	set := Aggregate(Marker{Namespace: "ui", Name: "MonorailCSS", Exported: true}, results)

	artifacts, err := Emit(NewEmitPlan(set), ModeCategories)
	require.NoError(t, err)

	got := artifactMap(artifacts)
	require.Len(t, got, 5)
	assert.NotContains(t, got, ClassesArtifact)

	assert.Equal(t, `// Code generated by cssjit. DO NOT EDIT.
// Marker: MonorailCSS //cssjit:partial

package ui

// monorailCSSHelperClasses returns the CSS classes found by the helper scanner.
//
// Helper calls: 2 found, 2 distinct.
func monorailCSSHelperClasses() []string {
	return []string{
		"bg-red-200",
		"btn",
	}
}
`, got[CategoryArtifact(CategoryHelper)])

	assert.Contains(t, got[CategoryArtifact(CategoryMarkup)], "func monorailCSSMarkupClasses() []string {\n\treturn []string{}\n}")

	api := got[APIArtifact]
	order := []string{
		"monorailCSSAttributeClasses(),",
		"monorailCSSHelperClasses(),",
		"monorailCSSMarkupClasses(),",
		"monorailCSSFileClasses(),",
	}
	last := -1
	for _, call := range order {
		i := strings.Index(api, call)
		require.Greater(t, i, last, call)
		last = i
	}

	typeCheck(t, "ui", "type MonorailCSS struct{}\n", artifacts)
}

func TestEmitQuotesLiterals(t *testing.T) {
	set := helperSet(Marker{Namespace: "ui", Name: "MonorailCSS", Exported: true},
		`say "hi"`, `back\slash`, "tab\there", "ünï")

	artifacts, err := Emit(NewEmitPlan(set), ModeCombined)
	require.NoError(t, err)

	classes := artifactMap(artifacts)[ClassesArtifact]
	assert.Contains(t, classes, `"say \"hi\"",`)
	assert.Contains(t, classes, `"back\\slash",`)
	assert.Contains(t, classes, `"tab\there",`)
	assert.Contains(t, classes, `"ünï",`)

	typeCheck(t, "ui", "type MonorailCSS struct{}\n", artifacts)
}

func TestEmitDeterministic(t *testing.T) {
	set := helperSet(Marker{Namespace: "ui", Name: "MonorailCSS"}, "c", "a", "b")

	first, err := Emit(NewEmitPlan(set), ModeCategories)
	require.NoError(t, err)
	second, err := Emit(NewEmitPlan(set), ModeCategories)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEmitInvalidMode(t *testing.T) {
	_, err := Emit(NewEmitPlan(helperSet(Marker{Name: "MonorailCSS"})), Mode("split"))
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCombined, false},
		{"combined", ModeCombined, false},
		{" Categories ", ModeCategories, false},
		{"split", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLowerInitial(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"MonorailCSS", "monorailCSS"},
		{"CSS", "css"},
		{"UIKit", "uiKit"},
		{"monorailcss", "monorailcss"},
		{"X", "x"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, lowerInitial(tt.in))
		})
	}
}

func TestArtifactNames(t *testing.T) {
	assert.Equal(t, []string{
		"cssjit_api.gen.go",
		"cssjit_classes.gen.go",
		"cssjit_attribute.gen.go",
		"cssjit_helper.gen.go",
		"cssjit_markup.gen.go",
		"cssjit_file.gen.go",
	}, ArtifactNames())
	for _, name := range ArtifactNames() {
		assert.True(t, isGeneratedArtifact(name), name)
	}
}
