package cssjit

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
	"unicode"
)

// GeneratedHeader starts every artifact; hosts use it to recognize output.
const GeneratedHeader = "// Code generated by cssjit. DO NOT EDIT."

// Mode selects how the class set is laid out across artifacts
type Mode string

const (
	// ModeCombined emits the aggregated list plus a public accessor.
	ModeCombined Mode = "combined"
	// ModeCategories emits one list per category plus a public accessor
	// that unions them at run time.
	ModeCategories Mode = "categories"
)

// ErrInvalidMode is returned for an unknown emission mode.
var ErrInvalidMode = errors.New("invalid emission mode")

// ParseMode validates a mode name; empty selects ModeCombined.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeCombined:
		return ModeCombined, nil
	case ModeCategories:
		return ModeCategories, nil
	default:
		return "", fmt.Errorf("%w %q (want %s or %s)", ErrInvalidMode, s, ModeCombined, ModeCategories)
	}
}

// Artifact names
const (
	APIArtifact     = "cssjit_api.gen.go"
	ClassesArtifact = "cssjit_classes.gen.go"
)

// CategoryArtifact returns the artifact name of a category in ModeCategories.
func CategoryArtifact(c Category) string {
	return "cssjit_" + string(c) + ".gen.go"
}

// ArtifactNames lists every name any mode can produce.
func ArtifactNames() []string {
	names := []string{APIArtifact, ClassesArtifact}
	for _, c := range Categories {
		names = append(names, CategoryArtifact(c))
	}
	return names
}

// Artifact is one generated file
type Artifact struct {
	Name    string
	Content []byte
}

// EmitPlan is the intermediate representation rendered by Emit
type EmitPlan struct {
	Package    string
	TypeName   string
	Modifiers  string
	Static     bool
	Exported   bool
	Classes    []string
	Categories []CategoryPlan
}

// CategoryPlan is one category's slice of the plan
type CategoryPlan struct {
	Category    Category
	Classes     []string
	Occurrences int
}

// NewEmitPlan builds the plan for a class set.
func NewEmitPlan(set *ClassSet) EmitPlan {
	plan := EmitPlan{
		Package:   set.Namespace,
		TypeName:  set.Marker.Name,
		Modifiers: set.Marker.Modifiers,
		Static:    set.Marker.Static,
		Exported:  set.Marker.Exported,
		Classes:   set.Classes(),
	}
	for _, c := range Categories {
		plan.Categories = append(plan.Categories, CategoryPlan{
			Category:    c,
			Classes:     set.CategoryClasses(c),
			Occurrences: set.Occurrences(c),
		})
	}
	return plan
}

// Emit renders plan into gofmt-formatted artifacts.
func Emit(plan EmitPlan, mode Mode) ([]Artifact, error) {
	if plan.Package == "" {
		plan.Package = FallbackNamespace
	}
	data := newEmitData(plan)

	var artifacts []Artifact
	switch mode {
	case ModeCombined, "":
		classes, err := render(ClassesArtifact, classesTemplate, data)
		if err != nil {
			return nil, err
		}
		api, err := render(APIArtifact, combinedAPITemplate, data)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, api, classes)

	case ModeCategories:
		api, err := render(APIArtifact, categoriesAPITemplate, data)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, api)
		for _, cat := range data.Categories {
			a, err := render(CategoryArtifact(cat.Category), categoryTemplate, struct {
				emitData
				Cat categoryData
			}{data, cat})
			if err != nil {
				return nil, err
			}
			artifacts = append(artifacts, a)
		}

	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidMode, mode)
	}

	return artifacts, nil
}

// quoteLiteral escapes a class literal as a Go string constant.
func quoteLiteral(s string) string {
	return strconv.Quote(s)
}

// emitData is the template view of a plan
type emitData struct {
	EmitPlan
	Header     string
	Receiver   string // "(MonorailCSS) " or "" for static markers
	Accessor   string // CssClassValues or cssClassValues
	ListFunc   string // monorailCSSClasses
	Categories []categoryData
}

type categoryData struct {
	CategoryPlan
	Label string
	Func  string // monorailCSSAttributeClasses
}

func newEmitData(plan EmitPlan) emitData {
	prefix := lowerInitial(plan.TypeName)
	data := emitData{
		EmitPlan: plan,
		Header:   header(plan),
		Accessor: "CssClassValues",
		ListFunc: prefix + "Classes",
	}
	if !plan.Exported {
		data.Accessor = "cssClassValues"
	}
	if !plan.Static {
		data.Receiver = "(" + plan.TypeName + ") "
	}
	for _, c := range plan.Categories {
		data.Categories = append(data.Categories, categoryData{
			CategoryPlan: c,
			Label:        c.Category.Label(),
			Func:         prefix + c.Category.identifier() + "Classes",
		})
	}
	return data
}

func header(plan EmitPlan) string {
	directive := MarkerDirective
	if plan.Modifiers != "" {
		directive += " " + plan.Modifiers
	}
	return GeneratedHeader + "\n// Marker: " + plan.TypeName + " " + directive
}

// lowerInitial lowercases a leading initialism: MonorailCSS → monorailCSS,
// CSS → css, UIKit → uiKit.
func lowerInitial(s string) string {
	r := []rune(s)
	n := 0
	for n < len(r) && unicode.IsUpper(r[n]) {
		n++
	}
	if n == 0 {
		return s
	}
	if n > 1 && n < len(r) {
		n--
	}
	for i := 0; i < n; i++ {
		r[i] = unicode.ToLower(r[i])
	}
	return string(r)
}

var templateFuncs = template.FuncMap{
	"quote": quoteLiteral,
}

func render(name string, tmpl *template.Template, data any) (Artifact, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Artifact{}, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return Artifact{}, fmt.Errorf("format %s: %w", name, err)
	}
	return Artifact{Name: name, Content: src}, nil
}

var classesTemplate = template.Must(template.New("classes").Funcs(templateFuncs).Parse(`{{.Header}}

package {{.Package}}

// {{.ListFunc}} returns the CSS classes discovered for {{.TypeName}}.
//
{{- range .Categories}}
// {{.Label}}: {{.Occurrences}} found, {{len .Classes}} distinct.
{{- end}}
func {{.ListFunc}}() []string {
{{- if .Classes}}
	return []string{
{{- range .Classes}}
		{{quote .}},
{{- end}}
	}
{{- else}}
	return []string{}
{{- end}}
}
`))

var combinedAPITemplate = template.Must(template.New("api").Funcs(templateFuncs).Parse(`{{.Header}}

package {{.Package}}

// {{.Accessor}} returns the CSS classes discovered in markup files and marked calls.
func {{.Receiver}}{{.Accessor}}() []string {
	return {{.ListFunc}}()
}
`))

var categoriesAPITemplate = template.Must(template.New("api").Funcs(templateFuncs).Parse(`{{.Header}}

package {{.Package}}

// {{.Accessor}} returns the CSS classes discovered in markup files and marked calls.
func {{.Receiver}}{{.Accessor}}() []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, group := range [][]string{
{{- range .Categories}}
		{{.Func}}(),
{{- end}}
	} {
		for _, class := range group {
			if _, ok := seen[class]; ok {
				continue
			}
			seen[class] = struct{}{}
			out = append(out, class)
		}
	}
	return out
}
`))

var categoryTemplate = template.Must(template.New("category").Funcs(templateFuncs).Parse(`{{.Header}}

package {{.Package}}

// {{.Cat.Func}} returns the CSS classes found by the {{.Cat.Category}} scanner.
//
// {{.Cat.Label}}: {{.Cat.Occurrences}} found, {{len .Cat.Classes}} distinct.
func {{.Cat.Func}}() []string {
{{- if .Cat.Classes}}
	return []string{
{{- range .Cat.Classes}}
		{{quote .}},
{{- end}}
	}
{{- else}}
	return []string{}
{{- end}}
}
`))
