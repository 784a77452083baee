package cssjit

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"
)

// Shape is the kind of class-declaring call a call expression matches.
type Shape int

const (
	// ShapeNone marks a call that declares no classes.
	ShapeNone Shape = iota
	// ShapeAttribute is b.AddAttribute(seq, "class", "btn btn-primary").
	ShapeAttribute
	// ShapeMarkup is b.AddMarkupContent(seq, `<span class="oi">…</span>`).
	ShapeMarkup
	// ShapeHelper is CssClass("bg-red-200") or ui.CssClass("bg-red-200").
	ShapeHelper
)

func (s Shape) String() string {
	switch s {
	case ShapeAttribute:
		return "attribute"
	case ShapeMarkup:
		return "markup"
	case ShapeHelper:
		return "helper"
	default:
		return "none"
	}
}

// anyName in a name list accepts every callee.
const anyName = "*"

// ClassifyCall decides which shape, if any, call matches. Shapes are told
// apart by arity, so a call matches at most one. Only syntax is inspected.
func ClassifyCall(call *ast.CallExpr, cfg *EmissionConfig) Shape {
	name := calleeName(call.Fun)
	if name == "" || call.Ellipsis.IsValid() {
		return ShapeNone
	}

	switch len(call.Args) {
	case 3:
		if isAttributeName(call.Args[1]) && nameAllowed(name, cfg.AttributeBuilders) {
			return ShapeAttribute
		}
	case 2:
		if isStringLiteral(call.Args[1]) && nameAllowed(name, cfg.MarkupWriters) {
			return ShapeMarkup
		}
	case 1:
		if isStringLiteral(call.Args[0]) && nameListed(name, cfg.Helpers) {
			return ShapeHelper
		}
	}
	return ShapeNone
}

// IsClassDeclaringCall reports whether call matches any shape.
func IsClassDeclaringCall(call *ast.CallExpr, cfg *EmissionConfig) bool {
	return ClassifyCall(call, cfg) != ShapeNone
}

// ExtractLiterals returns the class literals of a call already classified
// as shape. The boolean is false when the site contributes nothing, e.g.
// the class argument of an attribute builder is not a literal.
func ExtractLiterals(call *ast.CallExpr, shape Shape, cfg *EmissionConfig) ([]string, bool) {
	switch shape {
	case ShapeAttribute:
		idx := attributeValueIndex(len(call.Args))
		if idx >= len(call.Args) {
			return nil, false
		}
		value, ok := stringLiteral(call.Args[idx])
		if !ok {
			return nil, false
		}
		return []string{value}, true

	case ShapeMarkup:
		markup, ok := stringLiteral(call.Args[1])
		if !ok {
			return nil, false
		}
		return cfg.Pattern.Extract(markup), true

	case ShapeHelper:
		value, ok := stringLiteral(call.Args[0])
		if !ok {
			return nil, false
		}
		return []string{value}, true
	}
	return nil, false
}

// attributeValueIndex is the argument holding the class value: the third
// of (seq, name, value) builders, the first of single-argument variants.
func attributeValueIndex(argc int) int {
	if argc == 1 {
		return 0
	}
	return 2
}

// isAttributeName reports whether e is the literal "class" or "cssclass".
func isAttributeName(e ast.Expr) bool {
	name, ok := stringLiteral(e)
	if !ok {
		return false
	}
	return strings.EqualFold(name, "class") || strings.EqualFold(name, "cssclass")
}

// calleeName returns the bare or selected name of a call target:
// "CssClass" for CssClass(…), ui.CssClass(…) and CssClass[T](…).
func calleeName(fun ast.Expr) string {
	switch f := fun.(type) {
	case *ast.Ident:
		return f.Name
	case *ast.SelectorExpr:
		return f.Sel.Name
	case *ast.IndexExpr:
		return calleeName(f.X)
	case *ast.IndexListExpr:
		return calleeName(f.X)
	case *ast.ParenExpr:
		return calleeName(f.X)
	default:
		return ""
	}
}

func isStringLiteral(e ast.Expr) bool {
	lit, ok := e.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}

// stringLiteral decodes an interpreted or raw string literal.
func stringLiteral(e ast.Expr) (string, bool) {
	lit, ok := e.(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	value, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return value, true
}

// nameAllowed matches name against a list where "*" accepts anything.
func nameAllowed(name string, names []string) bool {
	for _, n := range names {
		if n == anyName || n == name {
			return true
		}
	}
	return false
}

// nameListed matches name exactly against names.
func nameListed(name string, names []string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
