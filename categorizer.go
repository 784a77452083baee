package cssjit

import (
	"fmt"
	"strings"
)

// Category groups occurrences by the scanner family that produced them
type Category string

// Scanner categories, in emission order
const (
	CategoryAttribute Category = "attribute"
	CategoryHelper    Category = "helper"
	CategoryMarkup    Category = "markup"
	CategoryFile      Category = "file"
)

// Categories lists every category in emission order.
var Categories = []Category{CategoryAttribute, CategoryHelper, CategoryMarkup, CategoryFile}

// categoryLabels are the human-facing names used in reports and doc comments
var categoryLabels = map[Category]string{
	CategoryAttribute: "Attribute builder calls",
	CategoryHelper:    "Helper calls",
	CategoryMarkup:    "Markup content calls",
	CategoryFile:      "Markup files",
}

// Label returns a human-facing name for the category
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// identifier returns the category name in Go PascalCase ("Attribute")
func (c Category) identifier() string {
	s := string(c)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseCategory converts a category name back to its Category
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", name)
}

// categoryForShape maps a recognized call shape to its category
func categoryForShape(shape Shape) Category {
	switch shape {
	case ShapeAttribute:
		return CategoryAttribute
	case ShapeMarkup:
		return CategoryMarkup
	case ShapeHelper:
		return CategoryHelper
	default:
		return ""
	}
}

// CategoryResults holds the per-site sequences of each category
type CategoryResults map[Category][][]string

// Add appends one site's sequence to a category
func (r CategoryResults) Add(c Category, values []string) {
	r[c] = append(r[c], values)
}

// Merge appends every sequence of other into r
func (r CategoryResults) Merge(other CategoryResults) {
	for c, seqs := range other {
		r[c] = append(r[c], seqs...)
	}
}

// Occurrences counts the literals of a category, duplicates included
func (r CategoryResults) Occurrences(c Category) int {
	n := 0
	for _, seq := range r[c] {
		n += len(seq)
	}
	return n
}
