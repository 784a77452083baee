package cssjit

import (
	"encoding/json"
	"io"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version    string                  `json:"version"`
	Marker     *JSONMarker             `json:"marker"`
	Namespace  string                  `json:"namespace,omitempty"`
	Total      int                     `json:"total"`
	Categories map[string]JSONCategory `json:"categories"`
	Classes    []string                `json:"classes"`
	Warnings   []string                `json:"warnings,omitempty"`
}

// JSONMarker describes the honored marker declaration
type JSONMarker struct {
	Name      string `json:"name"`
	Modifiers string `json:"modifiers,omitempty"`
	Static    bool   `json:"static"`
	Exported  bool   `json:"exported"`
	File      string `json:"file"`
	Line      int    `json:"line"`
}

// JSONCategory contains the counts and literals of one category
type JSONCategory struct {
	Occurrences int      `json:"occurrences"`
	Distinct    int      `json:"distinct"`
	Classes     []string `json:"classes"`
}

// jsonVersion is bumped when the schema changes incompatibly
const jsonVersion = "1"

// BuildJSONOutput converts a discovery into the export schema.
func BuildJSONOutput(d *Discovery) JSONOutput {
	out := JSONOutput{
		Version:    jsonVersion,
		Categories: make(map[string]JSONCategory, len(Categories)),
		Classes:    []string{},
		Warnings:   d.Warnings,
	}

	for c, count := range d.Counts() {
		classes := Union(d.Results[c])
		out.Categories[string(c)] = JSONCategory{
			Occurrences: count.Occurrences,
			Distinct:    count.Distinct,
			Classes:     classes,
		}
	}

	if d.Set != nil {
		m := d.Set.Marker
		out.Marker = &JSONMarker{
			Name:      m.Name,
			Modifiers: m.Modifiers,
			Static:    m.Static,
			Exported:  m.Exported,
			File:      m.File,
			Line:      m.Line,
		}
		out.Namespace = d.Set.Namespace
		out.Total = d.Set.Len()
		out.Classes = d.Set.Classes()
	}

	return out
}

// WriteJSON writes the discovery as indented JSON.
func WriteJSON(w io.Writer, d *Discovery) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildJSONOutput(d))
}
