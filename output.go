package cssjit

import (
	"fmt"
	"io"
)

// OutputFormat selects how `cssjit list` prints the discovered set
type OutputFormat string

const (
	// OutputText prints one class literal per line
	OutputText OutputFormat = "text"
	// OutputJSON prints the set with marker and category details
	OutputJSON OutputFormat = "json"
)

// DetermineOutputFormat selects the output format from the format flag.
// Unknown formats fall back to text.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "json":
		return OutputJSON
	default:
		return OutputText
	}
}

// WriteList writes the discovered class set in the given format.
func WriteList(w io.Writer, d *Discovery, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return WriteJSON(w, d)
	default:
		return writeText(w, d)
	}
}

// writeText prints one literal per line. Literals may contain spaces, so
// each is quoted.
func writeText(w io.Writer, d *Discovery) error {
	if d.Set == nil {
		return nil
	}
	for _, class := range d.Set.Classes() {
		if _, err := fmt.Fprintln(w, quoteLiteral(class)); err != nil {
			return err
		}
	}
	return nil
}
