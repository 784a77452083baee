package cssjit

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// DefaultPattern matches class="…", cssclass="…" (single or double quotes)
// and CssClass("…") calls. Every alternative captures into the same group
// named "value".
const DefaultPattern = `(class\s*=\s*['"](?P<value>[^<]*?)['"])|(cssclass\s*=\s*['"](?P<value>[^<]*?)['"])|(CssClass\s*\(\s*"(?P<value>[^<]*?)"\s*\))`

// valueGroup is the capture group name every pattern must define.
const valueGroup = "value"

// largeText is the size from which ExtractContext matches in the
// background and honors cancellation.
const largeText = 1 << 20

// ErrInvalidPattern is returned when a pattern override cannot be used.
var ErrInvalidPattern = errors.New("invalid class pattern")

// Pattern is a compiled class-name pattern. It is safe for concurrent use.
type Pattern struct {
	expr   string
	re     *regexp.Regexp
	groups []int // subexpression indexes named "value", left to right
}

// CompilePattern compiles expr case-insensitively in multi-line mode.
// An empty expr selects DefaultPattern.
func CompilePattern(expr string) (*Pattern, error) {
	if strings.TrimSpace(expr) == "" {
		expr = DefaultPattern
	}

	re, err := regexp.Compile("(?im)" + expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, expr, err)
	}

	var groups []int
	for i, name := range re.SubexpNames() {
		if name == valueGroup {
			groups = append(groups, i)
		}
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("%w %q: missing capture group named %q", ErrInvalidPattern, expr, valueGroup)
	}

	return &Pattern{expr: expr, re: re, groups: groups}, nil
}

// MustCompilePattern is like CompilePattern but panics on error.
func MustCompilePattern(expr string) *Pattern {
	p, err := CompilePattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the pattern source without the implicit flags.
func (p *Pattern) Expr() string {
	return p.expr
}

// Extract returns the value capture of every non-overlapping match in
// text, in match order. It returns nil when nothing matches.
func (p *Pattern) Extract(text string) []string {
	matches := p.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	results := make([]string, 0, len(matches))
	for _, m := range matches {
		if v, ok := p.value(text, m); ok {
			results = append(results, v)
		}
	}
	return results
}

// ExtractContext is Extract with cancellation. Large inputs are matched
// in the background so a cancelled context returns early; the match always
// runs over the whole text, so anchors see the same context as in Extract.
func (p *Pattern) ExtractContext(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(text) < largeText {
		return p.Extract(text), nil
	}

	done := make(chan []string, 1)
	go func() {
		done <- p.Extract(text)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case results := <-done:
		return results, nil
	}
}

// value returns the first participating "value" capture of a match.
func (p *Pattern) value(text string, m []int) (string, bool) {
	for _, g := range p.groups {
		start, end := m[2*g], m[2*g+1]
		if start >= 0 {
			return text[start:end], true
		}
	}
	return "", false
}
