// Package cssjit discovers CSS class literals referenced from Go code and
// markup files and generates a Go accessor listing them, so a JIT CSS
// generator can emit only the classes a project actually uses.
//
// # Marker
//
// Generation is opt-in. One type per project carries the directive:
//
//	//cssjit:partial static
//	type MonorailCSS struct{}
//
// cssjit writes cssjit_*.gen.go next to it with a CssClassValues accessor
// (a method, or a package function for static markers).
//
// # Sources
//
// Three call shapes declare classes in Go code:
//
//	b.AddAttribute(seq, "class", "btn btn-primary") // attribute builder
//	b.AddMarkupContent(seq, `<span class="oi">`)    // markup content
//	CssClass("bg-red-200")                           // helper call
//
// Files whose path ends with a configured suffix (.cshtml and .razor by
// default) are pattern-matched as text.
//
// # Generation
//
//	result, err := cssjit.Generate(ctx, cssjit.Config{
//		Root:       ".",
//		Extensions: []string{".templ", ".html"},
//	})
//
// # CLI Tool
//
// cssjit also provides a CLI tool, usually run from go:generate:
//
//	//go:generate go run github.com/yacobolo/cssjit/cmd/cssjit
package cssjit
