package simplify

import (
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// Extractor contributes one category of fields to a node's simplified form.
// Implementations must be pure with respect to the surrounding tree: they may
// read the ancestor context, write only to their own node's accumulator, and
// register style values — never mutate sibling or ancestor state.
type Extractor interface {
	// Name identifies the extractor in logs and option parsing.
	Name() string
	// Extract reads raw node fields and fills in the accumulator. Unparsable
	// fields are skipped, never fatal.
	Extract(n *figma.Node, acc *SimplifiedNode, ctx *Context)
}

// Context is what an extractor may see beyond its own node: the immediate
// parent raw node, the call-scoped style registry, and the file's published
// style table for named-style lookups.
type Context struct {
	Parent   *figma.Node
	Registry *StyleRegistry
	Styles   map[string]figma.Style
}

// AllExtractors returns the full pipeline in its fixed execution order.
func AllExtractors() []Extractor {
	return []Extractor{
		LayoutExtractor{},
		TextExtractor{},
		VisualsExtractor{},
		ComponentExtractor{},
	}
}

// LayoutOnly returns a pipeline extracting positioning and sizing only.
func LayoutOnly() []Extractor {
	return []Extractor{LayoutExtractor{}}
}

// ContentOnly returns a pipeline extracting text content and typography only.
func ContentOnly() []Extractor {
	return []Extractor{TextExtractor{}}
}

// VisualsOnly returns a pipeline extracting fills, strokes, effects, opacity,
// and border radius only.
func VisualsOnly() []Extractor {
	return []Extractor{VisualsExtractor{}}
}
