package simplify

import (
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// AfterChildrenHook runs once a node's children have been fully simplified.
// It may rewrite the accumulator's type and must return the node's final
// children (possibly replaced, never reordered).
type AfterChildrenHook func(raw *figma.Node, acc *SimplifiedNode, children []SimplifiedNode) []SimplifiedNode

// walker carries the per-call state of one traversal: the selected
// extractors, the registry, the published style table, and the depth bound.
type walker struct {
	extractors    []Extractor
	registry      *StyleRegistry
	styles        map[string]figma.Style
	maxDepth      *int // nil means unlimited
	afterChildren AfterChildrenHook
}

// walk simplifies a list of sibling raw nodes at the given depth. Sibling
// order is preserved throughout.
func (w *walker) walk(nodes []figma.Node, parent *figma.Node, depth int) []SimplifiedNode {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]SimplifiedNode, 0, len(nodes))
	for i := range nodes {
		out = append(out, w.walkNode(&nodes[i], parent, depth))
	}
	return out
}

func (w *walker) walkNode(n *figma.Node, parent *figma.Node, depth int) SimplifiedNode {
	acc := SimplifiedNode{
		ID:   n.ID,
		Name: n.Name,
		Type: n.Type,
	}

	ctx := &Context{Parent: parent, Registry: w.registry, Styles: w.styles}
	for _, ex := range w.extractors {
		ex.Extract(n, &acc, ctx)
	}

	// At the depth bound children are omitted entirely; no empty placeholder.
	if w.maxDepth != nil && depth >= *w.maxDepth {
		return acc
	}

	children := w.walk(n.Children, n, depth+1)
	if w.afterChildren != nil {
		children = w.afterChildren(n, &acc, children)
	}
	acc.Children = children

	return acc
}
