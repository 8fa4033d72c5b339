package simplify

import (
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// Options configures one simplification call.
type Options struct {
	// Extractors is the pipeline to run on every node, in order. Nil selects
	// AllExtractors.
	Extractors []Extractor

	// MaxDepth bounds the traversal: nil is unlimited, 0 keeps only the root
	// nodes, N keeps nodes at most N hops below a root.
	MaxDepth *int

	// AfterChildren runs on each node after its children are simplified.
	// Nil selects CollapseVectors; pass KeepChildren to disable collapsing.
	AfterChildren AfterChildrenHook
}

func (o Options) withDefaults() Options {
	if o.Extractors == nil {
		o.Extractors = AllExtractors()
	}
	if o.AfterChildren == nil {
		o.AfterChildren = CollapseVectors
	}
	return o
}

// MaxDepth is a convenience for building Options.MaxDepth inline.
func MaxDepth(n int) *int { return &n }

// SimplifyFile simplifies a whole-document response. The registry and all
// produced values are scoped to this call, so repeated calls over the same
// input are independent and byte-identical.
func SimplifyFile(fr *figma.FileResponse, opts Options) *SimplifiedDesign {
	return run(normalizeFile(fr), opts)
}

// SimplifyNodes simplifies a per-subtree response, merging the subtree
// side-tables first.
func SimplifyNodes(nr *figma.NodesResponse, opts Options) *SimplifiedDesign {
	return run(normalizeNodes(nr), opts)
}

func run(norm normalized, opts Options) *SimplifiedDesign {
	opts = opts.withDefaults()

	registry := NewStyleRegistry()
	w := &walker{
		extractors:    opts.Extractors,
		registry:      registry,
		styles:        norm.styles,
		maxDepth:      opts.MaxDepth,
		afterChildren: opts.AfterChildren,
	}

	nodes := w.walk(norm.nodes, nil, 0)

	return &SimplifiedDesign{
		Name:          norm.name,
		Nodes:         nodes,
		Components:    norm.components,
		ComponentSets: norm.componentSets,
		GlobalVars:    registry.GlobalVars(),
	}
}
