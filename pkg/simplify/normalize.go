package simplify

import (
	"sort"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// normalized is the single shape both API response kinds reduce to: an
// ordered node list plus the merged shared side-tables.
type normalized struct {
	name          string
	nodes         []figma.Node
	components    map[string]figma.Component
	componentSets map[string]figma.ComponentSet
	styles        map[string]figma.Style
}

// normalizeFile prepares a whole-document response for traversal. Top-level
// children (pages) are filtered for visibility here; the walker does not
// re-check visibility deeper in the tree.
func normalizeFile(fr *figma.FileResponse) normalized {
	return normalized{
		name:          fr.Name,
		nodes:         filterVisible(fr.Document.Children),
		components:    cloneTable(fr.Components, nil),
		componentSets: cloneTable(fr.ComponentSets, nil),
		styles:        cloneTable(fr.Styles, nil),
	}
}

// normalizeNodes merges a per-subtree response into one node list and
// aggregated side-tables. On key collision the later entry overwrites the
// earlier one; ids are globally unique upstream so colliding entries are
// identical. Subtrees are ordered by sorted request key because the response
// map carries no order of its own.
func normalizeNodes(nr *figma.NodesResponse) normalized {
	ids := make([]string, 0, len(nr.Nodes))
	for id := range nr.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := normalized{name: nr.Name}
	for _, id := range ids {
		nd := nr.Nodes[id]
		out.nodes = append(out.nodes, nd.Document)
		out.components = cloneTable(nd.Components, out.components)
		out.componentSets = cloneTable(nd.ComponentSets, out.componentSets)
		out.styles = cloneTable(nd.Styles, out.styles)
	}
	out.nodes = filterVisible(out.nodes)

	return out
}

func filterVisible(nodes []figma.Node) []figma.Node {
	out := make([]figma.Node, 0, len(nodes))
	for i := range nodes {
		if nodes[i].IsVisible() {
			out = append(out, nodes[i])
		}
	}
	return out
}

// cloneTable merges src into dst, allocating dst on first use and leaving it
// nil when there is nothing to merge.
func cloneTable[V any](src, dst map[string]V) map[string]V {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]V, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
