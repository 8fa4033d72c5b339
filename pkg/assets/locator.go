// Package assets locates image-bearing nodes inside a simplified design,
// runs retrieval batches under a concurrency bound, and merges the results
// (or externally supplied substitutes) back onto the tree.
package assets

import (
	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

// ImageAsset is a view over a simplified node identified as carrying a
// renderable image. It is derived fresh per call, not an owned entity.
type ImageAsset struct {
	NodeID string
	Name   string
	// ImageRef is the file-images key when the node carries an image fill;
	// empty for collapsed vector markers, which must go through the render
	// API instead.
	ImageRef string
}

// FindImageAssets scans the simplified tree in pre-order, depth-first
// document order and returns every node that should become a downloadable
// image: collapsed vector markers and nodes whose fill list contains an
// image paint.
//
// The order is stable for a given tree; positional enrichment correlates
// results by this exact order.
func FindImageAssets(nodes []simplify.SimplifiedNode, vars simplify.GlobalVars) []ImageAsset {
	var found []ImageAsset
	for i := range nodes {
		found = locate(&nodes[i], vars, found)
	}
	return found
}

func locate(n *simplify.SimplifiedNode, vars simplify.GlobalVars, found []ImageAsset) []ImageAsset {
	if n.Type == simplify.VectorMarkerType {
		found = append(found, ImageAsset{NodeID: n.ID, Name: n.Name})
	} else if ref := imageFillRef(n, vars); ref != "" {
		found = append(found, ImageAsset{NodeID: n.ID, Name: n.Name, ImageRef: ref})
	}

	for i := range n.Children {
		found = locate(&n.Children[i], vars, found)
	}
	return found
}

// imageFillRef dereferences the node's fill style and returns the imageRef of
// its first image paint, or "" when the node has no image fill.
func imageFillRef(n *simplify.SimplifiedNode, vars simplify.GlobalVars) string {
	if n.Fills == "" {
		return ""
	}
	fills, ok := vars.Styles[n.Fills].(simplify.FillList)
	if !ok {
		return ""
	}
	for _, f := range fills {
		if f.Type == "IMAGE" {
			return f.ImageRef
		}
	}
	return ""
}
