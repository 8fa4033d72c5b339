package simplify

import (
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// vectorLeafTypes are the primitive node types that can be folded into a
// single exported SVG. The marker type itself is a member so that nested
// all-vector containers collapse bottom-up into one marker at the topmost
// qualifying ancestor.
var vectorLeafTypes = map[string]bool{
	"VECTOR":            true,
	"BOOLEAN_OPERATION": true,
	"LINE":              true,
	"STAR":              true,
	"POLYGON":           true,
	"REGULAR_POLYGON":   true,
	"ELLIPSE":           true,
	"RECTANGLE":         true,
	VectorMarkerType:    true,
}

// vectorContainerTypes are the container tags eligible for collapsing.
var vectorContainerTypes = map[string]bool{
	"FRAME":     true,
	"GROUP":     true,
	"INSTANCE":  true,
	"COMPONENT": true,
}

// CollapseVectors is the default AfterChildren hook. A container whose
// processed children are all vector leaves is rewritten to a childless
// IMAGE-SVG marker; the subtree below it is discarded from the simplified
// output and later exported as one image.
func CollapseVectors(raw *figma.Node, acc *SimplifiedNode, children []SimplifiedNode) []SimplifiedNode {
	if !vectorContainerTypes[acc.Type] || len(children) == 0 {
		return children
	}
	for i := range children {
		if !vectorLeafTypes[children[i].Type] {
			return children
		}
	}
	acc.Type = VectorMarkerType
	return nil
}

// KeepChildren is a pass-through AfterChildren hook for callers that want
// the raw tree shape preserved with no collapsing.
func KeepChildren(raw *figma.Node, acc *SimplifiedNode, children []SimplifiedNode) []SimplifiedNode {
	return children
}
