package simplify

import (
	"fmt"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// LayoutExtractor derives a flexbox-style layout descriptor from a node's
// auto-layout settings and bounding box, relative to its parent. The
// descriptor is stored in the registry only when it carries more than the
// trivial { mode: "none" } default.
type LayoutExtractor struct{}

func (LayoutExtractor) Name() string { return "layout" }

func (LayoutExtractor) Extract(n *figma.Node, acc *SimplifiedNode, ctx *Context) {
	layout := buildLayout(n, ctx.Parent)
	if isTrivialLayout(layout) {
		return
	}
	acc.Layout = ctx.Registry.Register(layout, "layout")
}

func buildLayout(n *figma.Node, parent *figma.Node) Layout {
	layout := Layout{Mode: "none"}

	switch n.LayoutMode {
	case "HORIZONTAL":
		layout.Mode = "row"
	case "VERTICAL":
		layout.Mode = "column"
	}

	if layout.Mode != "none" {
		layout.JustifyContent = axisAlignment(n.PrimaryAxisAlignItems)
		layout.AlignItems = axisAlignment(n.CounterAxisAlignItems)
		layout.Wrap = n.LayoutWrap == "WRAP"
		if n.ItemSpacing > 0 {
			layout.Gap = pixels(n.ItemSpacing)
		}
	}

	if n.PaddingTop > 0 || n.PaddingRight > 0 || n.PaddingBottom > 0 || n.PaddingLeft > 0 {
		layout.Padding = fmt.Sprintf("%s %s %s %s",
			pixels(n.PaddingTop), pixels(n.PaddingRight),
			pixels(n.PaddingBottom), pixels(n.PaddingLeft))
	}

	if s := sizing(n); s != nil {
		layout.Sizing = s
	}

	if n.LayoutPositioning == "ABSOLUTE" {
		layout.Position = "absolute"
	}

	if box := n.AbsoluteBoundingBox; box != nil {
		layout.Dimensions = &Dimensions{Width: box.Width, Height: box.Height}
		if parent != nil && parent.AbsoluteBoundingBox != nil {
			layout.Location = &Location{
				X: box.X - parent.AbsoluteBoundingBox.X,
				Y: box.Y - parent.AbsoluteBoundingBox.Y,
			}
		}
	}

	return layout
}

// isTrivialLayout reports whether the descriptor carries nothing beyond the
// default mode and so should be omitted from the node.
func isTrivialLayout(l Layout) bool {
	return l.Mode == "none" &&
		l.Padding == "" && l.Sizing == nil && l.Position == "" &&
		l.Dimensions == nil && l.Location == nil
}

// axisAlignment maps Figma axis alignment constants to flexbox values.
func axisAlignment(v string) string {
	switch v {
	case "MIN":
		return "flex-start"
	case "MAX":
		return "flex-end"
	case "CENTER":
		return "center"
	case "SPACE_BETWEEN":
		return "space-between"
	case "BASELINE":
		return "baseline"
	default:
		return ""
	}
}

func sizing(n *figma.Node) *Sizing {
	h := sizingMode(n.LayoutSizingHorizontal)
	v := sizingMode(n.LayoutSizingVertical)
	if h == "" && v == "" {
		return nil
	}
	return &Sizing{Horizontal: h, Vertical: v}
}

func sizingMode(v string) string {
	switch v {
	case "FIXED":
		return "fixed"
	case "HUG":
		return "hug"
	case "FILL":
		return "fill"
	default:
		return ""
	}
}

// pixels formats a design value as a CSS pixel string, trimming trailing
// zeros ("12px", "0.5px").
func pixels(v float64) string {
	return fmt.Sprintf("%gpx", v)
}
