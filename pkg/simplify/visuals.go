package simplify

import (
	"fmt"
	"math"
	"strings"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// VisualsExtractor derives fills, strokes, effects, non-default opacity, and
// border radius. Fill order is reversed so the topmost paint comes first,
// matching CSS stacking rather than Figma's bottom-up paint order.
type VisualsExtractor struct{}

func (VisualsExtractor) Name() string { return "visuals" }

func (VisualsExtractor) Extract(n *figma.Node, acc *SimplifiedNode, ctx *Context) {
	if fills := simplifyPaints(n.Fills); len(fills) > 0 {
		acc.Fills = ctx.Registry.Register(fills, "fill")
	}

	if stroke := buildStroke(n); stroke != nil {
		acc.Strokes = ctx.Registry.Register(*stroke, "stroke")
	}

	if effects := buildEffects(n.Effects); effects != nil {
		acc.Effects = ctx.Registry.Register(*effects, "effect")
	}

	if n.Opacity != nil && *n.Opacity != 1 {
		acc.Opacity = n.Opacity
	}

	acc.BorderRadius = borderRadius(n)
}

// simplifyPaints converts visible paints into simplified fills, topmost
// first. Paints that cannot be expressed (unknown type, missing color) are
// omitted rather than failing the node.
func simplifyPaints(paints []figma.Paint) FillList {
	var fills FillList
	for i := len(paints) - 1; i >= 0; i-- {
		p := &paints[i]
		if !p.IsVisible() {
			continue
		}
		if f, ok := simplifyPaint(p); ok {
			fills = append(fills, f)
		}
	}
	return fills
}

func simplifyPaint(p *figma.Paint) (Fill, bool) {
	switch {
	case p.Type == "IMAGE":
		if p.ImageRef == "" {
			return Fill{}, false
		}
		return Fill{Type: "IMAGE", ImageRef: p.ImageRef, ScaleMode: p.ScaleMode}, true

	case p.Type == "SOLID":
		if p.Color == nil {
			return Fill{}, false
		}
		return Fill{Type: "SOLID", Color: formatColor(p.Color, p.Opacity)}, true

	case strings.HasPrefix(p.Type, "GRADIENT_"):
		f := Fill{Type: p.Type}
		for _, stop := range p.GradientStops {
			c := stop.Color
			f.Stops = append(f.Stops, FillStop{
				Position: stop.Position,
				Color:    formatColor(&c, nil),
			})
		}
		return f, true

	default:
		return Fill{}, false
	}
}

func buildStroke(n *figma.Node) *Stroke {
	colors := simplifyPaints(n.Strokes)
	if len(colors) == 0 {
		return nil
	}

	stroke := &Stroke{Colors: colors, StrokeDashes: n.StrokeDashes}
	if n.StrokeWeight != nil && *n.StrokeWeight > 0 {
		stroke.StrokeWeight = pixels(*n.StrokeWeight)
	}
	if w := n.IndividualStrokeWeights; w != nil {
		stroke.StrokeWeights = fmt.Sprintf("%s %s %s %s",
			pixels(w.Top), pixels(w.Right), pixels(w.Bottom), pixels(w.Left))
	}
	return stroke
}

// buildEffects folds visible effects into CSS declarations: shadows become
// box-shadow entries, layer blurs a filter, background blurs a
// backdrop-filter. Returns nil when nothing is visible.
func buildEffects(effects []figma.Effect) *Effects {
	var shadows []string
	var out Effects

	for i := range effects {
		e := &effects[i]
		if !e.IsVisible() {
			continue
		}
		switch e.Type {
		case "DROP_SHADOW", "INNER_SHADOW":
			shadows = append(shadows, shadowCSS(e))
		case "LAYER_BLUR":
			out.Filter = fmt.Sprintf("blur(%s)", pixels(e.Radius))
		case "BACKGROUND_BLUR":
			out.BackdropFilter = fmt.Sprintf("blur(%s)", pixels(e.Radius))
		}
	}

	out.BoxShadow = strings.Join(shadows, ", ")
	if out.BoxShadow == "" && out.Filter == "" && out.BackdropFilter == "" {
		return nil
	}
	return &out
}

func shadowCSS(e *figma.Effect) string {
	var x, y float64
	if e.Offset != nil {
		x, y = e.Offset.X, e.Offset.Y
	}
	css := fmt.Sprintf("%s %s %s %s %s",
		pixels(x), pixels(y), pixels(e.Radius), pixels(e.Spread),
		formatColor(e.Color, nil))
	if e.Type == "INNER_SHADOW" {
		css += " inset"
	}
	return css
}

func borderRadius(n *figma.Node) string {
	if radii := n.RectangleCornerRadii; len(radii) == 4 {
		return fmt.Sprintf("%s %s %s %s",
			pixels(radii[0]), pixels(radii[1]), pixels(radii[2]), pixels(radii[3]))
	}
	if n.CornerRadius != nil && *n.CornerRadius > 0 {
		return pixels(*n.CornerRadius)
	}
	return ""
}

// formatColor renders a Figma color as CSS: #RRGGBB for opaque colors,
// rgba(...) otherwise. A paint-level opacity multiplies the color alpha.
func formatColor(c *figma.Color, opacity *float64) string {
	if c == nil {
		return "#000000"
	}

	r := int(math.Round(c.R * 255))
	g := int(math.Round(c.G * 255))
	b := int(math.Round(c.B * 255))

	a := c.A
	if opacity != nil {
		a *= *opacity
	}

	if a >= 1 {
		return fmt.Sprintf("#%02X%02X%02X", r, g, b)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, trimFloat(a))
}

// trimFloat formats an alpha value without trailing zeros.
func trimFloat(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*100)/100)
}
