package simplify

import (
	"fmt"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// TextExtractor copies literal text content verbatim and extracts a
// typography record for any node carrying text styling. When the node
// references a published text style with a designer-given name, the record is
// stored directly under that name, bypassing deduplication; anonymous records
// fall back to the content-addressed path.
type TextExtractor struct{}

func (TextExtractor) Name() string { return "text" }

func (TextExtractor) Extract(n *figma.Node, acc *SimplifiedNode, ctx *Context) {
	if n.Characters != "" {
		acc.Text = n.Characters
	}

	if n.Style == nil {
		return
	}
	style := buildTextStyle(n.Style)

	if name := namedTextStyle(n, ctx.Styles); name != "" {
		acc.TextStyle = ctx.Registry.RegisterNamed(name, style)
		return
	}
	acc.TextStyle = ctx.Registry.Register(style, "style")
}

func buildTextStyle(ts *figma.TypeStyle) TextStyle {
	out := TextStyle{
		FontFamily:          ts.FontFamily,
		FontWeight:          ts.FontWeight,
		FontSize:            ts.FontSize,
		TextCase:            ts.TextCase,
		TextAlignHorizontal: ts.TextAlignHorizontal,
		TextAlignVertical:   ts.TextAlignVertical,
	}

	// Line height as a unitless-ish em value reads better in generated CSS
	// than the absolute pixel height.
	if ts.LineHeightPx > 0 && ts.FontSize > 0 {
		out.LineHeight = fmt.Sprintf("%.2fem", ts.LineHeightPx/ts.FontSize)
	}
	if ts.LetterSpacing != 0 && ts.FontSize > 0 {
		out.LetterSpacing = fmt.Sprintf("%.2f%%", ts.LetterSpacing/ts.FontSize*100)
	}

	return out
}

// namedTextStyle resolves the designer-facing name of the published text
// style the node references, or "" when the node has no named style.
func namedTextStyle(n *figma.Node, styles map[string]figma.Style) string {
	if len(n.Styles) == 0 || len(styles) == 0 {
		return ""
	}
	id, ok := n.Styles["text"]
	if !ok {
		return ""
	}
	if s, ok := styles[id]; ok && s.Name != "" {
		return s.Name
	}
	return ""
}
