// Package report renders a human-readable markdown summary of a simplified
// design: document stats, the deduplicated style table, the node hierarchy,
// and any downloaded assets.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

// WriteDesign writes the full markdown report for a simplified design.
func WriteDesign(w io.Writer, design *simplify.SimplifiedDesign) error {
	md := markdown.NewMarkdown(w)

	md.H1("Design Summary: " + design.Name)
	md.PlainText("")

	writeOverview(md, design)
	writeStyles(md, design)
	writeNodeTree(md, design)
	writeAssets(md, design)

	return md.Build()
}

func writeOverview(md *markdown.Markdown, design *simplify.SimplifiedDesign) {
	nodeCount, imageCount := 0, 0
	walkNodes(design.Nodes, func(n *simplify.SimplifiedNode) {
		nodeCount++
		if n.DownloadedImage != nil {
			imageCount++
		}
	})

	md.H2("Overview")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Nodes", strconv.Itoa(nodeCount)},
			{"Shared styles", strconv.Itoa(len(design.GlobalVars.Styles))},
			{"Components", strconv.Itoa(len(design.Components))},
			{"Component sets", strconv.Itoa(len(design.ComponentSets))},
			{"Downloaded images", strconv.Itoa(imageCount)},
		},
	})
	md.PlainText("")
}

func writeStyles(md *markdown.Markdown, design *simplify.SimplifiedDesign) {
	if len(design.GlobalVars.Styles) == 0 {
		return
	}

	ids := make([]string, 0, len(design.GlobalVars.Styles))
	for id := range design.GlobalVars.Styles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{"`" + id + "`", styleKind(design.GlobalVars.Styles[id])})
	}

	md.H2("Shared Styles")
	md.Table(markdown.TableSet{
		Header: []string{"Reference", "Kind"},
		Rows:   rows,
	})
	md.PlainText("")
}

func styleKind(v simplify.StyleValue) string {
	switch v.(type) {
	case simplify.Layout:
		return "layout"
	case simplify.TextStyle:
		return "text style"
	case simplify.FillList:
		return "fills"
	case simplify.Stroke:
		return "stroke"
	case simplify.Effects:
		return "effects"
	default:
		return "unknown"
	}
}

func writeNodeTree(md *markdown.Markdown, design *simplify.SimplifiedDesign) {
	if len(design.Nodes) == 0 {
		return
	}

	var sb strings.Builder
	for i := range design.Nodes {
		writeTreeLines(&sb, &design.Nodes[i], 0)
	}

	md.H2("Node Hierarchy")
	md.CodeBlocks(markdown.SyntaxHighlightText, strings.TrimRight(sb.String(), "\n"))
	md.PlainText("")
}

func writeTreeLines(sb *strings.Builder, n *simplify.SimplifiedNode, depth int) {
	fmt.Fprintf(sb, "%s%s [%s] (%s)\n", strings.Repeat("  ", depth), n.Name, n.Type, n.ID)
	for i := range n.Children {
		writeTreeLines(sb, &n.Children[i], depth+1)
	}
}

func writeAssets(md *markdown.Markdown, design *simplify.SimplifiedDesign) {
	var rows [][]string
	walkNodes(design.Nodes, func(n *simplify.SimplifiedNode) {
		img := n.DownloadedImage
		if img == nil {
			return
		}
		rows = append(rows, []string{
			n.Name,
			img.Markdown,
			fmt.Sprintf("%dx%d", img.Width, img.Height),
			strconv.FormatBool(img.WasCropped),
		})
	})
	if len(rows) == 0 {
		return
	}

	md.H2("Assets")
	md.Table(markdown.TableSet{
		Header: []string{"Node", "Image", "Dimensions", "Cropped"},
		Rows:   rows,
	})
	md.PlainText("")
}

// walkNodes visits every node in pre-order document order.
func walkNodes(nodes []simplify.SimplifiedNode, visit func(*simplify.SimplifiedNode)) {
	for i := range nodes {
		visit(&nodes[i])
		walkNodes(nodes[i].Children, visit)
	}
}
