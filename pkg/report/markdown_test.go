package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

func TestWriteDesign(t *testing.T) {
	design := &simplify.SimplifiedDesign{
		Name: "Landing Page",
		Nodes: []simplify.SimplifiedNode{
			{
				ID: "1:0", Name: "Home", Type: "CANVAS",
				Children: []simplify.SimplifiedNode{
					{
						ID: "1:1", Name: "Hero", Type: "FRAME",
						DownloadedImage: &simplify.DownloadedImage{
							FilePath: "/out/hero.png",
							Markdown: "![Hero](./hero.png)",
							Width:    800, Height: 600,
						},
					},
				},
			},
		},
		GlobalVars: simplify.GlobalVars{
			Styles: map[string]simplify.StyleValue{
				"fill_AAAAAA":   simplify.FillList{{Type: "SOLID", Color: "#FFFFFF"}},
				"layout_BBBBBB": simplify.Layout{Mode: "row"},
			},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteDesign(&sb, design))
	out := sb.String()

	assert.Contains(t, out, "# Design Summary: Landing Page")
	assert.Contains(t, out, "## Overview")
	assert.Contains(t, out, "## Shared Styles")
	assert.Contains(t, out, "`fill_AAAAAA`")
	assert.Contains(t, out, "## Node Hierarchy")
	assert.Contains(t, out, "Hero [FRAME] (1:1)")
	assert.Contains(t, out, "## Assets")
	assert.Contains(t, out, "![Hero](./hero.png)")

	// Style rows come out in sorted id order.
	assert.Less(t, strings.Index(out, "fill_AAAAAA"), strings.Index(out, "layout_BBBBBB"))
}

func TestWriteDesignOmitsEmptySections(t *testing.T) {
	design := &simplify.SimplifiedDesign{Name: "Empty"}

	var sb strings.Builder
	require.NoError(t, WriteDesign(&sb, design))
	out := sb.String()

	assert.Contains(t, out, "## Overview")
	assert.NotContains(t, out, "## Shared Styles")
	assert.NotContains(t, out, "## Node Hierarchy")
	assert.NotContains(t, out, "## Assets")
}
