package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-simplify/pkg/simplify"
)

func TestFindImageAssets(t *testing.T) {
	vars := simplify.GlobalVars{
		Styles: map[string]simplify.StyleValue{
			"fill_PHOTO1": simplify.FillList{
				{Type: "SOLID", Color: "#FFFFFF"},
				{Type: "IMAGE", ImageRef: "ref-abc"},
			},
			"fill_PLAIN1": simplify.FillList{
				{Type: "SOLID", Color: "#FF0000"},
			},
		},
	}

	nodes := []simplify.SimplifiedNode{
		{
			ID: "1:0", Name: "Page", Type: "CANVAS",
			Children: []simplify.SimplifiedNode{
				{ID: "1:1", Name: "Logo", Type: simplify.VectorMarkerType},
				{ID: "1:2", Name: "Hero Photo", Type: "RECTANGLE", Fills: "fill_PHOTO1"},
				{ID: "1:3", Name: "Plain Box", Type: "RECTANGLE", Fills: "fill_PLAIN1"},
				{
					ID: "1:4", Name: "Card", Type: "FRAME",
					Children: []simplify.SimplifiedNode{
						{ID: "1:5", Name: "Avatar", Type: "ELLIPSE", Fills: "fill_PHOTO1"},
					},
				},
			},
		},
	}

	found := FindImageAssets(nodes, vars)
	require.Len(t, found, 3)

	// Pre-order document order.
	assert.Equal(t, "1:1", found[0].NodeID)
	assert.Empty(t, found[0].ImageRef, "vector markers resolve through the render API")

	assert.Equal(t, "1:2", found[1].NodeID)
	assert.Equal(t, "ref-abc", found[1].ImageRef)

	assert.Equal(t, "1:5", found[2].NodeID)
	assert.Equal(t, "ref-abc", found[2].ImageRef)
}

func TestFindImageAssetsNone(t *testing.T) {
	nodes := []simplify.SimplifiedNode{
		{ID: "1:0", Name: "Page", Type: "CANVAS",
			Children: []simplify.SimplifiedNode{
				{ID: "1:1", Name: "Text", Type: "TEXT"},
			},
		},
	}

	found := FindImageAssets(nodes, simplify.GlobalVars{})
	assert.Empty(t, found)
}

func TestFindImageAssetsDanglingFillRef(t *testing.T) {
	// A fill reference that does not resolve in the style table must not
	// qualify the node.
	nodes := []simplify.SimplifiedNode{
		{ID: "1:1", Name: "Box", Type: "RECTANGLE", Fills: "fill_MISSING"},
	}

	found := FindImageAssets(nodes, simplify.GlobalVars{Styles: map[string]simplify.StyleValue{}})
	assert.Empty(t, found)
}
