package simplify

import (
	"testing"

	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

func page(children ...figma.Node) *figma.FileResponse {
	return fileWith(figma.Node{ID: "1:0", Name: "Page", Type: "CANVAS", Children: children})
}

func TestCollapseVectorsSimple(t *testing.T) {
	fr := page(figma.Node{
		ID: "1:1", Name: "Icon", Type: "FRAME",
		Children: []figma.Node{
			{ID: "1:2", Name: "Path", Type: "VECTOR"},
			{ID: "1:3", Name: "Circle", Type: "ELLIPSE"},
		},
	})

	design := SimplifyFile(fr, Options{})

	icon := design.Nodes[0].Children[0]
	if icon.Type != VectorMarkerType {
		t.Fatalf("icon type = %q, want %q", icon.Type, VectorMarkerType)
	}
	if len(icon.Children) != 0 {
		t.Errorf("collapsed marker kept %d children, want none", len(icon.Children))
	}
	if icon.ID != "1:1" || icon.Name != "Icon" {
		t.Errorf("marker lost identity: %s %q", icon.ID, icon.Name)
	}
}

func TestCollapseVectorsCascadesBottomUp(t *testing.T) {
	// group(vector) collapses first; the frame then sees [marker, rectangle],
	// both vector leaves, and collapses too.
	fr := page(figma.Node{
		ID: "1:1", Name: "Logo", Type: "FRAME",
		Children: []figma.Node{
			{
				ID: "1:2", Name: "Mark", Type: "GROUP",
				Children: []figma.Node{
					{ID: "1:3", Name: "Path", Type: "VECTOR"},
				},
			},
			{ID: "1:4", Name: "Backdrop", Type: "RECTANGLE"},
		},
	})

	design := SimplifyFile(fr, Options{})

	logo := design.Nodes[0].Children[0]
	if logo.Type != VectorMarkerType {
		t.Errorf("cascade stopped early: logo type = %q, want %q", logo.Type, VectorMarkerType)
	}
	if len(logo.Children) != 0 {
		t.Errorf("cascaded marker kept %d children", len(logo.Children))
	}
}

func TestCollapseVectorsBlockedByNonVectorChild(t *testing.T) {
	fr := page(figma.Node{
		ID: "1:1", Name: "Badge", Type: "FRAME",
		Children: []figma.Node{
			{
				ID: "1:2", Name: "Icon", Type: "GROUP",
				Children: []figma.Node{
					{ID: "1:3", Name: "Path", Type: "VECTOR"},
					{ID: "1:4", Name: "Star", Type: "STAR"},
				},
			},
			{ID: "1:5", Name: "Label", Type: "TEXT", Characters: "New"},
		},
	})

	design := SimplifyFile(fr, Options{})

	badge := design.Nodes[0].Children[0]
	if badge.Type != "FRAME" {
		t.Fatalf("badge collapsed despite text child: type = %q", badge.Type)
	}
	if len(badge.Children) != 2 {
		t.Fatalf("badge has %d children, want 2", len(badge.Children))
	}
	if badge.Children[0].Type != VectorMarkerType {
		t.Errorf("inner all-vector group type = %q, want %q", badge.Children[0].Type, VectorMarkerType)
	}
	if badge.Children[1].Type != "TEXT" {
		t.Errorf("text sibling type = %q, want TEXT", badge.Children[1].Type)
	}
}

func TestCollapseVectorsRequiresChildren(t *testing.T) {
	fr := page(figma.Node{ID: "1:1", Name: "Empty", Type: "FRAME"})

	design := SimplifyFile(fr, Options{})

	if got := design.Nodes[0].Children[0].Type; got != "FRAME" {
		t.Errorf("childless container collapsed: type = %q, want FRAME", got)
	}
}

func TestCollapseVectorsIgnoresNonContainerTypes(t *testing.T) {
	// A CANVAS full of vectors is a page, not a collapsible graphic.
	fr := page(
		figma.Node{ID: "1:1", Name: "A", Type: "VECTOR"},
		figma.Node{ID: "1:2", Name: "B", Type: "VECTOR"},
	)

	design := SimplifyFile(fr, Options{})

	if got := design.Nodes[0].Type; got != "CANVAS" {
		t.Errorf("page collapsed: type = %q, want CANVAS", got)
	}
	if len(design.Nodes[0].Children) != 2 {
		t.Errorf("page children = %d, want 2", len(design.Nodes[0].Children))
	}
}

func TestKeepChildrenDisablesCollapsing(t *testing.T) {
	fr := page(figma.Node{
		ID: "1:1", Name: "Icon", Type: "FRAME",
		Children: []figma.Node{
			{ID: "1:2", Name: "Path", Type: "VECTOR"},
		},
	})

	design := SimplifyFile(fr, Options{AfterChildren: KeepChildren})

	icon := design.Nodes[0].Children[0]
	if icon.Type != "FRAME" {
		t.Errorf("icon type = %q, want FRAME (collapsing disabled)", icon.Type)
	}
	if len(icon.Children) != 1 || icon.Children[0].Type != "VECTOR" {
		t.Errorf("raw subtree not preserved: %+v", icon.Children)
	}
}
