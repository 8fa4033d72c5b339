// Package simplify turns verbose Figma document trees into a compact,
// style-deduplicated representation suitable for LLM consumption and code
// generation. Extraction is pluggable per concern (layout, text, visuals,
// component metadata) and style values are stored once in a call-scoped
// registry and referenced by id from the nodes that use them.
package simplify

import (
	"github.com/hellenic-development/figma-simplify/pkg/figma"
)

// VectorMarkerType is the synthetic node type produced when an all-vector
// subtree is collapsed into a single asset node. Downstream, nodes of this
// type are exported as standalone SVG images.
const VectorMarkerType = "IMAGE-SVG"

// SimplifiedNode is the compact representation of one raw node. All
// style-bearing fields hold a reference id into GlobalVars rather than inline
// data; absent fields simply were not present (or not extracted) on the
// source node.
type SimplifiedNode struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`

	// Text content and style (text-bearing nodes).
	Text      string `json:"text,omitempty" yaml:"text,omitempty"`
	TextStyle string `json:"textStyle,omitempty" yaml:"textStyle,omitempty"`

	// Style references into GlobalVars.
	Layout  string `json:"layout,omitempty" yaml:"layout,omitempty"`
	Fills   string `json:"fills,omitempty" yaml:"fills,omitempty"`
	Strokes string `json:"strokes,omitempty" yaml:"strokes,omitempty"`
	Effects string `json:"effects,omitempty" yaml:"effects,omitempty"`

	// Inline extracted values.
	Opacity      *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	BorderRadius string   `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`

	// Component instance metadata.
	ComponentID         string              `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	ComponentProperties []ComponentProperty `json:"componentProperties,omitempty" yaml:"componentProperties,omitempty"`

	// DownloadedImage is attached by the enrichment merger once a rendered
	// or substituted asset exists for this node.
	DownloadedImage *DownloadedImage `json:"downloadedImage,omitempty" yaml:"downloadedImage,omitempty"`

	Children []SimplifiedNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ComponentProperty is a flattened instance property with its value coerced
// to text.
type ComponentProperty struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

// DownloadedImage is the presentation bundle attached to an image-bearing
// node after enrichment: where the asset lives, how to reference it in
// generated markup, and its final pixel dimensions.
type DownloadedImage struct {
	FilePath     string `json:"filePath" yaml:"filePath"`
	RelativePath string `json:"relativePath" yaml:"relativePath"`
	Width        int    `json:"width" yaml:"width"`
	Height       int    `json:"height" yaml:"height"`
	WasCropped   bool   `json:"wasCropped" yaml:"wasCropped"`
	Markdown     string `json:"markdown" yaml:"markdown"`
	HTML         string `json:"html" yaml:"html"`
}

// GlobalVars holds the deduplicated style values shared by one simplified
// design. Keys are the reference ids embedded in SimplifiedNode fields.
type GlobalVars struct {
	Styles map[string]StyleValue `json:"styles" yaml:"styles"`
}

// StyleValue is one of the structured style records a registry can store:
// Layout, TextStyle, FillList, Stroke, or Effects. Values are immutable once
// stored.
type StyleValue interface {
	styleValue()
}

// Layout describes position, sizing, and auto-layout behavior of a node
// relative to its parent, expressed in CSS flexbox vocabulary.
type Layout struct {
	Mode           string       `json:"mode" yaml:"mode"` // "none", "row", "column"
	JustifyContent string       `json:"justifyContent,omitempty" yaml:"justifyContent,omitempty"`
	AlignItems     string       `json:"alignItems,omitempty" yaml:"alignItems,omitempty"`
	Wrap           bool         `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Gap            string       `json:"gap,omitempty" yaml:"gap,omitempty"`
	Padding        string       `json:"padding,omitempty" yaml:"padding,omitempty"`
	Sizing         *Sizing      `json:"sizing,omitempty" yaml:"sizing,omitempty"`
	Dimensions     *Dimensions  `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Position       string       `json:"position,omitempty" yaml:"position,omitempty"` // "absolute"
	Location       *Location    `json:"locationRelativeToParent,omitempty" yaml:"locationRelativeToParent,omitempty"`
}

func (Layout) styleValue() {}

// Sizing is the horizontal/vertical sizing behavior of a node: "fixed",
// "hug", or "fill".
type Sizing struct {
	Horizontal string `json:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty" yaml:"vertical,omitempty"`
}

// Dimensions is a node's width and height in design pixels.
type Dimensions struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Location is a node's offset from its parent's top-left corner.
type Location struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// TextStyle is the simplified typography record for a text node.
type TextStyle struct {
	FontFamily          string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	LineHeight          string  `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	LetterSpacing       string  `json:"letterSpacing,omitempty" yaml:"letterSpacing,omitempty"`
	TextCase            string  `json:"textCase,omitempty" yaml:"textCase,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty" yaml:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty" yaml:"textAlignVertical,omitempty"`
}

func (TextStyle) styleValue() {}

// FillList is an ordered list of simplified paints, topmost paint first.
type FillList []Fill

func (FillList) styleValue() {}

// HasImage reports whether any entry in the list is an image fill.
func (fl FillList) HasImage() bool {
	for _, f := range fl {
		if f.Type == "IMAGE" {
			return true
		}
	}
	return false
}

// Fill is one simplified paint. SOLID paints carry a CSS color; IMAGE paints
// carry the imageRef and scale mode; gradients carry simplified stops.
type Fill struct {
	Type      string     `json:"type" yaml:"type"`
	Color     string     `json:"color,omitempty" yaml:"color,omitempty"`
	ImageRef  string     `json:"imageRef,omitempty" yaml:"imageRef,omitempty"`
	ScaleMode string     `json:"scaleMode,omitempty" yaml:"scaleMode,omitempty"`
	Stops     []FillStop `json:"stops,omitempty" yaml:"stops,omitempty"`
}

// FillStop is a simplified gradient stop.
type FillStop struct {
	Position float64 `json:"position" yaml:"position"`
	Color    string  `json:"color" yaml:"color"`
}

// Stroke bundles a node's border paints with weight and dash information.
type Stroke struct {
	Colors        FillList  `json:"colors,omitempty" yaml:"colors,omitempty"`
	StrokeWeight  string    `json:"strokeWeight,omitempty" yaml:"strokeWeight,omitempty"`
	StrokeDashes  []float64 `json:"strokeDashes,omitempty" yaml:"strokeDashes,omitempty"`
	StrokeWeights string    `json:"strokeWeights,omitempty" yaml:"strokeWeights,omitempty"` // per-side shorthand
}

func (Stroke) styleValue() {}

// Effects bundles a node's visual effects expressed as CSS declarations.
type Effects struct {
	BoxShadow      string `json:"boxShadow,omitempty" yaml:"boxShadow,omitempty"`
	Filter         string `json:"filter,omitempty" yaml:"filter,omitempty"`
	BackdropFilter string `json:"backdropFilter,omitempty" yaml:"backdropFilter,omitempty"`
}

func (Effects) styleValue() {}

// SimplifiedDesign is the complete result of one simplification call.
type SimplifiedDesign struct {
	Name          string                         `json:"name" yaml:"name"`
	Nodes         []SimplifiedNode               `json:"nodes" yaml:"nodes"`
	Components    map[string]figma.Component     `json:"components,omitempty" yaml:"components,omitempty"`
	ComponentSets map[string]figma.ComponentSet  `json:"componentSets,omitempty" yaml:"componentSets,omitempty"`
	GlobalVars    GlobalVars                     `json:"globalVars" yaml:"globalVars"`
}
